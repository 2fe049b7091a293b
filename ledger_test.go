package finances

import (
	"reflect"
	"testing"

	"github.com/etnz/finances/date"
)

func posted(on string, seq int, b AccountBooking) PostedBooking {
	return PostedBooking{TransactionID: "tx" + on, Date: day(on), Seq: seq, Booking: b}
}

func balances(lines []LedgerLine) []string {
	var got []string
	for _, l := range lines {
		got = append(got, l.Balance.String())
	}
	return got
}

func TestComputeLedgerLines(t *testing.T) {
	acc := Account{ID: "checking", Type: Asset, Unit: CurrencyUnit("EUR"), PreExisting: true, BalanceAtStart: dec("100")}
	bookings := []PostedBooking{
		posted("2025-01-01", 1, NewDeposit("checking", dec("50"), "")),
		posted("2025-01-02", 2, NewCharge("checking", dec("30"), "")),
	}

	lines := ComputeLedgerLines(acc, bookings)
	if got, want := balances(lines), []string{"150", "120"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ComputeLedgerLines() balances = %v, want %v", got, want)
	}
	if got := FinalBalance(acc, lines); !got.Equal(dec("120")) {
		t.Errorf("FinalBalance() = %v, want 120", got)
	}
}

func TestComputeLedgerLinesEmpty(t *testing.T) {
	acc := Account{ID: "savings", Type: Asset, Unit: CurrencyUnit("EUR"), OpeningDate: day("2025-01-01")}
	lines := ComputeLedgerLines(acc, nil)
	if len(lines) != 0 {
		t.Errorf("ComputeLedgerLines() = %v, want no line", lines)
	}
	if got := FinalBalance(acc, lines); !got.IsZero() {
		t.Errorf("FinalBalance() = %v, want 0", got)
	}
	pre := Account{ID: "old", PreExisting: true, BalanceAtStart: dec("12.5")}
	if got := FinalBalance(pre, nil); !got.Equal(dec("12.5")) {
		t.Errorf("FinalBalance() of a pre-existing account = %v, want 12.5", got)
	}
}

func TestComputeLedgerLinesOtherAccountPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ComputeLedgerLines() with a booking of another account did not panic")
		}
	}()
	acc := Account{ID: "checking"}
	ComputeLedgerLines(acc, []PostedBooking{posted("2025-01-01", 1, NewDeposit("savings", dec("1"), ""))})
}

// A DEPOSIT counts positively in both the transaction balance and the ledger,
// a CHARGE negatively in both, but the polarities of the other types only
// apply to the transaction balance.
func TestPolarityAsymmetry(t *testing.T) {
	d := NewDeposit("checking", dec("10"), "")
	c := NewCharge("checking", dec("10"), "")
	if got := Imbalance([]Booking{d}); !got.Equal(d.ledgerDelta()) {
		t.Errorf("DEPOSIT: transaction polarity %v, ledger delta %v", got, d.ledgerDelta())
	}
	if got := Imbalance([]Booking{c}); !got.Equal(c.ledgerDelta()) {
		t.Errorf("CHARGE: transaction polarity %v, ledger delta %v", got, c.ledgerDelta())
	}

	// EXPENSE is positive in the balance, yet the account it is paired with
	// decreases.
	tx := []Booking{c, NewExpense("groceries", "EUR", dec("10"), "")}
	if got := Imbalance(tx); !got.IsZero() {
		t.Errorf("Imbalance(CHARGE 10, EXPENSE 10) = %v, want 0", got)
	}
	acc := Account{ID: "checking", PreExisting: true, BalanceAtStart: dec("10")}
	lines := ComputeLedgerLines(acc, []PostedBooking{posted("2025-01-01", 1, c)})
	if got := FinalBalance(acc, lines); !got.IsZero() {
		t.Errorf("ledger after CHARGE 10 = %v, want 0", got)
	}

	// Only account bookings can reach a ledger.
	for _, b := range []Booking{
		NewIncome("c", "EUR", dec("1"), ""),
		NewExpense("c", "EUR", dec("1"), ""),
		NewAppreciation(dec("1"), ""),
		NewDeprecation(dec("1"), ""),
	} {
		if _, ok := b.(AccountBooking); ok {
			t.Errorf("%s is an AccountBooking", b.Type())
		}
	}
}

func TestSortPosted(t *testing.T) {
	bookings := []PostedBooking{
		posted("2025-01-03", 1, NewDeposit("a", dec("1"), "")),
		posted("2025-01-01", 3, NewDeposit("a", dec("2"), "")),
		posted("2025-01-01", 2, NewDeposit("a", dec("3"), "")),
		posted("2025-01-01", 2, NewCharge("a", dec("4"), "")),
	}
	SortPosted(bookings)
	var got []string
	for _, p := range bookings {
		got = append(got, p.Booking.Value().String())
	}
	if want := []string{"3", "4", "2", "1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("SortPosted() order = %v, want %v", got, want)
	}
}

func TestComputeDateGroups(t *testing.T) {
	acc := Account{ID: "a", PreExisting: true, BalanceAtStart: dec("0")}
	lines := ComputeLedgerLines(acc, []PostedBooking{
		posted("2025-01-01", 1, NewDeposit("a", dec("10"), "")),
		posted("2025-01-01", 2, NewDeposit("a", dec("5"), "")),
		posted("2025-01-02", 3, NewCharge("a", dec("3"), "")),
	})

	tests := []struct {
		name     string
		reverse  bool
		dates    []string
		sizes    []int
		balances []string
	}{
		{"chronological", false, []string{"2025-01-01", "2025-01-02"}, []int{2, 1}, []string{"10", "12"}},
		{"newest first", true, []string{"2025-01-02", "2025-01-01"}, []int{1, 2}, []string{"12", "15"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := ComputeDateGroups(lines, tt.reverse)
			var dates, balances []string
			var sizes []int
			for _, g := range groups {
				dates = append(dates, g.Date.String())
				sizes = append(sizes, len(g.Lines))
				balances = append(balances, g.Balance.String())
			}
			if !reflect.DeepEqual(dates, tt.dates) {
				t.Errorf("dates = %v, want %v", dates, tt.dates)
			}
			if !reflect.DeepEqual(sizes, tt.sizes) {
				t.Errorf("sizes = %v, want %v", sizes, tt.sizes)
			}
			if !reflect.DeepEqual(balances, tt.balances) {
				t.Errorf("balances = %v, want %v", balances, tt.balances)
			}
		})
	}

	if got := balances(lines); !reflect.DeepEqual(got, []string{"10", "15", "12"}) {
		t.Errorf("ComputeDateGroups() modified its input: %v", got)
	}
}

func TestFilterLines(t *testing.T) {
	acc := Account{ID: "a", PreExisting: true, BalanceAtStart: dec("0")}
	lines := ComputeLedgerLines(acc, []PostedBooking{
		posted("2025-01-01", 1, NewDeposit("a", dec("10"), "")),
		posted("2025-02-01", 2, NewDeposit("a", dec("5"), "")),
		posted("2025-03-01", 3, NewDeposit("a", dec("1"), "")),
	})
	got := FilterLines(lines, date.Range{From: day("2025-02-01")})
	if want := []string{"15", "16"}; !reflect.DeepEqual(balances(got), want) {
		t.Errorf("FilterLines() balances = %v, want %v", balances(got), want)
	}
	got = FilterLines(lines, date.Range{To: day("2025-01-31")})
	if want := []string{"10"}; !reflect.DeepEqual(balances(got), want) {
		t.Errorf("FilterLines() balances = %v, want %v", balances(got), want)
	}
}
