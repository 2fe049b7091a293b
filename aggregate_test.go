package finances

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

// fixedRates is a RateSource quoting against USD.
type fixedRates struct {
	rates map[string]decimal.Decimal
	err   error
	calls [][]string
}

func (f *fixedRates) Rates(_ context.Context, currencies []string) (map[string]decimal.Decimal, error) {
	f.calls = append(f.calls, currencies)
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}

func TestAggregateByAssetClass(t *testing.T) {
	b := testBook(t)
	acc := func(id string) Account {
		a, ok := b.Account(id)
		if !ok {
			t.Fatalf("unknown account %q", id)
		}
		return a
	}
	misc := Account{ID: "misc", Name: "Misc", Type: Asset, Unit: CurrencyUnit("EUR")}
	balances := []AccountBalance{
		{acc("checking"), dec("100")},
		{acc("savings"), dec("50")},
		{acc("broker"), dec("10")},
		{acc("card"), dec("-25")},
		{misc, dec("1")},
	}
	rates := &fixedRates{rates: map[string]decimal.Decimal{"USD": dec("1"), "EUR": dec("0.8")}}

	groups, err := AggregateByAssetClass(context.Background(), rates, "EUR", balances, b.AssetClasses(), b.Stocks())
	if err != nil {
		t.Fatalf("AggregateByAssetClass() unexpected error: %v", err)
	}
	if want := [][]string{{"EUR", "USD"}}; !reflect.DeepEqual(rates.calls, want) {
		t.Errorf("Rates() calls = %v, want %v", rates.calls, want)
	}

	type summary struct {
		ID       string
		Accounts []string
		Total    string
	}
	var got []summary
	for _, g := range groups {
		s := summary{ID: g.ID, Total: g.Total.String()}
		for _, cb := range g.Accounts {
			s.Accounts = append(s.Accounts, cb.Account.ID+"="+cb.Reference.String())
		}
		got = append(got, s)
	}
	want := []summary{
		{"cash", []string{"checking=100", "savings=50"}, "150"},
		{"stocks", []string{"broker=160"}, "160"}, // 10 shares at 20 USD
		{OtherClassID, []string{"misc=1"}, "1"},
		{LiabilityClassID, []string{"card=-20"}, "-20"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AggregateByAssetClass() = %+v, want %+v", got, want)
	}
}

func TestAggregateByAssetClassSingleCurrency(t *testing.T) {
	b := testBook(t)
	checking, _ := b.Account("checking")
	rates := &fixedRates{}
	groups, err := AggregateByAssetClass(context.Background(), rates, "EUR", []AccountBalance{{checking, dec("100")}}, b.AssetClasses(), nil)
	if err != nil {
		t.Fatalf("AggregateByAssetClass() unexpected error: %v", err)
	}
	if len(rates.calls) != 0 {
		t.Errorf("Rates() called %v, want no call", rates.calls)
	}
	if len(groups) != 1 || !groups[0].Total.Equal(dec("100")) {
		t.Errorf("AggregateByAssetClass() = %+v", groups)
	}
}

func TestAggregateByAssetClassErrors(t *testing.T) {
	b := testBook(t)
	card, _ := b.Account("card")
	balances := []AccountBalance{{card, dec("10")}}

	failing := &fixedRates{err: errors.New("provider down")}
	if _, err := AggregateByAssetClass(context.Background(), failing, "EUR", balances, nil, nil); err == nil {
		t.Error("AggregateByAssetClass() expected an error when rates fail, got nil")
	}

	partial := &fixedRates{rates: map[string]decimal.Decimal{"EUR": dec("0.8")}}
	if _, err := AggregateByAssetClass(context.Background(), partial, "EUR", balances, nil, nil); !errors.Is(err, ErrMissingRate) {
		t.Errorf("AggregateByAssetClass() error = %v, want ErrMissingRate", err)
	}
}

func TestNetWorthWithChargedLiability(t *testing.T) {
	b := NewBook("alice", nil)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(b.AddCategory(Category{ID: "groceries", Name: "Groceries"}))
	must(b.AddAccount(Account{ID: "checking", Name: "Checking", Type: Asset, Unit: CurrencyUnit("EUR"), PreExisting: true, BalanceAtStart: dec("1000")}))
	must(b.AddAccount(Account{ID: "card", Name: "Credit card", Type: Liability, Unit: CurrencyUnit("EUR"), OpeningDate: day("2025-01-01")}))
	_, err := b.Record(Transaction{
		Date: day("2025-01-02"),
		Bookings: []Booking{
			NewCharge("card", dec("500"), ""),
			NewExpense("groceries", "EUR", dec("500"), ""),
		},
	})
	must(err)

	groups, err := b.AggregateByAssetClass(context.Background(), &fixedRates{}, "EUR")
	must(err)
	var totals []string
	for _, g := range groups {
		totals = append(totals, g.ID+"="+g.Total.String())
	}
	if want := []string{OtherClassID + "=1000", LiabilityClassID + "=-500"}; !reflect.DeepEqual(totals, want) {
		t.Errorf("AggregateByAssetClass() totals = %v, want %v", totals, want)
	}
	if got := NetWorth(groups); !got.Equal(dec("500")) {
		t.Errorf("NetWorth() = %v, want 500", got)
	}
}
