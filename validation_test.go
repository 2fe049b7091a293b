package finances

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func charge(account, amount string) BookingInput {
	return BookingInput{Type: "CHARGE", AccountID: account, Amount: amount}
}

func deposit(account, amount string) BookingInput {
	return BookingInput{Type: "DEPOSIT", AccountID: account, Amount: amount}
}

func expense(category, amount string) BookingInput {
	return BookingInput{Type: "EXPENSE", CategoryID: category, Currency: "EUR", Amount: amount}
}

func income(category, amount string) BookingInput {
	return BookingInput{Type: "INCOME", CategoryID: category, Currency: "EUR", Amount: amount}
}

func TestValidateTransaction(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		bookings []BookingInput
		want     FieldErrors
	}{
		{
			name:     "balanced charge and expense",
			date:     "2025-07-01",
			bookings: []BookingInput{charge("checking", "100"), expense("groceries", "100")},
			want:     FieldErrors{},
		},
		{
			name:     "transfer between accounts",
			date:     "2025-07-01",
			bookings: []BookingInput{charge("checking", "250.50"), deposit("savings", "250.5")},
			want:     FieldErrors{},
		},
		{
			name:     "salary",
			date:     "2025-07-01",
			bookings: []BookingInput{income("salary", "3000"), deposit("checking", "3000")},
			want:     FieldErrors{},
		},
		{
			name: "revaluation",
			date: "2025-07-01",
			bookings: []BookingInput{
				{Type: "APPRECIATION", Amount: "1000"},
				{Type: "DEPRECIATION", Amount: "1000"},
			},
			want: FieldErrors{},
		},
		{
			name:     "not balanced",
			date:     "2025-07-01",
			bookings: []BookingInput{charge("checking", "100"), expense("groceries", "150")},
			want:     FieldErrors{Form: "Transaction is not balanced by 50"},
		},
		{
			name:     "invalid date",
			date:     "invalid date",
			bookings: []BookingInput{charge("checking", "100"), expense("groceries", "100")},
			want:     FieldErrors{Date: "Date must be a date"},
		},
		{
			name:     "missing date",
			date:     "",
			bookings: []BookingInput{charge("checking", "100"), expense("groceries", "100")},
			want:     FieldErrors{Date: "Date is required"},
		},
		{
			name:     "single booking",
			date:     "2025-07-01",
			bookings: []BookingInput{charge("checking", "100")},
			want:     FieldErrors{Form: "Must have at least two bookings"},
		},
		{
			name:     "no booking",
			date:     "2025-07-01",
			bookings: nil,
			want:     FieldErrors{Form: "Must have at least two bookings"},
		},
		{
			name:     "invalid amount",
			date:     "2025-07-01",
			bookings: []BookingInput{charge("checking", "invalid"), expense("groceries", "100")},
			want: FieldErrors{Bookings: []BookingErrors{
				{Amount: "Amount must be a number"},
				{},
			}},
		},
		{
			name:     "missing amount",
			date:     "2025-07-01",
			bookings: []BookingInput{charge("checking", ""), expense("groceries", "100")},
			want: FieldErrors{Bookings: []BookingErrors{
				{Amount: "Amount is required"},
				{},
			}},
		},
		{
			name: "missing type",
			date: "2025-07-01",
			bookings: []BookingInput{
				{AccountID: "checking", Amount: "100"},
				expense("groceries", "100"),
			},
			want: FieldErrors{Bookings: []BookingErrors{
				{Type: "Type is required"},
				{},
			}},
		},
		{
			name: "unknown type",
			date: "2025-07-01",
			bookings: []BookingInput{
				{Type: "REFUND", AccountID: "checking", Amount: "100"},
				expense("groceries", "100"),
			},
			want: FieldErrors{Bookings: []BookingErrors{
				{Type: "Type must be one of CHARGE, DEPOSIT, INCOME, EXPENSE, APPRECIATION, DEPRECIATION"},
				{},
			}},
		},
		{
			name: "missing references",
			date: "2025-07-01",
			bookings: []BookingInput{
				{Type: "CHARGE", Amount: "100"},
				{Type: "EXPENSE", Currency: "eur", Amount: "100"},
			},
			want: FieldErrors{Bookings: []BookingErrors{
				{AccountID: "Account is required"},
				{CategoryID: "Category is required", Currency: "Currency must be a valid currency code"},
			}},
		},
		{
			name: "missing currency",
			date: "2025-07-01",
			bookings: []BookingInput{
				charge("checking", "100"),
				{Type: "EXPENSE", CategoryID: "groceries", Amount: "100"},
			},
			want: FieldErrors{Bookings: []BookingErrors{
				{},
				{Currency: "Currency is required"},
			}},
		},
		{
			name: "every rule at once",
			date: "2025-13-45",
			bookings: []BookingInput{
				{Type: "CHARGE", Amount: "100"},
				expense("groceries", "150"),
			},
			want: FieldErrors{
				Date: "Date must be a date",
				Form: "Transaction is not balanced by 50",
				Bookings: []BookingErrors{
					{AccountID: "Account is required"},
					{},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateTransaction(tt.date, tt.bookings)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValidateTransaction() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidateTransactionIsIdempotent(t *testing.T) {
	bookings := []BookingInput{charge("checking", "abc"), expense("", "100"), {Type: "?"}}
	first := ValidateTransaction("2025-02-30x", bookings)
	second := ValidateTransaction("2025-02-30x", bookings)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ValidateTransaction() is not idempotent: %+v then %+v", first, second)
	}
}

func TestNewTransaction(t *testing.T) {
	tx, err := NewTransaction(TransactionInput{
		Date:     "2025-7-1",
		Note:     "weekly groceries",
		Bookings: []BookingInput{charge("checking", "42.10"), expense("groceries", "42.1")},
	})
	if err != nil {
		t.Fatalf("NewTransaction() unexpected error: %v", err)
	}
	if tx.Date != day("2025-07-01") || tx.Note != "weekly groceries" || len(tx.Bookings) != 2 {
		t.Errorf("NewTransaction() = %+v", tx)
	}
	want := []Booking{
		NewCharge("checking", dec("42.10"), ""),
		NewExpense("groceries", "EUR", dec("42.1"), ""),
	}
	if !reflect.DeepEqual(tx.Bookings, want) {
		t.Errorf("NewTransaction() bookings = %#v, want %#v", tx.Bookings, want)
	}

	_, err = NewTransaction(TransactionInput{Date: "2025-07-01", Bookings: []BookingInput{charge("checking", "1")}})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("NewTransaction() error = %v, want a *ValidationError", err)
	}
	if verr.Errors.Form != "Must have at least two bookings" {
		t.Errorf("ValidationError.Errors = %+v", verr.Errors)
	}
	if !strings.Contains(err.Error(), "Must have at least two bookings") {
		t.Errorf("ValidationError.Error() = %q", err)
	}
}

func TestImbalancePolarity(t *testing.T) {
	tests := []struct {
		booking Booking
		want    string
	}{
		{NewCharge("a", dec("10"), ""), "-10"},
		{NewDeposit("a", dec("10"), ""), "10"},
		{NewIncome("c", "EUR", dec("10"), ""), "-10"},
		{NewExpense("c", "EUR", dec("10"), ""), "10"},
		{NewAppreciation(dec("10"), ""), "-10"},
		{NewDeprecation(dec("10"), ""), "10"},
	}
	for _, tt := range tests {
		if got := Imbalance([]Booking{tt.booking}); !got.Equal(dec(tt.want)) {
			t.Errorf("Imbalance(%s) = %v, want %s", tt.booking.Type(), got, tt.want)
		}
	}
}
