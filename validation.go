package finances

import (
	"fmt"
	"strings"

	"github.com/etnz/finances/date"
	"github.com/shopspring/decimal"
)

// Messages reported to the user, next to the field they are about.
const (
	msgDateRequired     = "Date is required"
	msgDateInvalid      = "Date must be a date"
	msgTooFewBookings   = "Must have at least two bookings"
	msgNotBalanced      = "Transaction is not balanced by %s"
	msgTypeRequired     = "Type is required"
	msgTypeInvalid      = "Type must be one of CHARGE, DEPOSIT, INCOME, EXPENSE, APPRECIATION, DEPRECIATION"
	msgAccountRequired  = "Account is required"
	msgCategoryRequired = "Category is required"
	msgCurrencyRequired = "Currency is required"
	msgCurrencyInvalid  = "Currency must be a valid currency code"
	msgAmountRequired   = "Amount is required"
	msgAmountInvalid    = "Amount must be a number"
)

// BookingErrors holds the field errors of a single booking. Empty fields have no error.
type BookingErrors struct {
	Type       string `json:"type,omitempty"`
	AccountID  string `json:"accountId,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
	Currency   string `json:"currency,omitempty"`
	Amount     string `json:"amount,omitempty"`
}

func (e BookingErrors) IsEmpty() bool { return e == BookingErrors{} }

// FieldErrors mirrors the shape of a submitted transaction with the errors found.
//
// Form holds the errors that are not about a single field (too few bookings,
// imbalance). Bookings is either nil or aligned by index with the submitted
// bookings.
type FieldErrors struct {
	Date     string          `json:"date,omitempty"`
	Form     string          `json:"form,omitempty"`
	Bookings []BookingErrors `json:"bookings,omitempty"`
}

func (e FieldErrors) IsEmpty() bool {
	return e.Date == "" && e.Form == "" && len(e.Bookings) == 0
}

// ValidationError is returned when a transaction cannot be recorded because of
// user correctable errors.
type ValidationError struct {
	Errors FieldErrors
}

func (e *ValidationError) Error() string {
	var msgs []string
	if e.Errors.Date != "" {
		msgs = append(msgs, "date: "+e.Errors.Date)
	}
	if e.Errors.Form != "" {
		msgs = append(msgs, e.Errors.Form)
	}
	for i, b := range e.Errors.Bookings {
		for _, f := range []struct{ name, msg string }{
			{"type", b.Type},
			{"account", b.AccountID},
			{"category", b.CategoryID},
			{"currency", b.Currency},
			{"amount", b.Amount},
		} {
			if f.msg != "" {
				msgs = append(msgs, fmt.Sprintf("booking #%d %s: %s", i+1, f.name, f.msg))
			}
		}
	}
	return "invalid transaction: " + strings.Join(msgs, "; ")
}

// ValidateTransaction checks a proposed transaction and returns all the errors
// found. Every rule is evaluated, errors are not short-circuited.
//
// The balance check is only performed when there are at least two bookings
// and all of them have a known type and a valid amount.
func ValidateTransaction(on string, bookings []BookingInput) FieldErrors {
	_, errs := validate(on, bookings)
	return errs
}

// NewTransaction validates the input and returns the transaction ready to be
// recorded, or a *ValidationError.
func NewTransaction(in TransactionInput) (Transaction, error) {
	tx, errs := validate(in.Date, in.Bookings)
	if !errs.IsEmpty() {
		return Transaction{}, &ValidationError{Errors: errs}
	}
	tx.Note = in.Note
	return tx, nil
}

func validate(on string, inputs []BookingInput) (Transaction, FieldErrors) {
	var tx Transaction
	var errs FieldErrors

	tx.Date, errs.Date = parseDate(on)

	summable := true
	bookingErrs := make([]BookingErrors, len(inputs))
	for i, in := range inputs {
		b, e := in.Bind()
		bookingErrs[i] = e
		if b == nil || e.Amount != "" {
			summable = false
		}
		tx.Bookings = append(tx.Bookings, b)
	}
	for _, e := range bookingErrs {
		if !e.IsEmpty() {
			errs.Bookings = bookingErrs
			break
		}
	}

	if len(inputs) < 2 {
		errs.Form = msgTooFewBookings
	} else if summable {
		if remainder := Imbalance(tx.Bookings); !remainder.IsZero() {
			errs.Form = fmt.Sprintf(msgNotBalanced, remainder)
		}
	}
	return tx, errs
}

// Imbalance returns the signed sum of the bookings. A transaction is balanced
// when it is zero: DEPOSIT, EXPENSE and DEPRECIATION count positively, CHARGE,
// INCOME and APPRECIATION negatively.
func Imbalance(bookings []Booking) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range bookings {
		if b.balanceSign() < 0 {
			sum = sum.Sub(b.Value())
		} else {
			sum = sum.Add(b.Value())
		}
	}
	return sum
}

func parseDate(s string) (date.Date, string) {
	if strings.TrimSpace(s) == "" {
		return date.Date{}, msgDateRequired
	}
	on, err := date.Parse(s)
	if err != nil {
		return date.Date{}, msgDateInvalid
	}
	return on, ""
}

func parseAmount(s string) (decimal.Decimal, string) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, msgAmountRequired
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, msgAmountInvalid
	}
	return d, ""
}
