package finances

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BookingType identifies the kind of a booking leg.
type BookingType string

const (
	TypeCharge       BookingType = "CHARGE"
	TypeDeposit      BookingType = "DEPOSIT"
	TypeIncome       BookingType = "INCOME"
	TypeExpense      BookingType = "EXPENSE"
	TypeAppreciation BookingType = "APPRECIATION"
	TypeDeprecation  BookingType = "DEPRECIATION"
)

// BookingTypes lists every booking type, in display order.
var BookingTypes = []BookingType{TypeCharge, TypeDeposit, TypeIncome, TypeExpense, TypeAppreciation, TypeDeprecation}

// variants maps each type to the zero value of its Booking implementation.
var variants = map[BookingType]Booking{
	TypeCharge:       Charge{},
	TypeDeposit:      Deposit{},
	TypeIncome:       Income{},
	TypeExpense:      Expense{},
	TypeAppreciation: Appreciation{},
	TypeDeprecation:  Deprecation{},
}

// ParseBookingType parses a booking type name. Names are matched exactly.
func ParseBookingType(s string) (BookingType, error) {
	t := BookingType(s)
	if _, ok := variants[t]; !ok {
		return "", fmt.Errorf("unknown booking type %q", s)
	}
	return t, nil
}

// BookingInput is a booking leg as submitted, before validation.
type BookingInput struct {
	Type       string `json:"type"`
	AccountID  string `json:"accountId,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
	Currency   string `json:"currency,omitempty"`
	Amount     string `json:"amount"`
	Note       string `json:"note,omitempty"`
}

// UnmarshalJSON accepts the amount either as a JSON string or a JSON number.
func (in *BookingInput) UnmarshalJSON(data []byte) error {
	type plain BookingInput
	var temp struct {
		plain
		Amount json.RawMessage `json:"amount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*in = BookingInput(temp.plain)

	raw := bytes.TrimSpace(temp.Amount)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		in.Amount = ""
	case raw[0] == '"':
		return json.Unmarshal(raw, &in.Amount)
	default:
		in.Amount = string(raw)
	}
	return nil
}

// Bind validates the input against the rules of its type and returns the
// typed booking. The booking is nil when the type itself is invalid.
func (in BookingInput) Bind() (Booking, BookingErrors) {
	if strings.TrimSpace(in.Type) == "" {
		return nil, BookingErrors{Type: msgTypeRequired}
	}
	t, err := ParseBookingType(in.Type)
	if err != nil {
		return nil, BookingErrors{Type: msgTypeInvalid}
	}
	return variants[t].bind(in)
}

// Booking is one leg of a transaction.
//
// The set of implementations is closed: Charge, Deposit, Income, Expense,
// Appreciation and Deprecation. Each one declares its own required fields
// (bind) and its polarity in the transaction balance (balanceSign).
type Booking interface {
	Type() BookingType
	Value() decimal.Decimal // Value returns the booking amount.
	Memo() string

	balanceSign() int
	bind(in BookingInput) (Booking, BookingErrors)
}

// AccountBooking is a booking that moves an account: only Charge and Deposit.
type AccountBooking interface {
	Booking
	Account() string
	// ledgerDelta is the signed effect of this booking on its account balance.
	ledgerDelta() decimal.Decimal
}

// leg holds the fields common to all bookings.
type leg struct {
	Amount decimal.Decimal
	Note   string
}

func (l leg) Value() decimal.Decimal { return l.Amount }
func (l leg) Memo() string           { return l.Note }

// bindLeg parses the amount, the one field every booking type requires.
func bindLeg(in BookingInput) (leg, BookingErrors) {
	var errs BookingErrors
	amount, msg := parseAmount(in.Amount)
	errs.Amount = msg
	return leg{Amount: amount, Note: in.Note}, errs
}

// accountLeg is a leg against one of the user's accounts.
type accountLeg struct {
	leg
	AccountID string
}

func (l accountLeg) Account() string { return l.AccountID }

func bindAccountLeg(in BookingInput) (accountLeg, BookingErrors) {
	l, errs := bindLeg(in)
	if strings.TrimSpace(in.AccountID) == "" {
		errs.AccountID = msgAccountRequired
	}
	return accountLeg{leg: l, AccountID: in.AccountID}, errs
}

// categoryLeg is a leg against an income or expense category.
type categoryLeg struct {
	leg
	CategoryID string
	Currency   string
}

func bindCategoryLeg(in BookingInput) (categoryLeg, BookingErrors) {
	l, errs := bindLeg(in)
	if strings.TrimSpace(in.CategoryID) == "" {
		errs.CategoryID = msgCategoryRequired
	}
	switch {
	case strings.TrimSpace(in.Currency) == "":
		errs.Currency = msgCurrencyRequired
	case ValidateCurrency(in.Currency) != nil:
		errs.Currency = msgCurrencyInvalid
	}
	return categoryLeg{leg: l, CategoryID: in.CategoryID, Currency: in.Currency}, errs
}

// Charge takes money out of an account.
type Charge struct{ accountLeg }

// NewCharge creates a new Charge booking.
func NewCharge(account string, amount decimal.Decimal, note string) Charge {
	return Charge{accountLeg{leg{amount, note}, account}}
}

func (Charge) Type() BookingType              { return TypeCharge }
func (Charge) balanceSign() int               { return -1 }
func (b Charge) ledgerDelta() decimal.Decimal { return b.Amount.Neg() }
func (Charge) bind(in BookingInput) (Booking, BookingErrors) {
	l, errs := bindAccountLeg(in)
	return Charge{l}, errs
}
func (b Charge) MarshalJSON() ([]byte, error) { return marshalBooking(b) }

// Deposit puts money into an account.
type Deposit struct{ accountLeg }

// NewDeposit creates a new Deposit booking.
func NewDeposit(account string, amount decimal.Decimal, note string) Deposit {
	return Deposit{accountLeg{leg{amount, note}, account}}
}

func (Deposit) Type() BookingType              { return TypeDeposit }
func (Deposit) balanceSign() int               { return +1 }
func (b Deposit) ledgerDelta() decimal.Decimal { return b.Amount }
func (Deposit) bind(in BookingInput) (Booking, BookingErrors) {
	l, errs := bindAccountLeg(in)
	return Deposit{l}, errs
}
func (b Deposit) MarshalJSON() ([]byte, error) { return marshalBooking(b) }

// Income is money earned in a category.
type Income struct{ categoryLeg }

// NewIncome creates a new Income booking.
func NewIncome(category, currency string, amount decimal.Decimal, note string) Income {
	return Income{categoryLeg{leg{amount, note}, category, currency}}
}

func (Income) Type() BookingType { return TypeIncome }
func (Income) balanceSign() int  { return -1 }
func (Income) bind(in BookingInput) (Booking, BookingErrors) {
	l, errs := bindCategoryLeg(in)
	return Income{l}, errs
}
func (b Income) MarshalJSON() ([]byte, error) { return marshalBooking(b) }

// Expense is money spent in a category.
type Expense struct{ categoryLeg }

// NewExpense creates a new Expense booking.
func NewExpense(category, currency string, amount decimal.Decimal, note string) Expense {
	return Expense{categoryLeg{leg{amount, note}, category, currency}}
}

func (Expense) Type() BookingType { return TypeExpense }
func (Expense) balanceSign() int  { return +1 }
func (Expense) bind(in BookingInput) (Booking, BookingErrors) {
	l, errs := bindCategoryLeg(in)
	return Expense{l}, errs
}
func (b Expense) MarshalJSON() ([]byte, error) { return marshalBooking(b) }

// Appreciation is a gain in value of an asset that is not a cash movement.
type Appreciation struct{ leg }

// NewAppreciation creates a new Appreciation booking.
func NewAppreciation(amount decimal.Decimal, note string) Appreciation {
	return Appreciation{leg{amount, note}}
}

func (Appreciation) Type() BookingType { return TypeAppreciation }
func (Appreciation) balanceSign() int  { return -1 }
func (Appreciation) bind(in BookingInput) (Booking, BookingErrors) {
	l, errs := bindLeg(in)
	return Appreciation{l}, errs
}
func (b Appreciation) MarshalJSON() ([]byte, error) { return marshalBooking(b) }

// Deprecation is a loss in value of an asset that is not a cash movement.
type Deprecation struct{ leg }

// NewDeprecation creates a new Deprecation booking.
func NewDeprecation(amount decimal.Decimal, note string) Deprecation {
	return Deprecation{leg{amount, note}}
}

func (Deprecation) Type() BookingType { return TypeDeprecation }
func (Deprecation) balanceSign() int  { return +1 }
func (Deprecation) bind(in BookingInput) (Booking, BookingErrors) {
	l, errs := bindLeg(in)
	return Deprecation{l}, errs
}
func (b Deprecation) MarshalJSON() ([]byte, error) { return marshalBooking(b) }

// Input returns the booking in its submitted form, e.g. to prefill an edit.
func Input(b Booking) BookingInput {
	in := BookingInput{Type: string(b.Type()), Amount: b.Value().String(), Note: b.Memo()}
	switch v := b.(type) {
	case AccountBooking:
		in.AccountID = v.Account()
	case Income:
		in.CategoryID, in.Currency = v.CategoryID, v.Currency
	case Expense:
		in.CategoryID, in.Currency = v.CategoryID, v.Currency
	}
	return in
}

// marshalBooking writes a booking in the same shape as its input.
func marshalBooking(b Booking) ([]byte, error) {
	in := Input(b)
	var w objectWriter
	w.Field("type", b.Type())
	w.OptionalField("accountId", in.AccountID)
	w.OptionalField("categoryId", in.CategoryID)
	w.OptionalField("currency", in.Currency)
	w.Field("amount", b.Value())
	w.OptionalField("note", in.Note)
	return w.MarshalJSON()
}

// categoryOf returns the category of an Income or Expense booking.
func categoryOf(b Booking) (string, bool) {
	switch v := b.(type) {
	case Income:
		return v.CategoryID, true
	case Expense:
		return v.CategoryID, true
	}
	return "", false
}
