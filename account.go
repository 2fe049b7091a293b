package finances

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/etnz/finances/date"
	"github.com/shopspring/decimal"
)

// AccountType tells whether an account holds something the user owns or owes.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
)

// Unit is what an account balance is counted in: a currency or shares of a stock.
// Exactly one of Currency and StockID is set.
type Unit struct {
	Currency string
	StockID  string
}

func CurrencyUnit(code string) Unit { return Unit{Currency: code} }
func StockUnit(id string) Unit      { return Unit{StockID: id} }

func (u Unit) IsStock() bool { return u.StockID != "" }

func (u Unit) String() string {
	if u.IsStock() {
		return u.StockID
	}
	return u.Currency
}

// Account is a user's account. Its balance is derived from its bookings.
type Account struct {
	ID           string
	Name         string
	Type         AccountType
	AssetClassID string // AssetClassID groups ASSET accounts, it is ignored for liabilities.
	Unit         Unit

	// PreExisting accounts were opened before being tracked, they start at
	// BalanceAtStart. Other accounts start at zero on their OpeningDate.
	PreExisting    bool
	BalanceAtStart decimal.Decimal
	OpeningDate    date.Date
}

// InitialBalance returns the balance before any booking.
func (a Account) InitialBalance() decimal.Decimal {
	if a.PreExisting {
		return a.BalanceAtStart
	}
	return decimal.Zero
}

// Validate checks the account definition.
func (a Account) Validate() error {
	var errs error
	if a.ID == "" {
		errs = errors.Join(errs, errors.New("account id is missing"))
	}
	if a.Name == "" {
		errs = errors.Join(errs, errors.New("account name is missing"))
	}
	if a.Type != Asset && a.Type != Liability {
		errs = errors.Join(errs, fmt.Errorf("account type must be %s or %s, got %q", Asset, Liability, a.Type))
	}
	switch {
	case a.Unit.Currency != "" && a.Unit.StockID != "":
		errs = errors.Join(errs, errors.New("account unit is either a currency or a stock, not both"))
	case a.Unit.StockID == "":
		if err := ValidateCurrency(a.Unit.Currency); err != nil {
			errs = errors.Join(errs, fmt.Errorf("invalid account currency: %w", err))
		}
	}
	if !a.PreExisting && a.OpeningDate.IsZero() {
		errs = errors.Join(errs, errors.New("an account that is not pre-existing needs an opening date"))
	}
	if errs != nil {
		return fmt.Errorf("invalid account %q: %w", a.ID, errs)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Account.
func (a Account) MarshalJSON() ([]byte, error) {
	var w objectWriter
	w.Field("id", a.ID)
	w.Field("name", a.Name)
	w.Field("type", a.Type)
	w.OptionalField("assetClass", a.AssetClassID)
	w.OptionalField("currency", a.Unit.Currency)
	w.OptionalField("stock", a.Unit.StockID)
	if a.PreExisting {
		w.Field("preExisting", true)
		w.Field("balanceAtStart", a.BalanceAtStart)
	}
	w.OptionalField("openingDate", a.OpeningDate)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Account.
func (a *Account) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID             string          `json:"id"`
		Name           string          `json:"name"`
		Type           AccountType     `json:"type"`
		AssetClass     string          `json:"assetClass"`
		Currency       string          `json:"currency"`
		Stock          string          `json:"stock"`
		PreExisting    bool            `json:"preExisting"`
		BalanceAtStart decimal.Decimal `json:"balanceAtStart"`
		OpeningDate    date.Date       `json:"openingDate"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*a = Account{
		ID:             temp.ID,
		Name:           temp.Name,
		Type:           temp.Type,
		AssetClassID:   temp.AssetClass,
		Unit:           Unit{Currency: temp.Currency, StockID: temp.Stock},
		PreExisting:    temp.PreExisting,
		BalanceAtStart: temp.BalanceAtStart,
		OpeningDate:    temp.OpeningDate,
	}
	return nil
}

// AssetClass groups asset accounts in balance reports (cash, stocks, real estate...).
type AssetClass struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category classifies incomes and expenses.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Stock is a security that accounts can hold shares of.
// Price is the value of one share in Currency.
type Stock struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Currency string          `json:"currency"`
	Price    decimal.Decimal `json:"price"`
}
