package renderer

import (
	"github.com/etnz/finances"
	"github.com/shopspring/decimal"
)

// money formats value in currency, or as a plain number when currency is not set.
func money(value decimal.Decimal, currency string) string {
	if currency == "" {
		return value.String()
	}
	return finances.M(value, currency).String()
}

// amount formats value in the unit of acc: its currency, or its stock shares.
func amount(value decimal.Decimal, acc finances.Account) string {
	if acc.Unit.IsStock() {
		return value.String() + " " + acc.Unit.StockID
	}
	return money(value, acc.Unit.Currency)
}

// signed formats value like amount, with an explicit sign.
func signed(value decimal.Decimal, acc finances.Account) string {
	if value.IsNegative() {
		return "-" + amount(value.Neg(), acc)
	}
	return "+" + amount(value, acc)
}
