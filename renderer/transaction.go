package renderer

import (
	"fmt"

	"github.com/etnz/finances"
)

// Booking renders a booking to a one line description.
func Booking(b finances.Booking) string {
	in := finances.Input(b)
	var s string
	switch b.(type) {
	case finances.Charge:
		s = fmt.Sprintf("Charged %s to %s", b.Value(), in.AccountID)
	case finances.Deposit:
		s = fmt.Sprintf("Deposited %s on %s", b.Value(), in.AccountID)
	case finances.Income:
		s = fmt.Sprintf("Earned %s in %s", money(b.Value(), in.Currency), in.CategoryID)
	case finances.Expense:
		s = fmt.Sprintf("Spent %s in %s", money(b.Value(), in.Currency), in.CategoryID)
	case finances.Appreciation:
		s = fmt.Sprintf("Appreciated by %s", b.Value())
	case finances.Deprecation:
		s = fmt.Sprintf("Depreciated by %s", b.Value())
	default:
		s = string(b.Type())
	}
	if b.Memo() != "" {
		s += " (" + b.Memo() + ")"
	}
	return s
}

// Transaction renders a transaction to a one line description.
func Transaction(tx finances.Transaction) string {
	s := tx.Date.String()
	if tx.Note != "" {
		s += " " + tx.Note
	}
	s += ":"
	for i, b := range tx.Bookings {
		if i > 0 {
			s += ","
		}
		s += " " + Booking(b)
	}
	return s
}
