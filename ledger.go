package finances

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/etnz/finances/date"
	"github.com/shopspring/decimal"
)

// PostedBooking is an account booking placed in time by its transaction.
type PostedBooking struct {
	TransactionID string
	Date          date.Date
	Seq           int    // Seq is the transaction creation order.
	Note          string // Note is the transaction note.
	Booking       AccountBooking
}

// LedgerLine is a booking with the account balance right after it.
type LedgerLine struct {
	PostedBooking
	Balance decimal.Decimal
}

// Delta returns the signed change of the account balance caused by this line.
func (l LedgerLine) Delta() decimal.Decimal { return l.Booking.ledgerDelta() }

// LedgerDateGroup gathers the ledger lines of a single day.
type LedgerDateGroup struct {
	Date    date.Date
	Lines   []LedgerLine
	Balance decimal.Decimal // Balance of the first line in iteration order.
}

// SortPosted sorts bookings chronologically: by date, then by transaction
// creation order. Bookings of the same transaction keep their order.
func SortPosted(bookings []PostedBooking) {
	slices.SortStableFunc(bookings, func(a, b PostedBooking) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})
}

// ComputeLedgerLines computes the running balance of acc over bookings, that
// must be in chronological order (see SortPosted) and all belong to acc.
//
// It panics if a booking belongs to another account: callers select the
// bookings of the account they compute.
func ComputeLedgerLines(acc Account, bookings []PostedBooking) []LedgerLine {
	lines := make([]LedgerLine, 0, len(bookings))
	balance := acc.InitialBalance()
	for _, p := range bookings {
		if p.Booking.Account() != acc.ID {
			panic(fmt.Sprintf("ledger of account %q cannot include a %s booking of account %q", acc.ID, p.Booking.Type(), p.Booking.Account()))
		}
		balance = balance.Add(p.Booking.ledgerDelta())
		lines = append(lines, LedgerLine{PostedBooking: p, Balance: balance})
	}
	return lines
}

// FinalBalance returns the balance after the last line, or the initial balance
// of acc if there are no lines.
func FinalBalance(acc Account, lines []LedgerLine) decimal.Decimal {
	if len(lines) == 0 {
		return acc.InitialBalance()
	}
	return lines[len(lines)-1].Balance
}

// ComputeDateGroups merges consecutive lines of the same date. If reverse is
// true the lines are iterated from the most recent one, and each group
// balance is then the balance after the last booking of that day.
//
// lines is not modified.
func ComputeDateGroups(lines []LedgerLine, reverse bool) []LedgerDateGroup {
	ordered := slices.Clone(lines)
	if reverse {
		slices.Reverse(ordered)
	}
	var groups []LedgerDateGroup
	for _, line := range ordered {
		if n := len(groups); n > 0 && groups[n-1].Date == line.Date {
			groups[n-1].Lines = append(groups[n-1].Lines, line)
			continue
		}
		groups = append(groups, LedgerDateGroup{
			Date:    line.Date,
			Lines:   []LedgerLine{line},
			Balance: line.Balance,
		})
	}
	return groups
}

// FilterLines returns the lines within r. Balances are not recomputed: they
// still account for the bookings before r.
func FilterLines(lines []LedgerLine, r date.Range) []LedgerLine {
	var filtered []LedgerLine
	for _, line := range lines {
		if r.Contains(line.Date) {
			filtered = append(filtered, line)
		}
	}
	return filtered
}
