package finances

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/finances/date"
)

// TransactionInput is a transaction as submitted, before validation.
type TransactionInput struct {
	Date     string         `json:"date"`
	Note     string         `json:"note,omitempty"`
	Bookings []BookingInput `json:"bookings"`
}

// Transaction is a balanced set of bookings on a given date.
//
// Its bookings are always replaced as a whole: editing a transaction means
// recording a new booking set under the same ID.
type Transaction struct {
	ID       string
	Date     date.Date
	Note     string
	Bookings []Booking
	Seq      int // Seq is the creation order, it breaks ties between same day transactions.
}

// Accounts returns the distinct accounts moved by this transaction, in booking order.
func (t Transaction) Accounts() []string {
	var ids []string
	for _, b := range t.Bookings {
		if ab, ok := b.(AccountBooking); ok && !slices.Contains(ids, ab.Account()) {
			ids = append(ids, ab.Account())
		}
	}
	return ids
}

// Input returns the transaction in its submitted form.
func (t Transaction) Input() TransactionInput {
	in := TransactionInput{Date: t.Date.String(), Note: t.Note}
	for _, b := range t.Bookings {
		in.Bookings = append(in.Bookings, Input(b))
	}
	return in
}

// compare orders transactions chronologically.
func (t Transaction) compare(o Transaction) int {
	if c := t.Date.Compare(o.Date); c != 0 {
		return c
	}
	return t.Seq - o.Seq
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w objectWriter
	w.OptionalField("id", t.ID)
	w.OptionalField("seq", t.Seq)
	w.Field("date", t.Date)
	w.OptionalField("note", t.Note)
	w.Field("bookings", t.Bookings)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
// Every booking is bound to its type, and must be free of field errors.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID       string         `json:"id"`
		Seq      int            `json:"seq"`
		Date     date.Date      `json:"date"`
		Note     string         `json:"note"`
		Bookings []BookingInput `json:"bookings"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	var errs error
	bookings := make([]Booking, 0, len(temp.Bookings))
	for i, in := range temp.Bookings {
		b, e := in.Bind()
		if !e.IsEmpty() {
			errs = errors.Join(errs, fmt.Errorf("booking #%d: %+v", i+1, e))
			continue
		}
		bookings = append(bookings, b)
	}
	if errs != nil {
		return fmt.Errorf("transaction %q on %s: %w", temp.ID, temp.Date, errs)
	}
	*t = Transaction{ID: temp.ID, Seq: temp.Seq, Date: temp.Date, Note: temp.Note, Bookings: bookings}
	return nil
}
