package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/finances"
	md "github.com/nao1215/markdown"
)

// ValidationMarkdown renders the errors found in a submitted transaction.
func ValidationMarkdown(in finances.TransactionInput, errs finances.FieldErrors) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if errs.IsEmpty() {
		doc.PlainText(fmt.Sprintf("Transaction on %s is valid.", in.Date))
		return doc.String()
	}

	doc.H1("Invalid transaction")
	var general []string
	if errs.Date != "" {
		general = append(general, fmt.Sprintf("date %q: %s", in.Date, errs.Date))
	}
	if errs.Form != "" {
		general = append(general, errs.Form)
	}
	if len(general) > 0 {
		doc.BulletList(general...)
	}

	if len(errs.Bookings) == 0 {
		return doc.String()
	}
	doc.H2("Bookings")
	table := md.TableSet{
		Header: []string{"#", "Type", "Field", "Error"},
		Rows:   [][]string{},
	}
	for i, e := range errs.Bookings {
		var typ string
		if i < len(in.Bookings) {
			typ = in.Bookings[i].Type
		}
		for _, f := range []struct{ name, msg string }{
			{"type", e.Type},
			{"account", e.AccountID},
			{"category", e.CategoryID},
			{"currency", e.Currency},
			{"amount", e.Amount},
		} {
			if f.msg != "" {
				table.Rows = append(table.Rows, []string{fmt.Sprint(i + 1), typ, f.name, f.msg})
			}
		}
	}
	doc.Table(table)
	return doc.String()
}
