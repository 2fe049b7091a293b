package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/finances"
	"github.com/etnz/finances/date"
	md "github.com/nao1215/markdown"
)

// LedgerMarkdown renders the ledger of an account, one section per date.
func LedgerMarkdown(acc finances.Account, r date.Range, groups []finances.LedgerDateGroup) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Ledger of %s", acc.Name))
	doc.PlainText(fmt.Sprintf("Account %s (%s, %s), %s.", acc.ID, acc.Type, acc.Unit, r))

	if len(groups) == 0 {
		doc.PlainText("No bookings.")
		return doc.String()
	}

	for _, g := range groups {
		doc.H2(fmt.Sprintf("%s: %s", g.Date, amount(g.Balance, acc)))
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Type", "Description", "Amount", "Balance"},
			Rows:   [][]string{},
		}
		for _, line := range g.Lines {
			desc := line.Booking.Memo()
			if desc == "" {
				desc = line.Note
			}
			table.Rows = append(table.Rows, []string{
				string(line.Booking.Type()),
				desc,
				signed(line.Delta(), acc),
				amount(line.Balance, acc),
			})
		}
		doc.Table(table)
	}
	return doc.String()
}
