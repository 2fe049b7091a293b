package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/finances"
	md "github.com/nao1215/markdown"
)

// BalancesMarkdown renders the account balances grouped by asset class, valued
// in the reference currency.
func BalancesMarkdown(groups []finances.AssetClassGroup, reference string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Balances in %s", reference))

	for _, g := range groups {
		doc.H2(fmt.Sprintf("%s: %s", g.Name, money(g.Total, reference)))
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Account", "Balance", "Value"},
			Rows:   [][]string{},
		}
		for _, cb := range g.Accounts {
			table.Rows = append(table.Rows, []string{
				cb.Account.Name,
				money(cb.Native, cb.Currency),
				money(cb.Reference, reference),
			})
		}
		doc.Table(table)
	}
	doc.PlainText(md.Bold(fmt.Sprintf("Net worth: %s", money(finances.NetWorth(groups), reference))))
	return doc.String()
}
