package renderer

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// RatesMarkdown renders exchange rates quoted against base.
func RatesMarkdown(base string, rates map[string]decimal.Decimal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Exchange rates for 1 %s", base))
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Currency", "Rate"},
		Rows:      [][]string{},
	}
	for _, code := range slices.Sorted(maps.Keys(rates)) {
		table.Rows = append(table.Rows, []string{code, rates[code].String()})
	}
	doc.Table(table)
	return doc.String()
}
