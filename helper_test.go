package finances

import (
	"testing"

	"github.com/etnz/finances/date"
	"github.com/shopspring/decimal"
)

// dec is a helper for test to create decimals from const.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// day is a helper for test to create dates from const.
func day(s string) date.Date { return date.MustParse(s) }

// testBook returns a book with two EUR accounts, a USD one and a stock account.
func testBook(t *testing.T) *Book {
	t.Helper()
	b := NewBook("alice", nil)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(b.AddAssetClass(AssetClass{ID: "cash", Name: "Cash"}))
	must(b.AddAssetClass(AssetClass{ID: "stocks", Name: "Stocks"}))
	must(b.AddCategory(Category{ID: "groceries", Name: "Groceries"}))
	must(b.AddCategory(Category{ID: "salary", Name: "Salary"}))
	must(b.AddStock(Stock{ID: "ACME", Name: "Acme Corp", Currency: "USD", Price: dec("20")}))
	must(b.AddAccount(Account{ID: "checking", Name: "Checking", Type: Asset, AssetClassID: "cash", Unit: CurrencyUnit("EUR"), PreExisting: true, BalanceAtStart: dec("100")}))
	must(b.AddAccount(Account{ID: "savings", Name: "Savings", Type: Asset, AssetClassID: "cash", Unit: CurrencyUnit("EUR"), OpeningDate: day("2025-01-01")}))
	must(b.AddAccount(Account{ID: "broker", Name: "Broker", Type: Asset, AssetClassID: "stocks", Unit: StockUnit("ACME"), PreExisting: true, BalanceAtStart: dec("10")}))
	must(b.AddAccount(Account{ID: "card", Name: "Credit card", Type: Liability, Unit: CurrencyUnit("USD"), OpeningDate: day("2025-01-01")}))
	return b
}
