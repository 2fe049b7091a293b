package finances

import (
	"context"
	"fmt"
	"slices"

	"github.com/etnz/finances/forex"
	"github.com/shopspring/decimal"
)

// ErrMissingRate is returned when a balance cannot be converted for lack of a rate.
var ErrMissingRate = forex.ErrMissingRate

// RateSource provides exchange rates quoted against a common base currency.
type RateSource interface {
	Rates(ctx context.Context, currencies []string) (map[string]decimal.Decimal, error)
}

// AccountBalance is the final balance of an account, in the account unit.
type AccountBalance struct {
	Account Account
	Balance decimal.Decimal
}

// ConvertedBalance is an account balance in its native currency and in the
// reference currency.
type ConvertedBalance struct {
	Account   Account
	Currency  string          // Currency of Native.
	Native    decimal.Decimal // Native is the balance valued in Currency (shares times price for stocks).
	Reference decimal.Decimal
}

// AssetClassGroup is the set of accounts of an asset class, totalled in the
// reference currency.
type AssetClassGroup struct {
	ID       string
	Name     string
	Accounts []ConvertedBalance
	Total    decimal.Decimal
}

const (
	// OtherClassID groups asset accounts without an asset class.
	OtherClassID = "other"
	// LiabilityClassID groups all the liability accounts.
	LiabilityClassID = "liability"
)

// AggregateByAssetClass converts balances to the reference currency and
// groups them by asset class.
//
// Groups follow the declaration order of classes, then asset accounts without
// a known class, then liabilities. Empty groups are omitted. All rates are
// requested in a single call, and no partial result is returned on failure.
func AggregateByAssetClass(ctx context.Context, rates RateSource, reference string, balances []AccountBalance, classes []AssetClass, stocks []Stock) ([]AssetClassGroup, error) {
	stockByID := make(map[string]Stock, len(stocks))
	for _, s := range stocks {
		stockByID[s.ID] = s
	}

	converted := make([]ConvertedBalance, 0, len(balances))
	currencies := []string{reference}
	for _, ab := range balances {
		cb := ConvertedBalance{Account: ab.Account, Currency: ab.Account.Unit.Currency, Native: ab.Balance}
		if ab.Account.Unit.IsStock() {
			s, ok := stockByID[ab.Account.Unit.StockID]
			if !ok {
				return nil, fmt.Errorf("account %q: %w %q", ab.Account.ID, ErrUnknownStock, ab.Account.Unit.StockID)
			}
			cb.Currency, cb.Native = s.Currency, ab.Balance.Mul(s.Price)
		}
		if !slices.Contains(currencies, cb.Currency) {
			currencies = append(currencies, cb.Currency)
		}
		converted = append(converted, cb)
	}

	var rateMap map[string]decimal.Decimal
	if len(currencies) > 1 {
		var err error
		if rateMap, err = rates.Rates(ctx, currencies); err != nil {
			return nil, fmt.Errorf("cannot get exchange rates: %w", err)
		}
	}
	for i, cb := range converted {
		ref, err := forex.Convert(cb.Native, cb.Currency, reference, rateMap)
		if err != nil {
			return nil, fmt.Errorf("cannot convert account %q to %s: %w", cb.Account.ID, reference, err)
		}
		converted[i].Reference = ref
	}

	groups := make([]AssetClassGroup, 0, len(classes)+2)
	for _, c := range classes {
		groups = append(groups, AssetClassGroup{ID: c.ID, Name: c.Name})
	}
	groups = append(groups,
		AssetClassGroup{ID: OtherClassID, Name: "Other"},
		AssetClassGroup{ID: LiabilityClassID, Name: "Liability"},
	)
	index := func(cb ConvertedBalance) int {
		if cb.Account.Type == Liability {
			return len(groups) - 1
		}
		for i, c := range classes {
			if c.ID == cb.Account.AssetClassID {
				return i
			}
		}
		return len(groups) - 2
	}
	for _, cb := range converted {
		g := &groups[index(cb)]
		g.Accounts = append(g.Accounts, cb)
		g.Total = g.Total.Add(cb.Reference)
	}
	return slices.DeleteFunc(groups, func(g AssetClassGroup) bool { return len(g.Accounts) == 0 }), nil
}

// NetWorth returns the sum of all group totals. Liability balances are
// already negative once charged, so they are added like any other group.
func NetWorth(groups []AssetClassGroup) decimal.Decimal {
	net := decimal.Zero
	for _, g := range groups {
		net = net.Add(g.Total)
	}
	return net
}
