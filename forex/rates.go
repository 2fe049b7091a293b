package forex

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultFreshness is how long a fetched quote is served without refetching.
const DefaultFreshness = time.Hour

// ErrMissingRate is returned when a rate is needed but none is known.
var ErrMissingRate = errors.New("missing exchange rate")

// Rates serves exchange rates against Base, from Store while they are fresh
// and from Provider otherwise.
type Rates struct {
	Base      string
	Freshness time.Duration
	Store     Store
	Provider  Fetcher

	now func() time.Time
}

// NewRates returns the rate service for base. A nil store is replaced by a
// MemoryStore.
func NewRates(base string, provider Fetcher, store Store) *Rates {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Rates{
		Base:      base,
		Freshness: DefaultFreshness,
		Store:     store,
		Provider:  provider,
		now:       time.Now,
	}
}

// Rates returns the rate of every currency in currencies.
//
// The base currency rate is always 1. Codes that are not fresh in the store
// are fetched in a single provider call, whose failure fails the whole call.
// Store failures only cost a refetch.
func (r *Rates) Rates(ctx context.Context, currencies []string) (map[string]decimal.Decimal, error) {
	now := time.Now
	if r.now != nil {
		now = r.now
	}
	freshness := r.Freshness
	if freshness <= 0 {
		freshness = DefaultFreshness
	}

	rates := make(map[string]decimal.Decimal, len(currencies))
	var wanted []string
	for _, code := range currencies {
		code = strings.ToUpper(code)
		if code == r.Base {
			rates[code] = decimal.NewFromInt(1)
			continue
		}
		if !slices.Contains(wanted, code) {
			wanted = append(wanted, code)
		}
	}
	if len(wanted) == 0 {
		return rates, nil
	}

	stored, err := r.Store.Load(ctx, wanted)
	if err != nil {
		log.Warn().Err(err).Msg("cannot read rate store, fetching all rates")
		stored = nil
	}
	var missing []string
	for _, code := range wanted {
		if q, ok := stored[code]; ok && now().Sub(q.FetchedAt) < freshness {
			rates[code] = q.Rate
			continue
		}
		missing = append(missing, code)
	}
	if len(missing) == 0 {
		return rates, nil
	}

	if r.Provider == nil {
		return nil, fmt.Errorf("%w: no rate provider for %s", ErrMissingRate, strings.Join(missing, ","))
	}
	fetched, err := r.Provider.Fetch(ctx, r.Base, missing)
	if err != nil {
		return nil, err
	}
	fetchedAt := now()
	quotes := make([]Quote, 0, len(fetched))
	for _, code := range missing {
		rate, ok := fetched[code]
		if !ok {
			return nil, fmt.Errorf("%w: provider has no rate for %s", ErrMissingRate, code)
		}
		rates[code] = rate
		quotes = append(quotes, Quote{Code: code, Rate: rate, FetchedAt: fetchedAt})
	}
	if err := r.Store.Save(ctx, quotes); err != nil {
		log.Warn().Err(err).Msg("cannot save fetched rates")
	}
	return rates, nil
}

// Convert converts amount from one currency to another using rates quoted
// against a common base.
func Convert(amount decimal.Decimal, from, to string, rates map[string]decimal.Decimal) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rf, ok := rates[from]
	if !ok || rf.IsZero() {
		return decimal.Zero, fmt.Errorf("%w for %s", ErrMissingRate, from)
	}
	rt, ok := rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w for %s", ErrMissingRate, to)
	}
	return amount.Mul(rt).Div(rf), nil
}
