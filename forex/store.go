package forex

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// Quote is a rate as fetched from the provider.
type Quote struct {
	Code      string
	Rate      decimal.Decimal
	FetchedAt time.Time
}

// Store keeps the fetched quotes. Implementations must be safe for concurrent use.
type Store interface {
	// Load returns the stored quotes among codes. Unknown codes are absent from the result.
	Load(ctx context.Context, codes []string) (map[string]Quote, error)
	// Save inserts or replaces quotes.
	Save(ctx context.Context, quotes []Quote) error
}

// MemoryStore is a process scoped Store.
type MemoryStore struct {
	quotes *gocache.Cache
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{quotes: gocache.New(gocache.NoExpiration, 0)}
}

func (s *MemoryStore) Load(_ context.Context, codes []string) (map[string]Quote, error) {
	found := make(map[string]Quote, len(codes))
	for _, code := range codes {
		if v, ok := s.quotes.Get(code); ok {
			found[code] = v.(Quote)
		}
	}
	return found, nil
}

func (s *MemoryStore) Save(_ context.Context, quotes []Quote) error {
	for _, q := range quotes {
		s.quotes.Set(q.Code, q, gocache.NoExpiration)
	}
	return nil
}
