// Package cache memoises derived values, such as ledger lines, per user.
//
// The cache is best effort: losing an entry only costs a recomputation.
// Writers invalidate the keys they make stale.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// Cache is a per user key value cache, safe for concurrent use.
type Cache struct {
	items *gocache.Cache
}

// New returns a cache whose entries expire after ttl. A zero ttl never expires.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Cache{items: gocache.New(ttl, 10*time.Minute)}
}

// key namespaces k for user.
func key(user, k string) string { return user + "/" + k }

// Get returns the value stored for user under k, if any.
func (c *Cache) Get(user, k string) (any, bool) {
	if c == nil {
		return nil, false
	}
	return c.items.Get(key(user, k))
}

// Set stores v for user under k.
func (c *Cache) Set(user, k string, v any) {
	if c == nil {
		return
	}
	c.items.Set(key(user, k), v, gocache.DefaultExpiration)
}

// Invalidate drops the entries of user for all keys.
func (c *Cache) Invalidate(user string, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	for _, k := range keys {
		c.items.Delete(key(user, k))
	}
	log.Debug().Str("user", user).Strs("keys", keys).Msg("cache invalidated")
}

// Flush drops every entry of every user.
func (c *Cache) Flush() {
	if c == nil {
		return
	}
	c.items.Flush()
}

// Len returns the number of entries currently stored, expired or not.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.items.ItemCount()
}
