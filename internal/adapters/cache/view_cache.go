package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// RistrettoViewCache keeps rendered market views for a short TTL so hot
// query endpoints do not re-project the whole snapshot on every request.
type RistrettoViewCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewViewCache(maxItems int64, ttl time.Duration) (*RistrettoViewCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create view cache failed: %w", err)
	}
	return &RistrettoViewCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoViewCache) Get(key string) ([]byte, bool) {
	if v, ok := c.cache.Get(key); ok {
		body, ok := v.([]byte)
		return body, ok
	}
	return nil, false
}

func (c *RistrettoViewCache) Set(key string, body []byte) {
	c.cache.SetWithTTL(key, body, 1, c.ttl)
}

func (c *RistrettoViewCache) Close() { c.cache.Close() }
