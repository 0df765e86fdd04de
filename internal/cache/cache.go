package cache

import (
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TTLCache wraps go-cache with composite string keys. Expired entries are
// reclaimed by the janitor sweep, so the set of keys ever seen does not grow
// without bound over the life of the process.
type TTLCache struct {
	store *gocache.Cache
}

func New(defaultTTL, cleanupEvery time.Duration) *TTLCache {
	if defaultTTL <= 0 {
		defaultTTL = time.Second
	}
	if cleanupEvery <= 0 {
		cleanupEvery = time.Minute
	}
	return &TTLCache{store: gocache.New(defaultTTL, cleanupEvery)}
}

// Key builds the composite cache key (e.g. tab/page/limit, chain/address).
// Parts are query-escaped first: several of them are caller-supplied strings,
// and an unescaped separator inside one part could collide two distinct keys.
func Key(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, part := range parts {
		escaped[i] = url.QueryEscape(part)
	}
	return strings.Join(escaped, "|")
}

func (c *TTLCache) Get(key string) (any, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}
	return c.store.Get(key)
}

func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	if c == nil || c.store == nil {
		return
	}
	if ttl <= 0 {
		c.store.SetDefault(key, value)
		return
	}
	c.store.Set(key, value, ttl)
}

func (c *TTLCache) Delete(key string) {
	if c == nil || c.store == nil {
		return
	}
	c.store.Delete(key)
}
