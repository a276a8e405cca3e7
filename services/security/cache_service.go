package security

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	// DefaultTokenTTL applies when a token response carries no expiry of its
	// own.
	DefaultTokenTTL = 5 * time.Minute

	purgeInterval = 10 * time.Minute
)

// TokenCache holds bearer tokens for the life of the process. Entries expire
// on the token's own schedule; nothing survives the run.
type TokenCache struct {
	c *cache.Cache
}

func NewTokenCache() *TokenCache {
	return &TokenCache{
		c: cache.New(DefaultTokenTTL, purgeInterval),
	}
}

func (tc *TokenCache) Insert(k string, x interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	tc.c.Set(k, x, ttl)
}

func (tc *TokenCache) Get(key string) (interface{}, error) {
	val, found := tc.c.Get(key)
	if found {
		return val, nil
	}

	return nil, fmt.Errorf("value not found")
}

func (tc *TokenCache) Flush() {
	tc.c.Flush()
}
