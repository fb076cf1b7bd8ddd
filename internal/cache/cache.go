package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Defaults matching the reference deployment.
const (
	DefaultCapacity = 15000
	DefaultTTL      = 6 * time.Hour
)

// entry wraps a serialized response body with its expiration time. TTL is
// counted from insertion, not from last access.
type entry struct {
	body      []byte
	expiresAt time.Time
}

// ResultCache maps canonical search keys to serialized response bodies.
type ResultCache struct {
	lru *lru.Cache[string, *entry]
	ttl time.Duration
}

// New creates a ResultCache. Non-positive capacity or TTL fall back to the
// defaults.
func New(capacity int, ttl time.Duration) (*ResultCache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	l, err := lru.New[string, *entry](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}
	return &ResultCache{lru: l, ttl: ttl}, nil
}

// Get returns the cached body for key, or (nil, false) on miss or expiry.
// An expired entry is removed so it stops counting against capacity.
func (c *ResultCache) Get(key string) ([]byte, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return e.body, true
}

// Put inserts or overwrites the body for key. The LRU evicts the oldest
// entry when the capacity bound would be exceeded.
func (c *ResultCache) Put(key string, body []byte) {
	c.lru.Add(key, &entry{
		body:      body,
		expiresAt: time.Now().Add(c.ttl),
	})
}

// Len reports the number of live entries, expired or not.
func (c *ResultCache) Len() int {
	return c.lru.Len()
}
