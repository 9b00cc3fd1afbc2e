// Package cache keeps read-through copies of users. Users are immutable after
// registration, so entries never need invalidation beyond their TTL.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"

	"jan-server/services/messaging-api/internal/domain/user"
)

// Cache stores users by id.
type Cache interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, bool)
	Set(ctx context.Context, u *user.User)
}

// MemoryCache is a size-bounded LRU with per-entry expiry.
type MemoryCache struct {
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
}

type cacheEntry struct {
	value     user.User
	expiresAt time.Time
}

// NewMemoryCache creates an LRU cache holding at most maxSize users.
func NewMemoryCache(maxSize int, ttl time.Duration) (*MemoryCache, error) {
	c, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{cache: c, ttl: ttl, now: time.Now}, nil
}

func (c *MemoryCache) Get(_ context.Context, id uuid.UUID) (*user.User, bool) {
	c.mu.RLock()
	raw, ok := c.cache.Get(id)
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	entry := raw.(cacheEntry)
	if c.ttl > 0 && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		c.cache.Remove(id)
		c.mu.Unlock()
		return nil, false
	}
	u := entry.value
	return &u, true
}

func (c *MemoryCache) Set(_ context.Context, u *user.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(u.ID, cacheEntry{value: *u, expiresAt: c.now().Add(c.ttl)})
}

// Tiered consults caches in order and back-fills the faster tiers on a hit.
type Tiered []Cache

func (t Tiered) Get(ctx context.Context, id uuid.UUID) (*user.User, bool) {
	for i, c := range t {
		if u, ok := c.Get(ctx, id); ok {
			for _, faster := range t[:i] {
				faster.Set(ctx, u)
			}
			return u, true
		}
	}
	return nil, false
}

func (t Tiered) Set(ctx context.Context, u *user.User) {
	for _, c := range t {
		c.Set(ctx, u)
	}
}
