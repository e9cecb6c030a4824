package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"studyspot-backend/internal/models"
	"studyspot-backend/internal/repository"
)

// IdentityCache is a bounded read-through cache over the user directory.
// Identity data is decorative, so lookups degrade to a placeholder instead
// of failing the surrounding request. The clock is injected for tests.
type IdentityCache struct {
	mu       sync.Mutex
	users    *repository.UserRepo
	entries  map[uuid.UUID]identityEntry
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

type identityEntry struct {
	identity models.Identity
	cachedAt time.Time
}

func NewIdentityCache(users *repository.UserRepo, capacity int, ttl time.Duration) *IdentityCache {
	return &IdentityCache{
		users:    users,
		entries:  make(map[uuid.UUID]identityEntry),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the user's display identity, hitting the store at most once
// per TTL window. Unknown users resolve to the "Unknown" placeholder.
func (c *IdentityCache) Get(ctx context.Context, userID uuid.UUID) models.Identity {
	c.mu.Lock()
	if e, ok := c.entries[userID]; ok && c.now().Sub(e.cachedAt) < c.ttl {
		c.mu.Unlock()
		return e.identity
	}
	c.mu.Unlock()

	ident, err := c.users.GetIdentity(ctx, userID)
	if err != nil {
		return models.Identity{UserID: userID, Username: "Unknown", Avatar: "❓"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	c.entries[userID] = identityEntry{identity: *ident, cachedAt: c.now()}
	return *ident
}

// evictOldest drops the stalest entry. Callers hold the lock.
func (c *IdentityCache) evictOldest() {
	var oldestID uuid.UUID
	var oldestAt time.Time
	first := true
	for id, e := range c.entries {
		if first || e.cachedAt.Before(oldestAt) {
			oldestID, oldestAt = id, e.cachedAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestID)
	}
}
