// Package collectioncache maintains a client-side mirror of a user's
// collection set so "is this collected?" can be answered without a round
// trip per item. The cache is derived state only: the server remains the
// system of record, and the set is rebuilt from server truth on login and
// after reconciliation.
package collectioncache

import (
	"context"
	"sync"

	"github.com/moxuanli/frs/backend/internal/models"
)

// Entry identifies one collected target.
type Entry struct {
	Kind     models.CollectionType
	TargetID uint
}

// Source supplies pages of the authoritative collection set during Refresh.
type Source interface {
	// FetchPage returns one page of entries plus the total page count so
	// the cache knows when to stop.
	FetchPage(ctx context.Context, page, limit int) ([]Entry, int, error)
}

// refreshPageSize keeps Refresh to a handful of round trips for typical
// collection sizes. Matches the server's maximum page size.
const refreshPageSize = 50

// Cache is a concurrency-safe set of collected (kind, targetId) pairs.
// The zero value is not usable; call New.
type Cache struct {
	mu  sync.RWMutex
	set map[Entry]struct{}
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{set: make(map[Entry]struct{})}
}

// Refresh replaces the entire local set by paging through the source. The
// swap is atomic: readers see either the old set or the complete new one,
// never a partially loaded set. Call after login and after any mutation's
// server confirmation when exact reconciliation is wanted.
func (c *Cache) Refresh(ctx context.Context, src Source) error {
	fresh := make(map[Entry]struct{})
	for page := 1; ; page++ {
		entries, totalPages, err := src.FetchPage(ctx, page, refreshPageSize)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fresh[e] = struct{}{}
		}
		if page >= totalPages {
			break
		}
	}

	c.mu.Lock()
	c.set = fresh
	c.mu.Unlock()
	return nil
}

// IsCollected reports membership. O(1), safe for concurrent use.
func (c *Cache) IsCollected(kind models.CollectionType, targetID uint) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.set[Entry{Kind: kind, TargetID: targetID}]
	return ok
}

// OptimisticAdd records a pending add before server confirmation. If the
// server later rejects the add with anything other than "already exists",
// the caller must roll back with OptimisticRemove.
func (c *Cache) OptimisticAdd(kind models.CollectionType, targetID uint) {
	c.mu.Lock()
	c.set[Entry{Kind: kind, TargetID: targetID}] = struct{}{}
	c.mu.Unlock()
}

// OptimisticRemove records a pending remove before server confirmation. A
// "not found" response from the server means the entry was already gone and
// needs no rollback; any other rejection should be rolled back with
// OptimisticAdd.
func (c *Cache) OptimisticRemove(kind models.CollectionType, targetID uint) {
	c.mu.Lock()
	delete(c.set, Entry{Kind: kind, TargetID: targetID})
	c.mu.Unlock()
}

// Clear empties the set. Call on logout.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.set = make(map[Entry]struct{})
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.set)
}
