package stream

import (
	"sync"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/dto"
)

// Cache is the local newest-first view of one channel's change history.
// It only grows while the owning subscription is connected: pushed records
// are prepended and the running total is monotonically non-decreasing.
type Cache struct {
	mu    sync.RWMutex
	items []dto.ChangeHistoryItem
	total int64
}

// NewCache builds an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Seed loads an initial page fetched over REST. total is the server-side
// count, which may exceed the page length; it never shrinks the running
// total.
func (c *Cache) Seed(items []dto.ChangeHistoryItem, total int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append([]dto.ChangeHistoryItem(nil), items...)
	if total > c.total {
		c.total = total
	}
}

// Prepend inserts a pushed record at the newest position and bumps the
// total.
func (c *Cache) Prepend(item dto.ChangeHistoryItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append([]dto.ChangeHistoryItem{item}, c.items...)
	c.total++
}

// Items returns a copy of the cached records, newest first.
func (c *Cache) Items() []dto.ChangeHistoryItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]dto.ChangeHistoryItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total returns the running record count.
func (c *Cache) Total() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total
}

// Len returns the number of locally held records.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
