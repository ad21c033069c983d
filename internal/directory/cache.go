package directory

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Cache stores raw collaborator responses keyed by request URL. It exists
// to absorb repeat hierarchy fetches; availability checks are never
// cached.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// MemoryCache is an in-process LRU cache with per-entry TTL.
type MemoryCache struct {
	capacity int
	cache    map[string]*list.Element
	lru      *list.List
	mu       sync.Mutex
	now      func() time.Time
}

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a cache holding at most capacity entries.
func NewMemoryCache(capacity int) *MemoryCache {
	return &MemoryCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lru:      list.New(),
		now:      time.Now,
	}
}

// Get returns the cached value for key if present and not expired.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.cache[key]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*memoryEntry)
	if c.now().After(entry.expiresAt) {
		c.lru.Remove(elem)
		delete(c.cache, key)
		return nil, false
	}
	c.lru.MoveToFront(elem)
	return entry.value, true
}

// Set stores value under key, evicting the oldest entry if at capacity.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(ttl)
	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		entry := elem.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		return
	}

	elem := c.lru.PushFront(&memoryEntry{key: key, value: value, expiresAt: expiresAt})
	c.cache[key] = elem

	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.cache, oldest.Value.(*memoryEntry).key)
		}
	}
}
