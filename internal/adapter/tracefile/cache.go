package tracefile

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// CachedSource wraps a Source with an in-memory LRU of day payloads keyed by
// file modification time and size, so watch-mode sweeps skip re-reading the
// unchanged bulk of the trace directory. A re-downloaded day gets a new
// mod time and misses the cache.
type CachedSource struct {
	inner *Source
	cache *lruCache
}

// NewCachedSource creates a cache decorator around a Source.
func NewCachedSource(inner *Source, maxEntries int) *CachedSource {
	return &CachedSource{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

// ListDays delegates to the underlying Source; listings are cheap and must
// always reflect the directory.
func (c *CachedSource) ListDays(ctx context.Context) ([]time.Time, error) {
	return c.inner.ListDays(ctx)
}

// Fetch returns the cached payload when the file on disk is unchanged,
// reading and caching it otherwise.
func (c *CachedSource) Fetch(ctx context.Context, day time.Time) ([]byte, error) {
	info, err := os.Stat(c.inner.path(day))
	if err != nil {
		return nil, fmt.Errorf("stat trace file: %w", err)
	}

	key := fmt.Sprintf("%s|%d|%d", day.Format(time.DateOnly), info.ModTime().UnixNano(), info.Size())
	if payload, ok := c.cache.get(key); ok {
		return payload, nil
	}

	payload, err := c.inner.Fetch(ctx, day)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, payload)
	return payload, nil
}

// lruCache is a simple thread-safe LRU cache for raw day payloads.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key     string
	payload []byte
	prev    *entry
	next    *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.payload, true
}

func (c *lruCache) put(key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.payload = payload
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, payload: payload}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
