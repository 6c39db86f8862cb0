// Package cache holds rendered response bodies in memory, bounded by entry
// count, total bytes and age.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Stats contains cache statistics.
type Stats struct {
	Hits       int64 `json:"hits"`
	Misses     int64 `json:"misses"`
	Evictions  int64 `json:"evictions"`
	Size       int   `json:"size"`
	MaxSize    int   `json:"max_size"`
	TotalBytes int64 `json:"total_bytes"`
	MaxBytes   int64 `json:"max_bytes"`
}

type entry struct {
	key       string
	body      []byte
	expiresAt time.Time
}

// ResponseCache is a thread-safe LRU cache of response bodies keyed by
// content digest. A zero limit disables that bound.
type ResponseCache struct {
	mu       sync.Mutex
	entries  map[string]*list.Element
	order    *list.List // front is most recently used
	maxSize  int
	maxBytes int64
	ttl      time.Duration
	bytes    int64
	stats    Stats
	now      func() time.Time
}

// NewResponseCache returns a cache holding at most entries bodies and
// maxBytes bytes. Entries older than ttl are treated as misses.
func NewResponseCache(entries int, maxBytes int64, ttl time.Duration) *ResponseCache {
	if entries < 0 {
		entries = 0
	}
	if maxBytes < 0 {
		maxBytes = 0
	}
	return &ResponseCache{
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		maxSize:  entries,
		maxBytes: maxBytes,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the body stored under key.
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	e := el.Value.(*entry)
	if c.ttl > 0 && c.now().After(e.expiresAt) {
		c.remove(el)
		c.stats.Misses++
		return nil, false
	}
	c.order.MoveToFront(el)
	c.stats.Hits++
	return e.body, true
}

// Put stores body under key and evicts least recently used entries until
// both limits hold. A body larger than the byte limit is not stored.
func (c *ResponseCache) Put(key string, body []byte) {
	size := int64(len(body))
	if c.maxBytes > 0 && size > c.maxBytes {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.remove(el)
	}
	e := &entry{key: key, body: body}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.entries[key] = c.order.PushFront(e)
	c.bytes += size

	for c.overLimit() {
		c.remove(c.order.Back())
		c.stats.Evictions++
	}
}

func (c *ResponseCache) overLimit() bool {
	if c.order.Len() == 0 {
		return false
	}
	return (c.maxSize > 0 && c.order.Len() > c.maxSize) ||
		(c.maxBytes > 0 && c.bytes > c.maxBytes)
}

// Remove drops key from the cache.
func (c *ResponseCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.remove(el)
	}
}

// Clear removes every entry. Counters are kept.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.bytes = 0
}

// Len returns the number of stored bodies, expired ones included.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of the counters and current usage.
func (c *ResponseCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Size = c.order.Len()
	s.MaxSize = c.maxSize
	s.TotalBytes = c.bytes
	s.MaxBytes = c.maxBytes
	return s
}

// remove must be called with mu held.
func (c *ResponseCache) remove(el *list.Element) {
	e := c.order.Remove(el).(*entry)
	delete(c.entries, e.key)
	c.bytes -= int64(len(e.body))
}
