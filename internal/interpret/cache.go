package interpret

import (
	"fmt"
	"sync"
	"time"
)

// DefaultCacheTTL bounds how long a remote-derived instruction is reused
// for an identical (text, shape count) request.
const DefaultCacheTTL = 60 * time.Second

type cacheEntry struct {
	instruction Instruction
	storedAt    time.Time
}

// Cache is the request-level instruction cache. It is owned and injected
// rather than package-global so tests can control the TTL and the clock.
// Entries expire by TTL only; there is no explicit invalidation. Duplicate
// in-flight requests for the same key are not deduplicated: both perform
// the remote call and the later write wins.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache with the given TTL. A non-positive TTL falls
// back to the default.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// SetClock replaces the time source. Test hook.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Key builds the composite cache key from the raw utterance and the
// current shape count.
func Key(text string, shapeCount int) string {
	return fmt.Sprintf("%s\x00%d", text, shapeCount)
}

// Get returns the cached instruction for key if it is younger than the
// TTL. Expired entries are removed on the way out.
func (c *Cache) Get(key string) (Instruction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Instruction{}, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		return Instruction{}, false
	}
	return e.instruction, true
}

// Put stores a remote-derived instruction. Fallback instructions are never
// cached; the gateway enforces that.
func (c *Cache) Put(key string, in Instruction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{instruction: in, storedAt: c.now()}
}

// Clear drops every entry. Test isolation hook.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len reports the live entry count, counting expired entries until they
// are lazily evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
