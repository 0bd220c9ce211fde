package groundwater

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ttlCache is a thread-safe map with per-entry expiry, checked lazily on
// read. Values are deterministic functions of the key, so concurrent
// redundant population is harmless (last writer wins, no fetch coordination).
type ttlCache struct {
	clock   clockwork.Clock
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	status  BlockStatus
	expires time.Time
}

func newTTLCache(clock clockwork.Clock, ttl time.Duration) *ttlCache {
	return &ttlCache{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *ttlCache) get(key string) (BlockStatus, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return BlockStatus{}, false
	}
	if c.clock.Now().After(e.expires) {
		// Expired: evict on read rather than with a background sweeper.
		c.mu.Lock()
		if cur, still := c.entries[key]; still && c.clock.Now().After(cur.expires) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return BlockStatus{}, false
	}
	return e.status, true
}

func (c *ttlCache) put(key string, status BlockStatus) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{status: status, expires: c.clock.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *ttlCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
