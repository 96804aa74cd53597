package alerts

import "sync"

// recentCache is a thread-safe bounded buffer holding the most recent alert
// records across the whole process. It is rebuilt from durable storage
// after every write and is not partitioned per company: readers that need
// company filtering must go to storage, the cache only backs the fallback
// read path when storage is briefly unreachable.
type recentCache struct {
	mu      sync.RWMutex
	items   []AlertRecord
	maxSize int
}

// newRecentCache creates a cache holding at most maxSize records.
func newRecentCache(maxSize int) *recentCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &recentCache{maxSize: maxSize}
}

// Replace swaps the cache contents with the given records, truncating to
// the cache capacity. Records are expected newest-first.
func (c *recentCache) Replace(records []AlertRecord) {
	if len(records) > c.maxSize {
		records = records[:c.maxSize]
	}
	items := make([]AlertRecord, len(records))
	copy(items, records)

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
}

// Snapshot returns a copy of the cached records, newest-first.
func (c *recentCache) Snapshot() []AlertRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]AlertRecord, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of cached records.
func (c *recentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
