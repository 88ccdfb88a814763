package cloud

import "sync"

// Per-instance fields memoized by the cache.
const (
	fieldPlatformDetails       = "platform_details"
	fieldReservationPreference = "capacity_reservation_preference"
	fieldFleetID               = "fleet_id"
)

// CachedValue is a resolved lookup result. Absent marks a field that resolved
// to nothing, so known-empty optional fields are not re-queried on every
// resolution.
type CachedValue struct {
	Value  string
	Absent bool
}

type cacheKey struct {
	instanceID string
	field      string
}

// Cache memoizes per-instance lookup results for the lifetime of the process.
// Keys are composite (instanceID, field) pairs so fields never collide.
// Entries never expire; a process restart is the only invalidation.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]CachedValue
}

// NewCache creates an empty cache. One cache is instantiated per process and
// injected into the resolver; it is never reached through package state.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[cacheKey]CachedValue),
	}
}

// Get retrieves a cached value. The second return distinguishes "not yet
// resolved" from a cached absent result.
func (c *Cache) Get(instanceID, field string) (CachedValue, bool) {
	c.mu.RLock()
	entry, ok := c.entries[cacheKey{instanceID, field}]
	c.mu.RUnlock()
	return entry, ok
}

// Put stores a resolved value.
func (c *Cache) Put(instanceID, field, value string) {
	c.mu.Lock()
	c.entries[cacheKey{instanceID, field}] = CachedValue{Value: value}
	c.mu.Unlock()
}

// PutAbsent records that a field resolved to nothing.
func (c *Cache) PutAbsent(instanceID, field string) {
	c.mu.Lock()
	c.entries[cacheKey{instanceID, field}] = CachedValue{Absent: true}
	c.mu.Unlock()
}
