package geo

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Entry is one cached lookup outcome. Failed and empty lookups are
// cached too, so a location is never sent to the service twice in a
// run.
type Entry struct {
	Point    Point
	Resolved bool
}

// Cache maps raw location strings to lookup outcomes for the duration
// of one run.
type Cache struct {
	lru *expirable.LRU[string, Entry]
}

// NewCache creates a cache. Capacity zero means unlimited; ttl zero
// means entries never expire (the per-run default).
func NewCache(capacity int, ttl time.Duration) *Cache {
	return &Cache{lru: expirable.NewLRU[string, Entry](capacity, nil, ttl)}
}

// Get returns the cached outcome for a location, if any.
func (c *Cache) Get(location string) (Entry, bool) {
	return c.lru.Get(location)
}

// PutResolved caches a successful lookup.
func (c *Cache) PutResolved(location string, p Point) {
	c.lru.Add(location, Entry{Point: p, Resolved: true})
}

// PutUnresolved caches a failed or empty lookup.
func (c *Cache) PutUnresolved(location string) {
	c.lru.Add(location, Entry{})
}

// Len returns the number of cached locations.
func (c *Cache) Len() int {
	return c.lru.Len()
}
