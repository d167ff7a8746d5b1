// Package cache is the request cache behind the data-access layer: a
// typed key with an explicit invalidation API instead of a string-tag
// convention.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/medicare/clinicctl/internal/model"
)

// Key identifies a cached query result.
type Key string

// KeyAppointments is the single logical entry: the current session's
// appointment list. Every successful mutation invalidates it.
const KeyAppointments Key = "appointments"

const (
	defaultTTL      = 5 * time.Minute
	cleanupInterval = 10 * time.Minute
)

// Cache wraps an in-memory store with typed accessors.
type Cache struct {
	store *gocache.Cache
}

func New() *Cache {
	return &Cache{store: gocache.New(defaultTTL, cleanupInterval)}
}

// Appointments returns the cached list and whether it was present.
func (c *Cache) Appointments() ([]model.Appointment, bool) {
	val, ok := c.store.Get(string(KeyAppointments))
	if !ok {
		return nil, false
	}
	list, ok := val.([]model.Appointment)
	return list, ok
}

// SetAppointments stores a freshly fetched list.
func (c *Cache) SetAppointments(list []model.Appointment) {
	c.store.Set(string(KeyAppointments), list, gocache.DefaultExpiration)
}

// Invalidate marks the keyed result stale so the next read refetches.
func (c *Cache) Invalidate(key Key) {
	c.store.Delete(string(key))
}

// Flush drops everything; used on logout so no data crosses sessions.
func (c *Cache) Flush() {
	c.store.Flush()
}
