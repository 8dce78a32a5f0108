package cache

import (
	"errors"
	"time"
)

// LayeredCache checks its tiers fastest first. A hit in a slower tier is
// copied into every faster tier with that tier's default TTL.
type LayeredCache struct {
	tiers []Cache
}

// NewLayeredCache creates the memory-in-front-of-disk cache used for
// oracle answers
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return NewTiered(
		NewMemoryCache(memoryTTL, 10*time.Minute),
		NewDiskCache(diskDir, diskTTL),
	)
}

// NewTiered stacks arbitrary caches, fastest first
func NewTiered(tiers ...Cache) *LayeredCache {
	return &LayeredCache{tiers: tiers}
}

// Get returns the value from the first tier that has it
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	for i, tier := range c.tiers {
		val, found := tier.Get(key)
		if !found {
			continue
		}
		for _, faster := range c.tiers[:i] {
			_ = faster.Set(key, val, 0)
		}
		return val, true
	}
	return nil, false
}

// Set writes value to every tier, reporting all failures
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	var errs []error
	for _, tier := range c.tiers {
		if err := tier.Set(key, value, ttl); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Delete removes key from every tier
func (c *LayeredCache) Delete(key string) error {
	var errs []error
	for _, tier := range c.tiers {
		if err := tier.Delete(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Clear empties every tier
func (c *LayeredCache) Clear() error {
	var errs []error
	for _, tier := range c.tiers {
		if err := tier.Clear(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
