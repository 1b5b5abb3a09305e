// Package cache is the in-process lookup cache the importer keeps per run:
// option labels, SKU ids, taken url keys. Entries can be tagged so that a
// whole family (all options of one attribute) can be dropped at once.
package cache

import (
	"fmt"
	"strings"
	"sync"
)

// Cache is a thread-safe key-value store using sync.Map.
type Cache struct {
	m sync.Map
	// tagIndex maps tag string to a *sync.Map used as a key set
	tagIndex sync.Map
}

// NewCache creates a new Cache instance.
func NewCache() *Cache {
	return &Cache{}
}

// Set stores a value for a key and tags it.
func (c *Cache) Set(key, value interface{}, tags ...string) {
	c.m.Store(key, value)
	if len(tags) > 0 {
		c.TagKey(key, tags)
	}
}

// Get retrieves a value for a key.
func (c *Cache) Get(key interface{}) (interface{}, bool) {
	return c.m.Load(key)
}

// Delete removes a key from the cache.
func (c *Cache) Delete(key interface{}) {
	c.m.Delete(key)
}

func makeCompositeKey(keys ...interface{}) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%v", k)
	}
	return strings.Join(parts, "|")
}

// SetN stores a value under a composite key ("a|b|c").
func (c *Cache) SetN(keys []interface{}, value interface{}, tags ...string) {
	c.Set(makeCompositeKey(keys...), value, tags...)
}

// GetN retrieves a value for a composite key.
func (c *Cache) GetN(keys ...interface{}) (interface{}, bool) {
	return c.Get(makeCompositeKey(keys...))
}

// TagKey assigns one or more tags to a cache key.
func (c *Cache) TagKey(key interface{}, tags []string) {
	for _, tag := range tags {
		val, _ := c.tagIndex.LoadOrStore(tag, &sync.Map{})
		val.(*sync.Map).Store(key, struct{}{})
	}
}

// HasTag reports whether anything was stored under tag.
func (c *Cache) HasTag(tag string) bool {
	_, ok := c.tagIndex.Load(tag)
	return ok
}

// DeleteByTag deletes all entries assigned to a tag.
func (c *Cache) DeleteByTag(tag string) {
	if val, ok := c.tagIndex.Load(tag); ok {
		km := val.(*sync.Map)
		km.Range(func(key, _ interface{}) bool {
			c.Delete(key)
			km.Delete(key)
			return true
		})
		c.tagIndex.Delete(tag)
	}
}
