// Package session holds the per-run result cache.
// A document result is immutable once built, so repeated renders reuse
// the cached result instead of re-invoking the remote parser. The cache
// is caller-owned — there is no package-level instance — and entries
// only disappear through an explicit Invalidate or Reset, never
// implicitly. Entries are keyed per document/run, so concurrent sessions
// stay isolated.
package session

import (
	"sync"

	"github.com/gaurav-prasanna/tabpipe/core"
)

// Cache maps run keys to built document results.
type Cache struct {
	mu      sync.RWMutex
	results map[string]*core.DocumentResult
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{
		results: make(map[string]*core.DocumentResult),
	}
}

// Get returns the cached result for key, if any.
func (c *Cache) Get(key string) (*core.DocumentResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, ok := c.results[key]
	return doc, ok
}

// Put stores the result for key, replacing any previous entry.
func (c *Cache) Put(key string, doc *core.DocumentResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[key] = doc
}

// Invalidate drops the entry for key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.results, key)
}

// Reset drops every entry.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = make(map[string]*core.DocumentResult)
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}
