// Package cache memoizes rewrite results by content hash.
//
// Entries are keyed by blake3(rules fingerprint, language, source bytes), so
// a hit is only possible for byte-identical input rewritten under the same
// rules. The cache is bounded by an LRU and safe for concurrent use.
package cache

import (
	"encoding/hex"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"lukechampine.com/blake3"

	"github.com/sheinsight/transform-import-declaration-plugin/pkg/source"
)

// Key identifies one rewrite input.
type Key [32]byte

// String returns the hex form of the key.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Cache is a bounded map from rewrite input to rewrite result.
// A nil *Cache is valid and never hits.
type Cache struct {
	entries     *lru.Cache[Key, source.Result]
	fingerprint [32]byte
	hits        atomic.Uint64
	misses      atomic.Uint64
}

// New returns a cache holding up to size results for the rules identified by
// fingerprint. A size of zero or less disables caching and returns nil.
func New(size int, fingerprint []byte) (*Cache, error) {
	if size <= 0 {
		return nil, nil
	}
	entries, err := lru.New[Key, source.Result](size)
	if err != nil {
		return nil, err
	}
	return &Cache{
		entries:     entries,
		fingerprint: blake3.Sum256(fingerprint),
	}, nil
}

// Key derives the cache key for content parsed as lang.
func (c *Cache) Key(lang source.Lang, content []byte) Key {
	h := blake3.New(32, nil)
	if c != nil {
		_, _ = h.Write(c.fingerprint[:])
	}
	_, _ = h.Write([]byte{byte(lang)})
	_, _ = h.Write(content)

	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// Get returns the cached result for k.
func (c *Cache) Get(k Key) (source.Result, bool) {
	if c == nil {
		return source.Result{}, false
	}
	res, ok := c.entries.Get(k)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return res, ok
}

// Add stores a result.
func (c *Cache) Add(k Key, res source.Result) {
	if c == nil {
		return
	}
	c.entries.Add(k, res)
}

// Purge drops every entry. Watch mode calls it when the rules file changes.
func (c *Cache) Purge() {
	if c == nil {
		return
	}
	c.entries.Purge()
}

// Stats returns hit and miss counters.
func (c *Cache) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.entries.Len(),
	}
}
