// Package cache provides caching utilities for the MCP server.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/xmltypes/pkg/xmltypes"
)

// ResultCache provides thread-safe LRU caching of generation results.
type ResultCache struct {
	cache *lru.Cache[string, *xmltypes.Result]
}

// NewResultCache creates a new LRU cache with the specified maximum number of items.
func NewResultCache(maxItems int) (*ResultCache, error) {
	c, err := lru.New[string, *xmltypes.Result](maxItems)
	if err != nil {
		return nil, err
	}
	return &ResultCache{cache: c}, nil
}

// Get retrieves a result by key.
// Returns the result and true if found, nil and false otherwise.
func (c *ResultCache) Get(key string) (*xmltypes.Result, bool) {
	return c.cache.Get(key)
}

// Put adds or updates a result in the cache.
func (c *ResultCache) Put(key string, res *xmltypes.Result) {
	c.cache.Add(key, res)
}

// Len returns the current number of items in the cache.
func (c *ResultCache) Len() int {
	return c.cache.Len()
}

// Key derives a cache key from the sample documents and the options that
// produced a result. Samples are length-prefixed so that splitting the same
// bytes differently yields a different key.
func Key(bodies [][]byte, opts xmltypes.Options) string {
	h := sha256.New()
	// Options holds only plain values; Marshal cannot fail
	optJSON, _ := json.Marshal(opts)
	h.Write(optJSON)

	var n [8]byte
	for _, body := range bodies {
		binary.BigEndian.PutUint64(n[:], uint64(len(body)))
		h.Write(n[:])
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil))
}
