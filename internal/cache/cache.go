// Package cache provides disk-backed memoization of search results, keyed
// by a content hash of the semantic query and aged out by file mtime.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/adstools/astroref/internal/ads"
)

// TTLs per query class. Live searches and citation counts drift daily;
// the reference list of a published paper essentially never changes;
// library listings must reflect local add/remove immediately.
const (
	TTLSearch     = 24 * time.Hour
	TTLCitations  = 24 * time.Hour
	TTLReferences = 14 * 24 * time.Hour
	TTLLibrary    = 0
)

// Cache is a directory of result files, one per key.
type Cache struct {
	dir string
}

// New creates a Cache rooted at dir, creating the directory if needed.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Key derives a stable cache key from a query class and its parts
// (query string, field list, bibcode, library name).
func Key(class string, parts ...string) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(class))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// SearchKey is the key for a plain search query.
func SearchKey(query string, fields []string) string {
	return Key("search", query, strings.Join(fields, ","))
}

// CitationsKey is the key for a citations query.
func CitationsKey(bibcode string) string {
	return Key("citations", bibcode)
}

// ReferencesKey is the key for a references query.
func ReferencesKey(bibcode string) string {
	return Key("refs", bibcode)
}

// LibraryKey is the key for a library membership listing.
func LibraryKey(name string) string {
	return Key("library", name)
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// GetOrCompute returns the cached result for key if a fresh, non-empty
// entry exists; otherwise it deletes any stale file, runs compute,
// persists the result, and returns it.
//
// An empty cached payload is treated as a miss: a zero-article result is
// indistinguishable from a fetch that never succeeded and must not be
// trusted long-term. Writes go to a temp file renamed into place, so two
// racing computations for one key resolve last-writer-wins.
func (c *Cache) GetOrCompute(key string, ttl time.Duration, compute func() ([]ads.Doc, error)) ([]ads.Doc, error) {
	path := c.path(key)

	if docs, ok := c.read(path, ttl); ok {
		return docs, nil
	}
	os.Remove(path)

	docs, err := compute()
	if err != nil {
		return nil, err
	}

	if err := c.write(path, docs); err != nil {
		// The result itself is fine; the caller decides whether a failed
		// persist is worth reporting.
		return docs, fmt.Errorf("caching result: %w", err)
	}
	return docs, nil
}

// Invalidate removes the entry for key, if any.
func (c *Cache) Invalidate(key string) {
	os.Remove(c.path(key))
}

// read returns the cached docs if the file exists, is fresh, parses, and
// is non-empty.
func (c *Cache) read(path string, ttl time.Duration) ([]ads.Doc, bool) {
	if ttl <= 0 {
		return nil, false
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > ttl {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var docs []ads.Doc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, false
	}
	if len(docs) == 0 {
		return nil, false
	}
	return docs, true
}

func (c *Cache) write(path string, docs []ads.Doc) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
