package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store is the cache-backed metadata store for one analysis run.
//
// Get returns the cached entry when it is present and younger than the
// expiry window; otherwise it asks the Provider, records the result (valid
// or error-marked) and returns it. A fetch failure never propagates out of
// Get: it degrades to metadata with an error marker and empty requirement
// lists, so graph traversals treat the mod as having no known dependencies.
//
// The store persists to a single JSON document mapping id → metadata.
// A corrupt or unreadable document loads as an empty store, not an error.
//
// Store is not safe for concurrent use: one analysis run owns it at a time.
type Store struct {
	provider Provider
	entries  map[ModID]*Metadata
	path     string
	expiry   time.Duration
	now      func() time.Time

	// Logf receives progress and degradation notices ("fetching 266",
	// "fetch failed"). Defaults to a no-op.
	Logf func(format string, args ...any)
}

// NewStore creates a Store backed by provider, persisting to path.
// The expiry window controls how long cached entries stay valid; zero means
// entries never expire. Existing cache documents are loaded eagerly.
func NewStore(provider Provider, path string, expiry time.Duration) *Store {
	s := &Store{
		provider: provider,
		entries:  make(map[ModID]*Metadata),
		path:     path,
		expiry:   expiry,
		now:      time.Now,
		Logf:     func(string, ...any) {},
	}
	s.load()
	return s
}

// Len returns the number of cached entries, valid or expired.
func (s *Store) Len() int { return len(s.entries) }

// Path returns the location of the durable cache document.
func (s *Store) Path() string { return s.path }

// Get returns metadata for id, fetching through the provider on a cache miss
// or expired entry. It never returns an error for a failed fetch; the
// returned metadata carries an error marker instead. Expired entries are
// overwritten, not evicted.
func (s *Store) Get(ctx context.Context, id ModID) *Metadata {
	if entry, ok := s.entries[id]; ok && s.valid(entry) {
		return entry
	}

	s.Logf("fetching %s from catalog", id)
	meta, err := s.provider.Fetch(ctx, id)
	if err != nil {
		s.Logf("fetch failed for %s: %v", id, err)
		meta = &Metadata{
			ID:        id,
			Name:      fmt.Sprintf("fetch failed: id %s", id),
			Category:  "Default",
			FetchedAt: s.now(),
			Err:       err.Error(),
		}
	}
	s.entries[id] = meta
	return meta
}

// Persist writes the full store to the durable cache document.
// Called once on orderly shutdown of an analysis run; a cancelled run skips it.
func (s *Store) Persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// Clear empties the store in memory and removes the durable document.
func (s *Store) Clear() error {
	s.entries = make(map[ModID]*Metadata)
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove cache: %w", err)
	}
	return nil
}

// valid reports whether entry is younger than the expiry window.
// Entries without a fetch timestamp are always stale.
func (s *Store) valid(entry *Metadata) bool {
	if entry.FetchedAt.IsZero() {
		return false
	}
	if s.expiry <= 0 {
		return true
	}
	return s.now().Sub(entry.FetchedAt) < s.expiry
}

// load reads the durable cache document if present. Corrupt documents are
// treated as an empty cache.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var entries map[ModID]*Metadata
	if err := json.Unmarshal(data, &entries); err != nil {
		s.Logf("cache document unreadable, starting empty: %v", err)
		return
	}
	if entries == nil {
		// "null" decodes without error into a nil map.
		return
	}
	s.entries = entries
}
