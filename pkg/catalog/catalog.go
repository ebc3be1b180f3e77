// Package catalog models the remote mod catalog: per-mod metadata, the
// provider contract used to fetch it, and the expiring cache-backed store
// that de-duplicates fetches within an analysis run.
//
// # Architecture
//
// The package separates three concerns:
//
//   - Metadata: the immutable per-mod record (name, category, requirement
//     edges) as published by the catalog.
//   - Provider: the fetch contract. Implementations retrieve metadata for a
//     single mod id; [Client] is the HTTP implementation.
//   - Store: the cache. It answers every metadata question the graph
//     algorithms ask and never surfaces per-mod fetch failures.
//
// Requirement edges reference mods by page URL; [ExtractModID] recovers the
// numeric id. Edges whose URL carries no id are not requirements and are
// dropped silently by the graph builders.
package catalog

import (
	"context"
	"errors"
	"regexp"
	"time"
)

// Sentinel errors for catalog fetches.
var (
	// ErrNotFound is returned when a mod id does not exist in the catalog.
	ErrNotFound = errors.New("mod not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned when the catalog rejects the client's credentials.
	// This is a setup-level failure: no analysis should start without a working fetch path.
	ErrUnauthorized = errors.New("catalog rejected credentials")
)

// ModID identifies a mod in the remote catalog. IDs are opaque to the graph
// algorithms; the catalog publishes them as decimal strings.
type ModID string

// Requirement is a directed dependency edge as published on a mod's catalog
// page. The target mod is referenced by URL; use [ExtractModID] to resolve it.
type Requirement struct {
	Name  string `json:"name"`            // Display name of the required mod
	URL   string `json:"url"`             // Catalog page URL of the required mod
	Notes string `json:"notes,omitempty"` // Human annotation (e.g. "only for SE users")
}

// Metadata is the per-mod catalog record. It is immutable once fetched and
// superseded wholesale on re-fetch.
//
// A failed fetch is represented by a non-empty Err and empty requirement
// lists, so callers treat the mod as having no known dependencies instead of
// aborting. Error-marked entries are cached like successful ones and are not
// re-fetched until the expiry window passes.
type Metadata struct {
	ID         ModID         `json:"id"`
	Name       string        `json:"name"`
	Category   string        `json:"category"`
	FetchedAt  time.Time     `json:"fetched_at"`
	Requires   []Requirement `json:"requires,omitempty"`
	RequiredBy []Requirement `json:"required_by,omitempty"`
	Err        string        `json:"error,omitempty"`
}

// Failed reports whether this entry records a fetch failure.
func (m *Metadata) Failed() bool { return m.Err != "" }

// Provider retrieves catalog metadata for a single mod id.
//
// Implementations must return [ErrNotFound] for missing mods and [ErrNetwork]
// for transport failures rather than panicking; the [Store] degrades both to
// error-marked metadata so traversals continue.
type Provider interface {
	Fetch(ctx context.Context, id ModID) (*Metadata, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, id ModID) (*Metadata, error)

// Fetch calls f.
func (f ProviderFunc) Fetch(ctx context.Context, id ModID) (*Metadata, error) {
	return f(ctx, id)
}

var modIDRE = regexp.MustCompile(`/mods/(\d+)`)

// ExtractModID recovers the numeric mod id from a catalog page URL.
// Returns ok=false when the URL carries no recognizable id; such links are
// not requirements and are skipped by the graph builders.
func ExtractModID(url string) (ModID, bool) {
	m := modIDRE.FindStringSubmatch(url)
	if len(m) < 2 {
		return "", false
	}
	return ModID(m[1]), true
}
