// Package rules loads and evaluates the user-declared ignore/replace rules
// that adjust how requirements are judged against the installed set.
//
// Rules live in a human-editable TOML document with two sections: an
// `ignore` list of mod ids that are treated as always satisfied, and a
// `[replace]` table mapping a required id to the id that stands in for it.
// Replacement is a deliberate single-hop lookup: chains are not followed,
// and report text downstream assumes exactly one effective id per lookup.
package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/loadstone/loadstone/pkg/catalog"
)

// Rules is a read-only snapshot of the ignore/replace declarations for one
// analysis run. The graph algorithms never mutate it.
type Rules struct {
	ignore  map[catalog.ModID]bool
	replace map[catalog.ModID]catalog.ModID
}

// document is the on-disk TOML shape.
type document struct {
	Ignore  []string          `toml:"ignore"`
	Replace map[string]string `toml:"replace"`
}

// Empty returns a rule set with no declarations.
func Empty() *Rules {
	return &Rules{
		ignore:  make(map[catalog.ModID]bool),
		replace: make(map[catalog.ModID]catalog.ModID),
	}
}

// New builds a rule set from explicit declarations. Used by tests and by
// hosts that supply rules programmatically.
func New(ignore []catalog.ModID, replace map[catalog.ModID]catalog.ModID) *Rules {
	r := Empty()
	for _, id := range ignore {
		r.ignore[id] = true
	}
	for from, to := range replace {
		r.replace[from] = to
	}
	return r
}

// Load reads the rules document at path.
//
// An absent file generates a commented template at path and returns empty
// rules for the current run. A malformed file logs a warning through logf
// and also falls back to empty rules. Load never fails the run.
func Load(path string, logf func(format string, args ...any)) *Rules {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logf("rules file %s not found, writing template", path)
		if werr := WriteTemplate(path); werr != nil {
			logf("could not write rules template: %v", werr)
		}
		return Empty()
	}
	if err != nil {
		logf("rules file unreadable, using empty rules: %v", err)
		return Empty()
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		logf("rules file malformed, using empty rules: %v", err)
		return Empty()
	}

	r := Empty()
	for _, id := range doc.Ignore {
		r.ignore[catalog.ModID(id)] = true
	}
	for from, to := range doc.Replace {
		r.replace[catalog.ModID(from)] = catalog.ModID(to)
	}
	return r
}

// EffectiveID applies one replacement-rule lookup to id. The lookup is
// never chased recursively: replace[replace[x]] is not consulted.
func (r *Rules) EffectiveID(id catalog.ModID) catalog.ModID {
	if to, ok := r.replace[id]; ok {
		return to
	}
	return id
}

// IsIgnored reports whether id is exempt from missing/satisfied evaluation.
func (r *Rules) IsIgnored(id catalog.ModID) bool {
	return r.ignore[id]
}

// IsSatisfied reports whether id's effective id is present in installed.
func (r *Rules) IsSatisfied(id catalog.ModID, installed map[catalog.ModID]bool) bool {
	return installed[r.EffectiveID(id)]
}

// Counts returns the number of ignore and replace declarations, for logging.
func (r *Rules) Counts() (ignored, replaced int) {
	return len(r.ignore), len(r.replace)
}

const template = `# Loadstone rules file.
#
# Two sections are recognized:
#
#   ignore  - mod ids listed here are treated as satisfied and are never
#             reported as missing.
#   replace - a required mod id on the left is considered satisfied when the
#             mod id on the right is installed instead. The lookup is a
#             single hop; chains of replacements are not followed.

ignore = [
  # "12345",
]

[replace]
# "44444" = "55555"
`

// WriteTemplate writes the commented rules template to path, creating parent
// directories as needed. Existing files are not overwritten.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("rules file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create rules dir: %w", err)
	}
	return os.WriteFile(path, []byte(template), 0o644)
}
