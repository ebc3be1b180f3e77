package inventory

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Modlist loads install entries from a TOML modlist document, the format the
// host mod manager exports. It implements [Lister].
//
// Document shape:
//
//	[[mod]]
//	folder = "Community Patch"
//	id = "266"
//
//	[[mod]]
//	folder = "--- Visuals ---"
//	separator = true
type Modlist struct {
	path string
}

// NewModlist creates a loader for the modlist document at path.
func NewModlist(path string) *Modlist {
	return &Modlist{path: path}
}

type modlistDoc struct {
	Mods []Entry `toml:"mod"`
}

// ListInstalled reads and decodes the modlist document. Unlike the rules
// document, a missing or malformed modlist is a hard error: there is nothing
// to analyze without a valid install list.
func (m *Modlist) ListInstalled() ([]Entry, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("modlist not found: %s", m.path)
		}
		return nil, fmt.Errorf("read modlist: %w", err)
	}

	var doc modlistDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse modlist %s: %w", m.path, err)
	}
	return doc.Mods, nil
}
