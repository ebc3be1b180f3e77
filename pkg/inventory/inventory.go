// Package inventory indexes the locally installed mods for one analysis run.
//
// The host mod manager enumerates installs as (folder, catalog id) pairs;
// this package builds the read-only lookup structures the graph algorithms
// need. One catalog id may back several local folders (a main install plus
// patches repackaged under the same id), so the index is many-to-one.
package inventory

import (
	"github.com/loadstone/loadstone/pkg/catalog"
)

// Entry is one row of the host's install list. Separators and rows without
// a valid catalog id structure the mod manager's UI but are not installs;
// they are excluded from the index.
type Entry struct {
	Folder    string        `toml:"folder"`
	ID        catalog.ModID `toml:"id"`
	Separator bool          `toml:"separator,omitempty"`
}

// Lister enumerates installed mods. Implemented by the modlist file loader
// and by host-manager integrations.
type Lister interface {
	ListInstalled() ([]Entry, error)
}

// Inventory is the installed-mod index: a read-only snapshot for the
// duration of an analysis. Graph algorithms never mutate it.
type Inventory struct {
	// FolderToID maps each local install folder to its catalog id.
	FolderToID map[string]catalog.ModID

	// IDToFolders maps a catalog id to every local folder it backs,
	// in host priority order.
	IDToFolders map[catalog.ModID][]string

	// InstalledIDs is the set of FolderToID values.
	InstalledIDs map[catalog.ModID]bool
}

// New builds an Inventory from host entries, skipping separators and rows
// without a catalog id.
func New(entries []Entry) *Inventory {
	inv := &Inventory{
		FolderToID:   make(map[string]catalog.ModID),
		IDToFolders:  make(map[catalog.ModID][]string),
		InstalledIDs: make(map[catalog.ModID]bool),
	}
	for _, e := range entries {
		if e.Separator || e.ID == "" || e.Folder == "" {
			continue
		}
		inv.FolderToID[e.Folder] = e.ID
		inv.IDToFolders[e.ID] = append(inv.IDToFolders[e.ID], e.Folder)
		inv.InstalledIDs[e.ID] = true
	}
	return inv
}

// Len returns the number of indexed install folders.
func (inv *Inventory) Len() int { return len(inv.FolderToID) }
