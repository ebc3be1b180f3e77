package depgraph

import (
	"context"
	"sort"

	"github.com/loadstone/loadstone/pkg/catalog"
	"github.com/loadstone/loadstone/pkg/inventory"
	"github.com/loadstone/loadstone/pkg/rules"
)

// InstalledRequirer is an installed mod folder that requires a missing mod.
type InstalledRequirer struct {
	Folder string `json:"folder"`
	Notes  string `json:"notes,omitempty"`
}

// ModRef identifies a mod by name and id.
type ModRef struct {
	Name string        `json:"name"`
	ID   catalog.ModID `json:"id"`
}

// MissingReport describes one unmet requirement and who wants it.
type MissingReport struct {
	ID                  catalog.ModID       `json:"id"`
	Name                string              `json:"name"`
	Replacement         *Ref                `json:"replacement,omitempty"`
	RequiredByInstalled []InstalledRequirer `json:"required_by_installed,omitempty"`
	RequiredByMissing   []ModRef            `json:"required_by_missing,omitempty"`
}

// MissingAnalyzer partitions the requirement network into met and unmet
// requirements and explains each unmet one.
type MissingAnalyzer struct {
	Store     *catalog.Store
	Rules     *rules.Rules
	Inventory *inventory.Inventory
}

// Find returns one report per unmet requirement in g, sorted by id. A
// requirement counts as unmet when it is neither ignored nor satisfied,
// directly or through a replacement. Each report splits its requirers into
// installed folders and fellow missing mods; requirers that are neither
// (ignored, say) are left out entirely.
func (a *MissingAnalyzer) Find(ctx context.Context, g *Graph) []MissingReport {
	unmet := map[catalog.ModID]bool{}
	for id := range g.Visited {
		if Evaluate(id, a.Rules, a.Inventory.InstalledIDs) == StatusMissing {
			unmet[id] = true
		}
	}

	ids := make([]catalog.ModID, 0, len(unmet))
	for id := range unmet {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	reports := make([]MissingReport, 0, len(ids))
	for _, id := range ids {
		rep := MissingReport{ID: id, Name: a.Store.Get(ctx, id).Name}
		if eff := a.Rules.EffectiveID(id); eff != id {
			rep.Replacement = &Ref{ID: eff, Name: a.Store.Get(ctx, eff).Name}
		}

		seen := map[catalog.ModID]bool{}
		for _, edge := range g.Reverse[id] {
			if folders, ok := a.Inventory.IDToFolders[edge.ID]; ok {
				for _, folder := range folders {
					rep.RequiredByInstalled = append(rep.RequiredByInstalled, InstalledRequirer{
						Folder: folder,
						Notes:  edge.Notes,
					})
				}
				continue
			}
			if unmet[a.Rules.EffectiveID(edge.ID)] && !seen[edge.ID] {
				seen[edge.ID] = true
				rep.RequiredByMissing = append(rep.RequiredByMissing, ModRef{
					Name: a.Store.Get(ctx, edge.ID).Name,
					ID:   edge.ID,
				})
			}
		}

		sort.Slice(rep.RequiredByInstalled, func(i, j int) bool {
			return rep.RequiredByInstalled[i].Folder < rep.RequiredByInstalled[j].Folder
		})
		sort.Slice(rep.RequiredByMissing, func(i, j int) bool {
			if rep.RequiredByMissing[i].Name != rep.RequiredByMissing[j].Name {
				return rep.RequiredByMissing[i].Name < rep.RequiredByMissing[j].Name
			}
			return rep.RequiredByMissing[i].ID < rep.RequiredByMissing[j].ID
		})
		reports = append(reports, rep)
	}
	return reports
}
