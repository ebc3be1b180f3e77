package depgraph

import (
	"context"
	"sort"

	"github.com/loadstone/loadstone/pkg/catalog"
	"github.com/loadstone/loadstone/pkg/inventory"
	"github.com/loadstone/loadstone/pkg/rules"
)

// Sorter computes a load order over the installed mod folders.
//
// The order is a topological sort of the "requires" relation restricted to
// installed mods: a requirement is placed before everything that depends on
// it. Whenever several folders are simultaneously placeable, the one whose
// mod category carries the lowest priority wins, with ties broken by folder
// name.
type Sorter struct {
	Store     *catalog.Store
	Rules     *rules.Rules
	Inventory *inventory.Inventory

	// Priorities maps a category name to its placement weight. Categories
	// not listed fall back to DefaultPriority.
	Priorities      map[string]int
	DefaultPriority int
}

// Sort returns the computed order plus the folders left unplaced because
// they sit on a dependency cycle. A folder that requires itself, directly
// or through a replacement rule, is cyclic too. The two slices partition
// the installed folders: every folder lands in exactly one of them.
func (s *Sorter) Sort(ctx context.Context, g *Graph) (order, cyclic []string) {
	folders := make([]string, 0, len(s.Inventory.FolderToID))
	for folder := range s.Inventory.FolderToID {
		folders = append(folders, folder)
	}
	sort.Strings(folders)

	indegree := make(map[string]int, len(folders))
	successors := map[string][]string{}
	for _, folder := range folders {
		indegree[folder] = 0
	}

	// Edge provider -> dependent, but only for requirements an installed
	// folder actually satisfies. Ignored and missing requirements add no
	// ordering constraint.
	for _, folder := range folders {
		id := s.Inventory.FolderToID[folder]
		for _, req := range g.Forward[id] {
			if Evaluate(req.ID, s.Rules, s.Inventory.InstalledIDs) != StatusSatisfied {
				continue
			}
			provider := s.Rules.EffectiveID(req.ID)
			for _, providerFolder := range s.Inventory.IDToFolders[provider] {
				successors[providerFolder] = append(successors[providerFolder], folder)
				indegree[folder]++
			}
		}
	}

	ready := &readyQueue{}
	for _, folder := range folders {
		if indegree[folder] == 0 {
			ready.push(s.priority(ctx, folder), folder)
		}
	}

	order = make([]string, 0, len(folders))
	for ready.Len() > 0 {
		item := ready.pop()
		order = append(order, item.name)
		for _, next := range successors[item.name] {
			indegree[next]--
			if indegree[next] == 0 {
				ready.push(s.priority(ctx, next), next)
			}
		}
	}

	for _, folder := range folders {
		if indegree[folder] > 0 {
			cyclic = append(cyclic, folder)
		}
	}
	return order, cyclic
}

func (s *Sorter) priority(ctx context.Context, folder string) int {
	meta := s.Store.Get(ctx, s.Inventory.FolderToID[folder])
	if p, ok := s.Priorities[meta.Category]; ok {
		return p
	}
	return s.DefaultPriority
}
