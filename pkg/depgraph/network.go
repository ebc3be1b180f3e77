package depgraph

import (
	"context"
	"sort"

	"github.com/loadstone/loadstone/pkg/catalog"
)

// Edge is one requirement link in the network, annotated with the note the
// remote catalog attached to it.
type Edge struct {
	ID    catalog.ModID `json:"id"`
	Notes string        `json:"notes,omitempty"`
}

// Graph is the full requirement network reachable from an installed set.
// Forward maps a mod to what it requires, Reverse maps a mod to what
// requires it. Visited holds every mod the walk touched, installed or not.
type Graph struct {
	Forward map[catalog.ModID][]Edge
	Reverse map[catalog.ModID][]Edge
	Visited map[catalog.ModID]bool
}

// NetworkBuilder expands an installed set into its reachability closure.
type NetworkBuilder struct {
	Store *catalog.Store
}

// Build walks breadth-first from every installed mod, fetching and
// expanding each reachable mod exactly once. Rules play no part here: the
// network is pure reachability, and ignore or replace decisions are applied
// by the consumers downstream.
func (b *NetworkBuilder) Build(ctx context.Context, installed map[catalog.ModID]bool) *Graph {
	g := &Graph{
		Forward: map[catalog.ModID][]Edge{},
		Reverse: map[catalog.ModID][]Edge{},
		Visited: map[catalog.ModID]bool{},
	}

	queue := make([]catalog.ModID, 0, len(installed))
	for id := range installed {
		queue = append(queue, id)
	}
	sort.Slice(queue, func(i, j int) bool { return queue[i] < queue[j] })

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if g.Visited[id] {
			continue
		}
		g.Visited[id] = true

		meta := b.Store.Get(ctx, id)
		if meta.Failed() {
			continue
		}
		for _, req := range meta.Requires {
			reqID, ok := catalog.ExtractModID(req.URL)
			if !ok {
				continue
			}
			g.Forward[id] = append(g.Forward[id], Edge{ID: reqID, Notes: req.Notes})
			g.Reverse[reqID] = append(g.Reverse[reqID], Edge{ID: id, Notes: req.Notes})
			if !g.Visited[reqID] {
				queue = append(queue, reqID)
			}
		}
	}
	return g
}
