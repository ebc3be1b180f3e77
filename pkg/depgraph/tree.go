package depgraph

import (
	"context"

	"github.com/loadstone/loadstone/pkg/catalog"
	"github.com/loadstone/loadstone/pkg/inventory"
	"github.com/loadstone/loadstone/pkg/rules"
)

// Ref names a mod that stands in for another through a replacement rule.
type Ref struct {
	ID   catalog.ModID `json:"id"`
	Name string        `json:"name"`
}

// Node is one entry in a dependency tree.
type Node struct {
	ID          catalog.ModID `json:"id"`
	Name        string        `json:"name"`
	Status      Status        `json:"status"`
	Replacement *Ref          `json:"replacement,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	Children    []*Node       `json:"children,omitempty"`
}

// TreeBuilder expands a single mod into its recursive dependency tree.
type TreeBuilder struct {
	Store     *catalog.Store
	Rules     *rules.Rules
	Inventory *inventory.Inventory
}

// Build walks the requirements of root depth-first and returns the tree.
// The visited set is scoped to the current path: a mod seen twice on one
// branch becomes a cycle leaf, while the same mod on a sibling branch is
// expanded again as usual.
func (b *TreeBuilder) Build(ctx context.Context, root catalog.ModID) *Node {
	return b.build(ctx, root, map[catalog.ModID]bool{})
}

func (b *TreeBuilder) build(ctx context.Context, id catalog.ModID, onPath map[catalog.ModID]bool) *Node {
	if onPath[id] {
		return &Node{ID: id, Name: "cycle detected", Status: StatusCycle}
	}

	meta := b.Store.Get(ctx, id)
	node := &Node{
		ID:     id,
		Name:   meta.Name,
		Status: Evaluate(id, b.Rules, b.Inventory.InstalledIDs),
	}

	if rep := b.Rules.EffectiveID(id); rep != id {
		repMeta := b.Store.Get(ctx, rep)
		node.Replacement = &Ref{ID: rep, Name: repMeta.Name}
	}

	// Ignored nodes and failed fetches stay leaves: there is nothing
	// trustworthy to expand beneath them.
	if node.Status == StatusIgnored || meta.Failed() {
		return node
	}

	onPath[id] = true
	defer delete(onPath, id)

	for _, req := range meta.Requires {
		childID, ok := catalog.ExtractModID(req.URL)
		if !ok {
			continue
		}
		child := b.build(ctx, childID, onPath)
		child.Notes = req.Notes
		node.Children = append(node.Children, child)
	}
	return node
}
