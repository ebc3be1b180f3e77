// Package analyze ties the catalog store, rules, inventory and graph
// algorithms together into the two analysis modes the CLI exposes: a
// single-mod dependency tree and the full network with missing-dependency
// and load-order results.
package analyze

import (
	"context"
	"regexp"
	"time"

	"github.com/charmbracelet/log"

	"github.com/loadstone/loadstone/pkg/catalog"
	"github.com/loadstone/loadstone/pkg/config"
	"github.com/loadstone/loadstone/pkg/depgraph"
	"github.com/loadstone/loadstone/pkg/errors"
	"github.com/loadstone/loadstone/pkg/inventory"
	"github.com/loadstone/loadstone/pkg/report"
	"github.com/loadstone/loadstone/pkg/rules"
)

var modIDPattern = regexp.MustCompile(`^\d+$`)

// Runner executes analysis runs. It owns nothing: store, rules and
// inventory are prepared by the caller and shared across modes.
//
// On orderly completion a run persists the metadata store so later runs
// reuse the fetches. A cancelled run returns the context error and leaves
// the durable cache untouched.
type Runner struct {
	Store     *catalog.Store
	Rules     *rules.Rules
	Inventory *inventory.Inventory
	Config    *config.Config
	Logger    *log.Logger
}

// NewRunner wires a runner. A nil config gets the defaults, a nil logger
// the global one.
func NewRunner(store *catalog.Store, r *rules.Rules, inv *inventory.Inventory, cfg *config.Config, logger *log.Logger) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Store:     store,
		Rules:     r,
		Inventory: inv,
		Config:    cfg,
		Logger:    logger,
	}
}

// Tree builds the dependency tree rooted at id.
func (r *Runner) Tree(ctx context.Context, id catalog.ModID) (*report.TreeReport, error) {
	if !modIDPattern.MatchString(string(id)) {
		return nil, errors.New(errors.ErrCodeInvalidModID, "mod id %q is not numeric", id)
	}

	start := time.Now()
	builder := &depgraph.TreeBuilder{Store: r.Store, Rules: r.Rules, Inventory: r.Inventory}
	root := builder.Build(ctx, id)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.Logger.Info("built dependency tree",
		"root", id,
		"duration", time.Since(start))

	if err := r.Store.Persist(); err != nil {
		return nil, err
	}
	return &report.TreeReport{
		RunID:       report.NewRunID(),
		GeneratedAt: time.Now().UTC(),
		Game:        r.Config.Game,
		Root:        root,
	}, nil
}

// Full runs the complete network → missing → sort analysis over the
// installed set. A report with a non-empty Cyclic slice is still returned
// without error; deciding whether that fails the run is the caller's call.
func (r *Runner) Full(ctx context.Context) (*report.SortReport, error) {
	if r.Inventory.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidModlist, "no installed mods with catalog ids")
	}

	// Stage 1: expand the requirement network.
	netStart := time.Now()
	g := (&depgraph.NetworkBuilder{Store: r.Store}).Build(ctx, r.Inventory.InstalledIDs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.Logger.Info("expanded requirement network",
		"installed", r.Inventory.Len(),
		"reachable", len(g.Visited),
		"duration", time.Since(netStart))

	// Stage 2: unmet requirements.
	missing := (&depgraph.MissingAnalyzer{Store: r.Store, Rules: r.Rules, Inventory: r.Inventory}).Find(ctx, g)
	if len(missing) > 0 {
		r.Logger.Warn("unmet requirements found", "count", len(missing))
	}

	// Stage 3: load order.
	sortStart := time.Now()
	sorter := &depgraph.Sorter{
		Store:           r.Store,
		Rules:           r.Rules,
		Inventory:       r.Inventory,
		Priorities:      r.Config.CategoryPriorities,
		DefaultPriority: r.Config.DefaultPriority,
	}
	order, cyclic := sorter.Sort(ctx, g)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.Logger.Info("computed load order",
		"placed", len(order),
		"cyclic", len(cyclic),
		"duration", time.Since(sortStart))

	rep := &report.SortReport{
		RunID:       report.NewRunID(),
		GeneratedAt: time.Now().UTC(),
		Game:        r.Config.Game,
		Cyclic:      cyclic,
		Missing:     missing,
	}
	for _, folder := range order {
		id := r.Inventory.FolderToID[folder]
		meta := r.Store.Get(ctx, id)
		rep.Order = append(rep.Order, report.Placement{
			Folder:   folder,
			ID:       id,
			Name:     meta.Name,
			Category: meta.Category,
			Priority: r.Config.Priority(meta.Category),
		})
		if refs := r.directRequirements(ctx, g, id); len(refs) > 0 {
			if rep.Edges == nil {
				rep.Edges = map[string][]depgraph.ModRef{}
			}
			rep.Edges[folder] = refs
		}
	}

	if err := r.Store.Persist(); err != nil {
		return nil, err
	}
	return rep, nil
}

// directRequirements resolves the forward edges of id into named refs for
// the report's per-placement detail.
func (r *Runner) directRequirements(ctx context.Context, g *depgraph.Graph, id catalog.ModID) []depgraph.ModRef {
	edges := g.Forward[id]
	refs := make([]depgraph.ModRef, 0, len(edges))
	seen := map[catalog.ModID]bool{}
	for _, edge := range edges {
		if seen[edge.ID] {
			continue
		}
		seen[edge.ID] = true
		refs = append(refs, depgraph.ModRef{
			Name: r.Store.Get(ctx, edge.ID).Name,
			ID:   edge.ID,
		})
	}
	return refs
}
