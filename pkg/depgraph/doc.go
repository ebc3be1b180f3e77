// Package depgraph implements the dependency graph engine: per-mod
// dependency trees, the full forward/reverse requirement network over an
// installed set, missing-requirement analysis, and the priority-weighted
// topological sort that produces a load order.
//
// # Traversal strategies
//
// The tree builder and the network builder deliberately traverse
// differently and must not be unified:
//
//   - TreeBuilder walks depth-first with a per-path visited set, so a cycle
//     is detected exactly where a branch re-enters one of its ancestors and
//     the same mod may still appear on sibling branches. The result is a
//     human-readable tree.
//   - NetworkBuilder walks breadth-first with a global visited set, so every
//     reachable mod is fetched and expanded exactly once. The result is the
//     reachability closure the missing analyzer and the sorter need; cycles
//     and rule outcomes never stop it.
//
// All algorithms are single-threaded and side-effect-free apart from reads
// and writes on the metadata store they are given.
package depgraph
