package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loadstone/loadstone/pkg/catalog"
	"github.com/loadstone/loadstone/pkg/depgraph"
)

// newTreeCmd creates the tree command. With no argument it opens the
// interactive picker over the installed mods.
func newTreeCmd(opts *rootOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tree [mod-id]",
		Short: "Build the dependency tree of one mod",
		Long: `Build the recursive dependency tree of a single mod against the remote
catalog, marking every requirement as satisfied, missing, ignored, or part
of a dependency cycle.

Examples:
  loadstone tree 12604 --modlist modlist.toml
  loadstone tree --modlist modlist.toml        # pick a mod interactively
  loadstone tree 266 -m modlist.toml -o tree.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := openWorkspace(ctx, opts)
			if err != nil {
				return err
			}

			var id catalog.ModID
			if len(args) == 1 {
				id = catalog.ModID(args[0])
			} else {
				if id, err = pickMod(ws.entries); err != nil {
					return err
				}
			}

			spinner := newSpinner(ctx, fmt.Sprintf("Fetching dependency metadata for %s...", id))
			spinner.Start()
			rep, err := ws.runner.Tree(ctx, id)
			spinner.Stop()
			if err != nil {
				return err
			}

			printTree(rep.Root)
			printNewline()
			if missing := countStatus(rep.Root, depgraph.StatusMissing); missing > 0 {
				printWarning("%d requirement(s) missing", missing)
			}
			if cycles := countStatus(rep.Root, depgraph.StatusCycle); cycles > 0 {
				printWarning("%d dependency cycle(s) detected", cycles)
			}

			if output != "" {
				if err := writeReport(rep, output); err != nil {
					return err
				}
				printSuccess("Report written")
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON report to a file")
	return cmd
}

// countStatus counts the nodes below root carrying the given status. The
// root itself is not counted.
func countStatus(root *depgraph.Node, status depgraph.Status) int {
	n := 0
	for _, child := range root.Children {
		if child.Status == status {
			n++
		}
		n += countStatus(child, status)
	}
	return n
}
