package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loadstone/loadstone/pkg/errors"
)

// newSortCmd creates the sort command.
func newSortCmd(opts *rootOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Compute the load order for the installed mods",
		Long: `Expand the full requirement network of the installed mods, report every
unmet requirement, and compute a load order that places each requirement
before its dependents, weighted by category priority.

A dependency cycle between installed mods makes a complete order
impossible; the mods involved are listed and the command fails.

Examples:
  loadstone sort --modlist modlist.toml
  loadstone sort -m modlist.toml -o loadorder.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := openWorkspace(ctx, opts)
			if err != nil {
				return err
			}

			logger := loggerFromContext(ctx)
			prog := newProgress(logger)
			spinner := newSpinner(ctx, "Expanding the requirement network...")
			spinner.Start()
			rep, err := ws.runner.Full(ctx)
			spinner.Stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Analyzed %d installed mods", ws.inv.Len()))

			if len(rep.Missing) > 0 {
				printMissing(rep.Missing)
				printNewline()
			}

			if len(rep.Cyclic) > 0 {
				printError("Dependency cycle detected, cannot compute a complete order")
				for _, folder := range rep.Cyclic {
					printDetail("%s", folder)
				}
				if output != "" {
					if err := writeReport(rep, output); err != nil {
						return err
					}
					printFile(output)
				}
				return errors.New(errors.ErrCodeCyclicOrder, "%d mods form a dependency cycle", len(rep.Cyclic))
			}

			printOrder(rep.Order)
			printNewline()
			printSuccess("Placed %d mods", len(rep.Order))
			if len(rep.Missing) > 0 {
				printWarning("%d requirement(s) unmet", len(rep.Missing))
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
