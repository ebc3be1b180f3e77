package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. Called by
// the main package with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the loadstone CLI and returns an error if any command
// fails. The logger is built in the persistent pre-run, switched to debug
// level by --verbose, and attached to the command context so every command
// retrieves it with loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose bool
		opts    rootOpts
	)

	root := &cobra.Command{
		Use:          "loadstone",
		Short:        "Loadstone analyzes mod dependencies and computes load orders",
		Long:         `Loadstone is a CLI tool that analyzes an installed set of game mods against a remote catalog's dependency relation, reporting missing requirements and computing a priority-weighted load order.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("loadstone %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.modlist, "modlist", "m", "", "path to the installed-mod list document")
	root.PersistentFlags().StringVar(&opts.config, "config", "", "path to the config file")

	root.AddCommand(newTreeCmd(&opts))
	root.AddCommand(newSortCmd(&opts))
	root.AddCommand(newCacheCmd())
	root.AddCommand(newRulesCmd())

	return root.ExecuteContext(ctx)
}
