package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loadstone/loadstone/pkg/config"
)

// newCacheCmd creates the cache management command.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the metadata cache",
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePathCmd())

	return cmd
}

// newCacheClearCmd creates the "cache clear" subcommand.
func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached mod metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CachePath()
			if err != nil {
				return err
			}

			if err := os.Remove(path); err != nil {
				if os.IsNotExist(err) {
					printInfo("Cache is empty")
					return nil
				}
				return fmt.Errorf("remove cache: %w", err)
			}

			printSuccess("Cache cleared")
			printDetail("Document: %s", path)
			return nil
		},
	}
}

// newCachePathCmd creates the "cache path" subcommand.
func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache document path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CachePath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}
