package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loadstone/loadstone/pkg/config"
	"github.com/loadstone/loadstone/pkg/rules"
)

// newRulesCmd creates the rules management command.
func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage the ignore/replace rules document",
	}

	cmd.AddCommand(newRulesInitCmd())
	cmd.AddCommand(newRulesPathCmd())

	return cmd
}

// newRulesInitCmd creates the "rules init" subcommand.
func newRulesInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a commented rules template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.RulesPath()
			if err != nil {
				return err
			}
			if err := rules.WriteTemplate(path); err != nil {
				return err
			}
			printSuccess("Rules template written")
			printFile(path)
			return nil
		},
	}
}

// newRulesPathCmd creates the "rules path" subcommand.
func newRulesPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the rules document path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.RulesPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}
