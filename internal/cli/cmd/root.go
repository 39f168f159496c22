// Package cmd provides Cobra CLI commands for tabdeck.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabdeck/tabdeck/internal/cli"
)

var (
	app     *cli.App
	rootCmd = &cobra.Command{
		Use:   "tabdeck",
		Short: "Tab and group management for UI workspaces",
		Long: `Tabdeck - a tab coordination layer with persistence.

Manages an ordered collection of tabs and tab groups backed by SQLite,
with cross-tab messaging and shared-state dependencies available to
embedding applications.

Examples:
  tabdeck add "Inbox"            # Create a tab
  tabdeck list                   # Show the tab strip
  tabdeck activate <id>          # Switch the active tab
  tabdeck group create "Work"    # Create a group`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}
			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
