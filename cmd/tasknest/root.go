package main

import (
	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/xdg"
)

// Global flags available to all subcommands.
var configFile string

// resolveConfigFile returns the --config flag value, falling back to the
// XDG config location when present.
func resolveConfigFile() string {
	if configFile != "" {
		return configFile
	}
	return xdg.ConfigFile()
}

// NewRootCmd creates the root command for the TaskNest CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasknest",
		Short: "TaskNest - a task management backend",
		Long: `TaskNest is a task management backend with user accounts,
task lists, and owner-scoped tasks behind a JSON REST API.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
