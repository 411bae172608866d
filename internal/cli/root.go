// Package cli implements the pytoty command-line interface on top of cobra.
// Commands call package-level service variables wired by internal/app.go so
// tests can swap in mocks.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "pytoty",
	Short: "Convert Pydantic models to TypeScript interfaces",
	Long: `pytoty converts Pydantic models found in a Python source tree into
TypeScript interface and enum declarations.

It parses Python files statically (no Python interpreter required),
preserves the directory layout of the input tree, and keeps cross-module
references working through generated import statements.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pytoty %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
