// Package commands implements the hyperline CLI commands.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root hyperline command with all subcommands
// attached.
func NewRootCommand(version, gitCommit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hyperline",
		Short: "Resource-to-hyper-schema compiler and tooling",
		Long: `Hyperline compiles a declarative resource model into a JSON
Hyper-Schema document describing every route's href template, query
parameters, and request/response payloads.`,
	}

	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewVersionCommand(version, gitCommit, buildDate))

	return rootCmd
}
