package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hyperline-api/hyperline/internal/resource/loader"
	"github.com/hyperline-api/hyperline/internal/schema"
)

var validateManifest string

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the resource model without writing output",
		Long: `Load the resource model manifest, check its structural
invariants, and run a full compilation pass. Nothing is written; the
command exists to surface model problems early, with the same errors
generate would report.

Examples:
  hyperline validate
  hyperline validate --manifest=resources.yml`,
		RunE: runValidate,
	}

	cmd.Flags().StringVarP(&validateManifest, "manifest", "m", "", "Resource model manifest path")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	successColor := color.New(color.FgGreen, color.Bold)
	errorColor := color.New(color.FgRed, color.Bold)

	cfg, err := loadConfig()
	if err != nil {
		errorColor.Printf("Error: %v\n", err)
		return err
	}
	if validateManifest != "" {
		cfg.Manifest = validateManifest
	}

	model, err := loader.LoadFile(cfg.Manifest)
	if err != nil {
		errorColor.Printf("Error: %v\n", err)
		return err
	}
	if cfg.Prefix != "" {
		model.Prefix = cfg.Prefix
	}

	if _, err := schema.Compile(model); err != nil {
		errorColor.Printf("Error: %v\n", err)
		return err
	}

	successColor.Printf("✓ %s is valid (%d resources, %d exposed)\n",
		cfg.Manifest, len(model.Resources), len(model.Exposed()))

	return nil
}
