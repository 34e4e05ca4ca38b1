package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hyperline-api/hyperline/internal/cli/config"
	"github.com/hyperline-api/hyperline/internal/resource/loader"
	"github.com/hyperline-api/hyperline/internal/schema"
)

var (
	generateManifest string
	generateOutput   string
	generatePrefix   string
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compile the resource model into a schema document",
		Long: `Compile the resource model manifest into a JSON Hyper-Schema
document and write it to disk.

The output contains one canonical definition per exposed resource and
one link description per route, and is byte-stable: regenerating from
an unchanged manifest produces an identical file.

Examples:
  hyperline generate
  hyperline generate --manifest=resources.yml --output=schema.json
  hyperline generate --prefix=/api/v1`,
		RunE: runGenerate,
	}

	cmd.Flags().StringVarP(&generateManifest, "manifest", "m", "", "Resource model manifest path")
	cmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file path")
	cmd.Flags().StringVar(&generatePrefix, "prefix", "", "API path prefix override")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	successColor := color.New(color.FgGreen, color.Bold)
	errorColor := color.New(color.FgRed, color.Bold)
	infoColor := color.New(color.FgCyan)

	cfg, err := loadConfig()
	if err != nil {
		errorColor.Printf("Error: %v\n", err)
		return err
	}

	infoColor.Printf("Compiling %s...\n", cfg.Manifest)

	model, err := loader.LoadFile(cfg.Manifest)
	if err != nil {
		errorColor.Printf("Error: %v\n", err)
		return err
	}
	if cfg.Prefix != "" {
		model.Prefix = cfg.Prefix
	}

	doc, err := schema.Compile(model)
	if err != nil {
		errorColor.Printf("Error: %v\n", err)
		return err
	}

	data, err := schema.Marshal(doc)
	if err != nil {
		errorColor.Printf("Error: %v\n", err)
		return err
	}

	if err := os.WriteFile(cfg.Output, append(data, '\n'), 0644); err != nil {
		err = fmt.Errorf("write schema document: %w", err)
		errorColor.Printf("Error: %v\n", err)
		return err
	}

	elapsed := time.Since(startTime)
	successColor.Printf("✓ Schema generated in %v\n", elapsed)
	infoColor.Printf("Output: %s\n", cfg.Output)

	return nil
}

// loadConfig merges hyperline.yml with command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if generateManifest != "" {
		cfg.Manifest = generateManifest
	}
	if generateOutput != "" {
		cfg.Output = generateOutput
	}
	if generatePrefix != "" {
		cfg.Prefix = generatePrefix
	}
	return cfg, nil
}
