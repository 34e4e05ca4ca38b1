package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperline-api/hyperline/internal/cli/config"
	"github.com/hyperline-api/hyperline/internal/resource/loader"
	"github.com/hyperline-api/hyperline/internal/schema"
	"github.com/hyperline-api/hyperline/internal/serve"
)

var (
	serveManifest string
	servePort     int
	serveHost     string
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compiled schema document locally",
		Long: `Compile the resource model and serve the resulting document
at /schema.json on a local HTTP server.

The document is compiled once at startup and cached by model
fingerprint; restart the server after changing the manifest.

Examples:
  hyperline serve
  hyperline serve --port=8080`,
		RunE: runServe,
	}

	cmd.Flags().StringVarP(&serveManifest, "manifest", "m", "", "Resource model manifest path")
	cmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to serve on")
	cmd.Flags().StringVar(&serveHost, "host", "", "Host to bind")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	successColor := color.New(color.FgGreen, color.Bold)
	errorColor := color.New(color.FgRed, color.Bold)
	infoColor := color.New(color.FgCyan)

	cfg, err := config.Load()
	if err != nil {
		errorColor.Printf("Error: %v\n", err)
		return err
	}
	if serveManifest != "" {
		cfg.Manifest = serveManifest
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}

	model, err := loader.LoadFile(cfg.Manifest)
	if err != nil {
		errorColor.Printf("Error: %v\n", err)
		return err
	}
	if cfg.Prefix != "" {
		model.Prefix = cfg.Prefix
	}

	document, err := schema.NewCache().Document(model)
	if err != nil {
		errorColor.Printf("Error: %v\n", err)
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	successColor.Printf("✓ Schema server running at http://%s:%d/schema.json\n",
		cfg.Server.Host, cfg.Server.Port)
	infoColor.Println("Press Ctrl+C to stop")

	server := serve.NewServer(document, logger)
	return server.Listen(cfg.Server.Host, cfg.Server.Port)
}
