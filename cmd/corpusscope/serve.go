package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/corpusscope/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Long: `Serve starts the dashboard: an HTML page per view with a sidebar of fields,
PNG charts, word clouds and a JSON API under /api.

Every request re-runs the page against the shared, read-only artifacts, so
regenerated artifacts are picked up without a restart.

Examples:
  # Serve the artifacts in ./artifacts on the default address
  corpusscope serve --root ./artifacts

  # Listen on all interfaces
  corpusscope serve -l 0.0.0.0:8501`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("listen", "l", "", "Address to listen on (default 127.0.0.1:8501)")
	cmd.Flags().Bool("continue-on-error", false,
		"Render the remaining sections of a page after one fails")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	continueOnError, err := cmd.Flags().GetBool("continue-on-error")
	if err != nil {
		return err
	}

	// Stop serving on interrupt
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx, cfg, logger, continueOnError)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck // read-only handle

	srv := server.New(server.Options{
		Pages:     a.pages,
		Charts:    a.charts,
		Artifacts: a.artifacts,
		Database:  a.db,
		Logger:    logger,
		Version:   getVersion(),
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s\n", cfg.ArtifactRoot, cfg.ListenAddress)
	if err := srv.Run(ctx, cfg.ListenAddress); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
