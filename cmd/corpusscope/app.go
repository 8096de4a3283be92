package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/corpusscope/internal/artifact"
	"github.com/nao1215/corpusscope/internal/chart"
	"github.com/nao1215/corpusscope/internal/config"
	"github.com/nao1215/corpusscope/internal/database"
	"github.com/nao1215/corpusscope/internal/log"
	"github.com/nao1215/corpusscope/internal/nlp"
	"github.com/nao1215/corpusscope/internal/page"
)

// buildConfig layers defaults, the configuration file, the environment
// and the flags the user set, then validates the result.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use defaults if no file found.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := file.Apply(cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// applyFlags copies the flags the user changed onto cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	stringFlags := []struct {
		name string
		dst  *string
	}{
		{"root", &cfg.ArtifactRoot},
		{"db-driver", &cfg.DatabaseDriver},
		{"db", &cfg.DatabaseDSN},
		{"nlp", &cfg.NLPBackend},
		{"corenlp-url", &cfg.CoreNLPURL},
		{"listen", &cfg.ListenAddress},
	}
	for _, f := range stringFlags {
		if flags.Lookup(f.name) == nil || !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetString(f.name)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if flags.Lookup("concurrency") != nil && flags.Changed("concurrency") {
		n, err := flags.GetInt("concurrency")
		if err != nil {
			return err
		}
		cfg.ExportConcurrency = n
	}

	var err error
	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return err
	}
	if flags.Changed("json-log") {
		if cfg.JSONLog, err = flags.GetBool("json-log"); err != nil {
			return err
		}
	}
	return nil
}

// setupLogger creates the secure structured logger and makes it the default.
func setupLogger(cfg *config.Config) *slog.Logger {
	var logger *slog.Logger
	if cfg.JSONLog {
		logger = log.NewSecureJSONLogger(os.Stderr, cfg.Verbose)
	} else {
		logger = log.NewSecureLogger(os.Stderr, cfg.Verbose)
	}
	slog.SetDefault(logger)
	return logger
}

// app holds the shared, read-only resources of one CLI run.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	artifacts *artifact.Store
	db        *database.Store
	charts    *chart.Renderer
	pages     *page.Renderer
}

// openApp opens the artifact store, the database and the parser.
// continueOnError lets pages render past failing sections.
func openApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, continueOnError bool) (*app, error) {
	arts, err := artifact.New(artifact.Options{
		Root:      cfg.ArtifactRoot,
		Paths:     cfg.Paths,
		CacheSize: cfg.TableCacheSize,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, database.Options{
		Driver:       cfg.DatabaseDriver,
		DSN:          cfg.ResolvedDSN(),
		MaxOpenConns: cfg.ExportConcurrency,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("database opened", "driver", cfg.DatabaseDriver, "dsn", cfg.ResolvedDSN())

	parser, err := nlp.New(cfg, logger)
	if err != nil {
		_ = db.Close() //nolint:errcheck // already failing
		return nil, err
	}

	charts, err := chart.New(chart.Options{
		Width:    cfg.ChartWidth,
		Height:   cfg.ChartHeight,
		FontPath: cfg.ChartFontPath,
	})
	if err != nil {
		_ = db.Close() //nolint:errcheck // already failing
		return nil, err
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		artifacts: arts,
		db:        db,
		charts:    charts,
		pages: page.NewRenderer(page.Deps{
			Artifacts:       arts,
			Database:        db,
			Parser:          parser,
			Logger:          logger,
			ContinueOnError: continueOnError,
		}),
	}, nil
}

// Close releases the database connection.
func (a *app) Close() error {
	return a.db.Close()
}
