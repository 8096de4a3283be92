package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for corpusscope.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpusscope",
		Short: "Visualize and compare domain-specific corpora",
		Long: `corpusscope compares textbook corpora of eight domains with the BNC Baby
reference corpus: word frequencies, part-of-speech proportions, word lengths,
collocations and the parse of individual sentences.

Every view reads precomputed artifacts from the artifact root; nothing is
recalculated. Settings come from the configuration file, CORPUSSCOPE_*
environment variables and flags, later sources winning.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	flags := cmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.StringP("config", "c", "",
		"Configuration file path (default: .corpusscope in current or home directory)")
	flags.StringP("root", "r", "", "Artifact root directory")
	flags.String("db-driver", "", "Database driver: sqlite or pgx")
	flags.String("db", "", "SQLite file (relative to the artifact root) or PostgreSQL DSN")
	flags.String("nlp", "", "Sentence parser backend: prose, corenlp or none")
	flags.String("corenlp-url", "", "Stanford CoreNLP server URL")
	flags.Bool("json-log", false, "Write logs as JSON")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewPageCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
