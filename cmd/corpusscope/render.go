package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/corpusscope/internal/model"
	"github.com/nao1215/corpusscope/internal/page"
	"github.com/nao1215/corpusscope/internal/report"
)

// NewPageCmd creates the page command.
func NewPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page <name>",
		Short: "Render one page to the terminal or a file",
		Long: `Page renders one view of the dashboard for the given fields and writes it as
text, JSON or Markdown.

Pages: intro, overview, word, collocation, sentence.

Examples:
  # Compare the top 20 words of two fields
  corpusscope page word --domain General,History --top-n 20

  # Collocations of "market" as JSON
  corpusscope page collocation --term market --json

  # Parse the first sentence containing "market"
  corpusscope page sentence --field Economics --search market --index 0 -m -o sentence.md`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: pageNames(),
		RunE:      runPageCmd,
	}

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write the page to the specified file path (creates directories if needed)")
	cmd.Flags().Bool("tee", false,
		"With --output, also print the page as text to stdout")
	cmd.Flags().Bool("continue-on-error", false,
		"Render the remaining sections after one fails")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")

	addSelectionFlags(cmd.Flags())

	return cmd
}

func pageNames() []string {
	var names []string
	for _, p := range page.Pages() {
		names = append(names, p.Name)
	}
	return names
}

// runPageCmd executes the page command.
func runPageCmd(cmd *cobra.Command, args []string) error {
	if _, err := page.Lookup(args[0]); err != nil {
		return err
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	sel, err := selectionFromFlags(cmd)
	if err != nil {
		return err
	}
	format, err := formatFromFlags(cmd)
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	tee, err := cmd.Flags().GetBool("tee")
	if err != nil {
		return err
	}
	continueOnError, err := cmd.Flags().GetBool("continue-on-error")
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context(), cfg, logger, continueOnError)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck // read-only handle

	p, err := a.pages.Render(cmd.Context(), args[0], sel)
	if err != nil {
		return err
	}
	return writePage(cmd.OutOrStdout(), outputPath, format, p, tee)
}

// formatFromFlags returns the output format selected by --json/--markdown.
func formatFromFlags(cmd *cobra.Command) (report.Format, error) {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return "", err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return "", err
	}
	switch {
	case asJSON:
		return report.FormatJSON, nil
	case asMarkdown:
		return report.FormatMarkdown, nil
	default:
		return report.FormatText, nil
	}
}

// writePage writes p to path, or to stdout when path is empty.
// With tee, a file output is echoed to stdout as text.
func writePage(stdout io.Writer, path string, format report.Format, p *model.Page, tee bool) error {
	if path == "" {
		return writeFormatted(stdout, format, p)
	}

	f, err := createOutputFile(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // closed explicitly below on success

	writer, err := report.NewWriter(format, f)
	if err != nil {
		return err
	}
	if tee {
		writer = report.NewMultiWriter(writer, report.NewSimpleWriter(stdout))
	}
	if _, err := writer.Write(p); err != nil {
		return err
	}
	return f.Close()
}

func writeFormatted(w io.Writer, format report.Format, p *model.Page) error {
	writer, err := report.NewWriter(format, w)
	if err != nil {
		return err
	}
	_, err = writer.Write(p)
	return err
}

// createOutputFile creates path and its parent directories.
func createOutputFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600) //nolint:gosec // user-provided output path
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}
