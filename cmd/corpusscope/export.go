package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/corpusscope/internal/chart"
	"github.com/nao1215/corpusscope/internal/config"
	"github.com/nao1215/corpusscope/internal/model"
	"github.com/nao1215/corpusscope/internal/page"
	"github.com/nao1215/corpusscope/internal/pipeline"
	"github.com/nao1215/corpusscope/internal/report"
)

// manifestFile lists the exported pages.
const manifestFile = "manifest.json"

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render every page for every field into a directory",
		Long: `Export renders the introduction, the overview, and the word, collocation and
sentence pages once per field, concurrently, and writes one file per page
plus a manifest.json. Markdown exports also get PNG charts and word clouds.

Fields not set by flags keep their defaults; the field of each page is set
by the export itself.

Examples:
  # Markdown site under the XDG data directory
  corpusscope export

  # JSON files in ./out, 8 pages at a time
  corpusscope export -d ./out -f json --concurrency 8`,
		Args: cobra.NoArgs,
		RunE: runExportCmd,
	}

	cmd.Flags().StringP("dir", "d", "",
		"Output directory (default: export/ in the XDG data directory)")
	cmd.Flags().StringP("format", "f", string(report.FormatMarkdown),
		"Output format: text, json or markdown")
	cmd.Flags().Int("concurrency", config.DefaultExportConcurrency,
		"Number of pages rendered at once")
	cmd.Flags().Bool("no-charts", false, "Do not render PNG charts for Markdown output")
	cmd.Flags().Bool("continue-on-error", true,
		"Render the remaining sections of a page after one fails")

	addSelectionFlags(cmd.Flags())

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	sel, err := selectionFromFlags(cmd)
	if err != nil {
		return err
	}
	formatName, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format := report.Format(formatName)
	if _, err := report.NewWriter(format, io.Discard); err != nil {
		return err
	}
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	if dir == "" {
		dir = filepath.Join(config.XDGDataDir(), "export")
	}
	noCharts, err := cmd.Flags().GetBool("no-charts")
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

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	ex := &exporter{dir: dir, format: format, out: cmd.OutOrStdout()}
	if format == report.FormatMarkdown && !noCharts {
		ex.charts = a.charts
	}

	jobs := page.ExportJobs(sel)
	ex.total = len(jobs)
	fmt.Fprintf(ex.out, "Exporting %d pages to %s (concurrency: %d)...\n\n", len(jobs), dir, cfg.ExportConcurrency)
	start := time.Now()

	bp := pipeline.NewBatchProcessor(
		a.pages.Factory(),
		pipeline.WithConcurrency(cfg.ExportConcurrency),
		pipeline.WithBatchLogger(logger),
	)
	if err := bp.ProcessBatchWithCallback(cmd.Context(), jobs, ex.handle); err != nil {
		return err
	}
	if err := ex.writeManifest(); err != nil {
		return err
	}

	fmt.Fprintf(ex.out, "\nExport completed in %s\n", time.Since(start).Round(time.Millisecond))
	return ex.err()
}

// manifestEntry describes one exported page.
type manifestEntry struct {
	Key   string `json:"key"`
	Page  string `json:"page"`
	File  string `json:"file,omitempty"`
	Error string `json:"error,omitempty"`
}

// exporter writes batch results as they complete.
type exporter struct {
	dir    string
	format report.Format
	charts *chart.Renderer
	out    io.Writer
	total  int

	mu       sync.Mutex
	done     int
	entries  []manifestEntry
	failures []error
}

// handle is the batch callback. A render failure is recorded and the batch
// goes on; a write failure stops it.
func (e *exporter) handle(res pipeline.Result, _ int) error {
	entry := manifestEntry{Key: res.Job.Key, Page: res.Job.Page}

	var writeErr error
	if res.Err == nil {
		entry.File = res.Job.Key + e.format.Extension()
		writeErr = e.writePage(res.Job.Key, entry.File, res.Page)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.done++
	switch {
	case writeErr != nil:
		return fmt.Errorf("failed to write %s: %w", res.Job.Key, writeErr)
	case res.Err != nil:
		entry.Error = res.Err.Error()
		e.failures = append(e.failures, fmt.Errorf("%s: %w", res.Job.Key, res.Err))
		fmt.Fprintf(e.out, "[%d/%d] %s FAILED: %v\n", e.done, e.total, res.Job.Key, res.Err)
	default:
		fmt.Fprintf(e.out, "[%d/%d] %s (%s)\n", e.done, e.total, entry.File, res.Elapsed.Round(time.Millisecond))
	}
	e.entries = append(e.entries, entry)
	return nil
}

func (e *exporter) writePage(key, name string, p *model.Page) error {
	f, err := createOutputFile(filepath.Join(e.dir, name))
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // closed explicitly below on success

	var w report.Writer
	if e.format == report.FormatMarkdown {
		w = report.NewMarkdownWriter(f,
			report.WithChartLinks(e.chartLinker(key)),
			report.WithImageLinks(e.copyImage),
		)
	} else if w, err = report.NewWriter(e.format, f); err != nil {
		return err
	}
	if _, err := w.Write(p); err != nil {
		return err
	}
	return f.Close()
}

// chartLinker renders the charts of the page exported as key to
// charts/<key>-<index>.png. Pie charts stay inline as mermaid.
func (e *exporter) chartLinker(key string) func(int, *model.ChartSpec) string {
	return func(index int, c *model.ChartSpec) string {
		if e.charts == nil || c.Kind == model.ChartPie {
			return ""
		}
		rel := filepath.ToSlash(filepath.Join("charts", fmt.Sprintf("%s-%d.png", key, index)))
		f, err := createOutputFile(filepath.Join(e.dir, rel))
		if err != nil {
			return ""
		}
		defer f.Close() //nolint:errcheck // written chart is best effort
		if err := e.charts.Render(c, f); err != nil {
			return ""
		}
		return rel
	}
}

// copyImage copies a word cloud next to the exported pages.
func (e *exporter) copyImage(img *model.Image) string {
	rel := filepath.ToSlash(filepath.Join("wordcloud", img.Domain.String()+filepath.Ext(img.Path)))
	dst := filepath.Join(e.dir, rel)

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := os.Stat(dst); err == nil {
		return rel
	}
	if err := copyFile(img.Path, dst); err != nil {
		return ""
	}
	return rel
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // artifact path
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // read-only

	out, err := createOutputFile(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close() //nolint:errcheck // already failing
		return err
	}
	return out.Close()
}

func (e *exporter) writeManifest() error {
	sort.Slice(e.entries, func(i, j int) bool { return e.entries[i].Key < e.entries[j].Key })
	data, err := json.MarshalIndent(e.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(e.dir, manifestFile), append(data, '\n'), 0o600)
}

// err joins the render failures.
func (e *exporter) err() error {
	if len(e.failures) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d pages failed: %w", len(e.failures), e.total, errors.Join(e.failures...))
}
