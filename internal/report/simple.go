package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/nao1215/corpusscope/internal/model"
)

// SimpleWriter outputs human-readable text pages for terminal display.
// Charts are printed as their underlying data.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether headings of sections without content
	// are kept.
	showEmpty bool

	// verbose adds the selection the page was rendered for.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output), showEmpty: true}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the page in human-readable format.
func (w *SimpleWriter) Write(page *model.Page) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, page)
	for i, b := range page.Blocks {
		if b.Kind == model.BlockHeading && !w.showEmpty && !hasContent(page.Blocks[i+1:], b.Level) {
			continue
		}
		w.writeBlock(&sb, b)
	}
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// hasContent reports whether any non-heading block follows before the
// next heading of the same or a higher level.
func hasContent(rest []model.Block, level int) bool {
	for _, b := range rest {
		if b.Kind == model.BlockHeading {
			if b.Level <= level {
				return false
			}
			continue
		}
		return true
	}
	return false
}

// writeHeader writes the page title.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, page *model.Page) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(center(strings.ToUpper(page.Title), 70))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	if w.verbose {
		values := page.Selection.Values()
		for _, key := range slices.Sorted(maps.Keys(values)) {
			fmt.Fprintf(sb, "%-16s %s\n", key+":", strings.Join(values[key], ", "))
		}
		sb.WriteString("\n")
	}
}

func (w *SimpleWriter) writeBlock(sb *strings.Builder, b model.Block) {
	switch b.Kind {
	case model.BlockHeading:
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n")
		if b.Level <= 2 {
			sb.WriteString(strings.ToUpper(b.Text))
		} else {
			sb.WriteString(b.Text)
		}
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n\n")
	case model.BlockText:
		sb.WriteString(b.Text)
		sb.WriteString("\n\n")
	case model.BlockNotice:
		fmt.Fprintf(sb, "[%s] %s\n\n", noticeIndicator(b.Notice), b.Text)
	case model.BlockTable:
		writeTable(sb, b.Table)
	case model.BlockChart:
		fmt.Fprintf(sb, "Chart (%s)\n", b.Chart.Kind)
		writeTable(sb, chartTable(b.Chart))
	case model.BlockImage:
		fmt.Fprintf(sb, "Image: %s (%s)\n\n", b.Image.Caption, b.Image.Path)
	case model.BlockParse:
		writeTable(sb, parseTable(b.Parse))
		for _, e := range b.Parse.Entities {
			fmt.Fprintf(sb, "  [+] %s (%s)\n", e.Text, e.Label)
		}
		if len(b.Parse.Entities) > 0 {
			sb.WriteString("\n")
		}
	}
}

// writeTable writes a table with aligned columns.
func writeTable(sb *strings.Builder, t *model.Table) {
	if t.Caption != "" {
		sb.WriteString(t.Caption)
		sb.WriteString("\n")
	}
	tw := tabwriter.NewWriter(sb, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\n", strings.Join(t.Header, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintf(tw, "  %s\n", strings.Join(row, "\t"))
	}
	_ = tw.Flush() // strings.Builder never fails
	sb.WriteString("\n")
}

// noticeIndicator returns a visual indicator for the notice level.
func noticeIndicator(level model.NoticeLevel) string {
	switch level {
	case model.NoticeError:
		return "!!"
	case model.NoticeWarning:
		return "!"
	case model.NoticeSuccess:
		return "+"
	case model.NoticeInfo:
		return "i"
	default:
		return "?"
	}
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", (width-len(s))/2) + s
}

// writeFooter writes the page footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Rendered by corpusscope\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
