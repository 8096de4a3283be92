package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/corpusscope/internal/model"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ErrUnknownFormat is returned by NewWriter for an unsupported format.
var ErrUnknownFormat = errors.New("unknown output format")

// Writer defines the interface for page output.
type Writer interface {
	// Write outputs the page to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(page *model.Page) (int, error)
}

// NewWriter returns a writer of the given format with its default options.
func NewWriter(format Format, output io.Writer) (Writer, error) {
	switch format {
	case FormatText, "":
		return NewSimpleWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Extension returns the file extension used when exporting in format.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatMarkdown:
		return ".md"
	default:
		return ".txt"
	}
}

// MultiWriter writes one page through several Writers in order, e.g. a
// JSON file and a text echo on the terminal.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the page to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(page *model.Page) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(page)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// chartTable flattens a chart into a table with one row per category and
// one column per series.
func chartTable(c *model.ChartSpec) *model.Table {
	t := &model.Table{Caption: c.Title, Header: []string{c.XTitle}}
	if t.Header[0] == "" {
		t.Header[0] = "Label"
	}
	for i, s := range c.Series {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("Series %d", i+1)
		}
		t.Header = append(t.Header, name)
	}
	for _, label := range c.Categories() {
		row := []string{label}
		for _, s := range c.Series {
			row = append(row, formatValue(s.ValueOf(label), c.YTickSuffix))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func formatValue(v float64, suffix string) string {
	return fmt.Sprintf("%g%s", v, suffix)
}

// parseTable lists the tokens of a parse.
func parseTable(p *model.Parse) *model.Table {
	t := &model.Table{
		Caption: fmt.Sprintf("Parse (%s)", p.Backend),
		Header:  []string{"#", "Token", "Lemma", "POS", "Entity", "Head", "Relation"},
	}
	for _, tok := range p.Tokens {
		t.Rows = append(t.Rows, []string{
			fmt.Sprint(tok.Index), tok.Text, tok.Lemma, tok.Tag, tok.Entity, fmt.Sprint(tok.Head), tok.Dep,
		})
	}
	return t
}
