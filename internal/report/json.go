package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/corpusscope/internal/model"
)

// JSONWriter outputs pages in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the page in JSON format.
func (w *JSONWriter) Write(page *model.Page) (int, error) {
	return w.writeJSON(page)
}

// WritePages outputs several pages as one JSON array.
func (w *JSONWriter) WritePages(pages []*model.Page) (int, error) {
	if pages == nil {
		pages = []*model.Page{}
	}
	return w.writeJSON(pages)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONReport wraps a page with the version of the tool that rendered it.
type JSONReport struct {
	// Version is the corpusscope version that rendered the page.
	Version string `json:"version"`

	// Page is the rendered page.
	Page *model.Page `json:"page"`

	// Charts is the number of charts on the page; the HTTP chart endpoint
	// accepts indexes below it.
	Charts int `json:"charts"`
}

// NewJSONReport creates a JSONReport wrapper with version information.
func NewJSONReport(page *model.Page, version string) *JSONReport {
	return &JSONReport{
		Version: version,
		Page:    page,
		Charts:  len(page.Charts()),
	}
}

// FullJSONWriter outputs pages with the metadata wrapper.
type FullJSONWriter struct {
	*JSONWriter

	// version is the corpusscope version string.
	version string
}

// NewFullJSONWriter creates a writer for wrapped pages.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the page wrapped with metadata.
func (w *FullJSONWriter) Write(page *model.Page) (int, error) {
	return w.writeJSON(NewJSONReport(page, w.version))
}
