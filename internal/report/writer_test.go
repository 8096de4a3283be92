package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nao1215/corpusscope/internal/model"
)

// createTestPage creates a page with one block of every kind.
func createTestPage() *model.Page {
	page := model.NewPage("word", "Word-level Analysis", model.DefaultSelection())
	page.AddHeading(2, "Basic Information")
	page.AddText("Three corpora are compared.")
	page.AddNotice(model.NoticeWarning, "Please select at least one field!")
	page.AddTable(&model.Table{
		Caption: "General",
		Header:  []string{"Word", "Freq"},
		Rows:    [][]string{{"the", "400"}, {"a|b", "3"}},
	})
	page.AddChart(&model.ChartSpec{
		Kind:   model.ChartPie,
		Title:  "Part of Speech Proportion of General Corpus",
		Series: []model.Series{{Name: "General", Labels: []string{"NN", "DT", "XX"}, Values: []float64{40.5, 30, 0}}},
	})
	page.AddChart(&model.ChartSpec{
		Kind:        model.ChartGroupedBar,
		Title:       "Word Lengths Histograms",
		XTitle:      "Word Lengths",
		YTickSuffix: "%",
		Series: []model.Series{
			{Name: "General", Labels: []string{"1", "3"}, Values: []float64{10, 90}},
			{Name: "History", Labels: []string{"3"}, Values: []float64{100}},
		},
	})
	page.AddImage(&model.Image{Domain: model.DomainGeneral, Caption: "General", Path: "/data/wordcloud/General.png"})
	page.AddHeading(3, "Empty Section")
	page.AddParse(&model.Parse{
		Sentence: "Rome fell.",
		Backend:  "prose",
		Tokens:   []model.Token{{Index: 1, Text: "Rome", Tag: "NNP", Entity: "GPE"}, {Index: 2, Text: "fell", Tag: "VBD"}},
		Entities: []model.Entity{{Text: "Rome", Label: "GPE"}},
	})
	return page
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes every block", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewSimpleWriter(&buf).Write(createTestPage())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("expected %d bytes reported, got %d", buf.Len(), n)
		}

		output := buf.String()
		for _, want := range []string{
			"WORD-LEVEL ANALYSIS",
			"BASIC INFORMATION",
			"[!] Please select at least one field!",
			"Chart (pie)",
			"Word Lengths",
			"Image: General (/data/wordcloud/General.png)",
			"[+] Rome (GPE)",
			"Empty Section",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("chart values carry the tick suffix", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestPage()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "90%") {
			t.Error("expected percentage values")
		}
	})

	t.Run("hides empty sections", func(t *testing.T) {
		t.Parallel()

		page := model.NewPage("intro", "Introduction", model.DefaultSelection())
		page.AddHeading(2, "Nothing Here")
		page.AddHeading(2, "Something")
		page.AddText("content")

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithShowEmpty(false)).Write(page); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()
		if strings.Contains(output, "NOTHING HERE") {
			t.Error("expected empty section to be hidden")
		}
		if !strings.Contains(output, "SOMETHING") {
			t.Error("expected section with content")
		}
	})

	t.Run("verbose prints the selection", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(createTestPage()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "word:") || !strings.Contains(buf.String(), "trapped") {
			t.Error("expected selection values in verbose output")
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact output round trips", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestPage()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Error("expected compact single-line output")
		}

		var got model.Page
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Name != "word" || len(got.Blocks) != len(createTestPage().Blocks) {
			t.Errorf("unexpected page: %+v", got)
		}
		if strings.Contains(buf.String(), "/data/wordcloud") {
			t.Error("expected local image paths to stay private")
		}
	})

	t.Run("pretty print", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestPage()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"name\": \"word\"") {
			t.Error("expected indented output")
		}
	})

	t.Run("multiple pages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WritePages(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(buf.String()) != "[]" {
			t.Errorf("expected empty array, got %q", buf.String())
		}
	})

	t.Run("full report wrapper", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewFullJSONWriter(&buf, "v1.2.3").Write(createTestPage()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got JSONReport
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Version != "v1.2.3" {
			t.Errorf("expected version v1.2.3, got %q", got.Version)
		}
		if got.Charts != 2 {
			t.Errorf("expected 2 charts, got %d", got.Charts)
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes every block", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestPage()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Word-level Analysis",
			"## Basic Information",
			"### Empty Section",
			"[!WARNING]",
			"```mermaid",
			"pie showData",
			`a\|b`,
			"![General](/data/wordcloud/General.png)",
			"- Rome (GPE)",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
		if strings.Contains(output, `"XX"`) {
			t.Error("expected zero slices to be left out of the pie chart")
		}
	})

	t.Run("chart and image links", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf,
			WithChartLinks(func(i int, _ *model.ChartSpec) string {
				if i == 1 {
					return "charts/word-1.png"
				}
				return ""
			}),
			WithImageLinks(func(img *model.Image) string { return "wordcloud/" + img.Domain.String() + ".png" }),
		)
		if _, err := w.Write(createTestPage()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "![Word Lengths Histograms](charts/word-1.png)") {
			t.Error("expected chart image link")
		}
		if strings.Contains(output, "charts/word-0.png") {
			t.Error("expected pie chart without link")
		}
		if !strings.Contains(output, "![General](wordcloud/General.png)") {
			t.Error("expected rewritten image link")
		}
	})
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format Format
		want   string
		ext    string
	}{
		{FormatText, "*report.SimpleWriter", ".txt"},
		{FormatJSON, "*report.JSONWriter", ".json"},
		{FormatMarkdown, "*report.MarkdownWriter", ".md"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()

			w, err := NewWriter(tt.format, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := typeName(w); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
			if tt.format.Extension() != tt.ext {
				t.Errorf("expected extension %s, got %s", tt.ext, tt.format.Extension())
			}
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		if _, err := NewWriter("yaml", &bytes.Buffer{}); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("expected ErrUnknownFormat, got %v", err)
		}
	})
}

// failingWriter is a Writer that always fails.
type failingWriter struct{}

func (failingWriter) Write(*model.Page) (int, error) { return 0, errors.New("disk full") }

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var text, js bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))
		n, err := mw.Write(createTestPage())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != text.Len()+js.Len() {
			t.Errorf("expected %d bytes, got %d", text.Len()+js.Len(), n)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var after bytes.Buffer
		mw := NewMultiWriter(failingWriter{}, NewSimpleWriter(&after))
		if _, err := mw.Write(createTestPage()); err == nil {
			t.Error("expected error")
		}
		if after.Len() != 0 {
			t.Error("expected later writers to be skipped")
		}
	})
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
