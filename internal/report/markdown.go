package report

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/corpusscope/internal/model"
)

// MarkdownWriter outputs pages in Markdown format.
// Pie charts become mermaid pie charts; other charts become tables, plus an
// image link when a chart link function is configured.
type MarkdownWriter struct {
	baseWriter

	chartLink func(index int, c *model.ChartSpec) string
	imageLink func(img *model.Image) string
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithChartLinks embeds a rendered image for each chart. link returns the
// image location of the chart at index in page.Charts(), or "" to skip it.
func WithChartLinks(link func(index int, c *model.ChartSpec) string) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.chartLink = link
	}
}

// WithImageLinks rewrites image locations, e.g. to paths relative to an
// export directory. By default the local artifact path is used.
func WithImageLinks(link func(img *model.Image) string) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.imageLink = link
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the page in Markdown format.
func (w *MarkdownWriter) Write(page *model.Page) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(page.Title)
	md.PlainText("")

	chartIndex := 0
	for _, b := range page.Blocks {
		switch b.Kind {
		case model.BlockHeading:
			w.writeHeading(md, b)
		case model.BlockText:
			md.PlainText(b.Text)
			md.PlainText("")
		case model.BlockNotice:
			w.writeNotice(md, b)
		case model.BlockTable:
			w.writeTable(md, b.Table)
		case model.BlockChart:
			w.writeChart(md, chartIndex, b.Chart)
			chartIndex++
		case model.BlockImage:
			w.writeImage(md, b.Image)
		case model.BlockParse:
			w.writeParse(md, b.Parse)
		}
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeading(md *markdown.Markdown, b model.Block) {
	switch b.Level {
	case 1:
		md.H1(b.Text)
	case 2:
		md.H2(b.Text)
	case 3:
		md.H3(b.Text)
	default:
		md.H4(b.Text)
	}
	md.PlainText("")
}

// writeNotice maps notice levels onto GitHub alerts.
func (w *MarkdownWriter) writeNotice(md *markdown.Markdown, b model.Block) {
	switch b.Notice {
	case model.NoticeError:
		md.Cautionf("%s", b.Text)
	case model.NoticeWarning:
		md.Warningf("%s", b.Text)
	case model.NoticeSuccess:
		md.Tip(b.Text)
	default:
		md.Note(b.Text)
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeTable(md *markdown.Markdown, t *model.Table) {
	if t.Caption != "" {
		md.PlainTextf("**%s**", escapeCell(t.Caption))
		md.PlainText("")
	}
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = escapeCell(cell)
		}
	}
	md.Table(markdown.TableSet{Header: t.Header, Rows: rows})
	md.PlainText("")
}

func (w *MarkdownWriter) writeChart(md *markdown.Markdown, index int, c *model.ChartSpec) {
	if w.chartLink != nil {
		if link := w.chartLink(index, c); link != "" {
			md.PlainTextf("![%s](%s)", c.Title, link)
			md.PlainText("")
		}
	}
	if c.Kind == model.ChartPie && len(c.Series) > 0 {
		w.writePieChart(md, c)
		return
	}
	w.writeTable(md, chartTable(c))
}

// writePieChart writes a mermaid pie chart of the first series.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, c *model.ChartSpec) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle(c.Title),
		piechart.WithShowData(true),
	)

	s := c.Series[0]
	for i := 0; i < s.Len(); i++ {
		if s.Values[i] > 0 {
			chart.LabelAndFloatValue(s.Labels[i], s.Values[i])
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeImage(md *markdown.Markdown, img *model.Image) {
	link := img.Path
	if w.imageLink != nil {
		link = w.imageLink(img)
	}
	if link == "" {
		return
	}
	md.PlainTextf("![%s](%s)", img.Caption, link)
	md.PlainText("")
}

func (w *MarkdownWriter) writeParse(md *markdown.Markdown, p *model.Parse) {
	w.writeTable(md, parseTable(p))
	if len(p.Entities) == 0 {
		return
	}
	entities := make([]string, len(p.Entities))
	for i, e := range p.Entities {
		entities[i] = e.Text + " (" + e.Label + ")"
	}
	md.BulletList(entities...)
	md.PlainText("")
}

// writeFooter writes the page footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Rendered by corpusscope*")
}

// escapeCell keeps pipes and newlines from breaking table rows.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
