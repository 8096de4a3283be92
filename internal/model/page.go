package model

// BlockKind identifies the content of a Block.
type BlockKind string

// Block kinds.
const (
	BlockHeading BlockKind = "heading"
	BlockText    BlockKind = "text"
	BlockNotice  BlockKind = "notice"
	BlockTable   BlockKind = "table"
	BlockChart   BlockKind = "chart"
	BlockImage   BlockKind = "image"
	BlockParse   BlockKind = "parse"
)

// NoticeLevel is the severity of an inline notice.
type NoticeLevel string

// Notice levels.
const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Page is the rendered output of one page for one Selection.
// Renderers (HTML, JSON, Markdown, text) walk Blocks in order. Pages
// replace defaulted domains and books in Selection with the values they
// actually used.
type Page struct {
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Selection Selection `json:"selection"`
	Blocks    []Block   `json:"blocks"`
}

// Block is one element of a page. Exactly one payload field is set,
// matching Kind.
type Block struct {
	Kind BlockKind `json:"kind"`
	// Level is the heading level (1..3) of heading blocks.
	Level  int         `json:"level,omitempty"`
	Text   string      `json:"text,omitempty"`
	Notice NoticeLevel `json:"notice,omitempty"`
	Table  *Table      `json:"table,omitempty"`
	Chart  *ChartSpec  `json:"chart,omitempty"`
	Image  *Image      `json:"image,omitempty"`
	Parse  *Parse      `json:"parse,omitempty"`
}

// Table is a captioned grid of strings.
type Table struct {
	Caption string     `json:"caption,omitempty"`
	Header  []string   `json:"header"`
	Rows    [][]string `json:"rows"`
}

// Image references an artifact image such as a word cloud.
type Image struct {
	Domain  Domain `json:"domain"`
	Caption string `json:"caption"`
	// Path is the local file path; it is never serialized.
	Path string `json:"-"`
}

// NewPage creates an empty page.
func NewPage(name, title string, sel Selection) *Page {
	return &Page{Name: name, Title: title, Selection: sel, Blocks: []Block{}}
}

// AddHeading appends a heading block.
func (p *Page) AddHeading(level int, text string) {
	p.Blocks = append(p.Blocks, Block{Kind: BlockHeading, Level: level, Text: text})
}

// AddText appends a paragraph.
func (p *Page) AddText(text string) {
	p.Blocks = append(p.Blocks, Block{Kind: BlockText, Text: text})
}

// AddNotice appends an inline notice.
func (p *Page) AddNotice(level NoticeLevel, text string) {
	p.Blocks = append(p.Blocks, Block{Kind: BlockNotice, Notice: level, Text: text})
}

// AddTable appends a table.
func (p *Page) AddTable(t *Table) {
	p.Blocks = append(p.Blocks, Block{Kind: BlockTable, Table: t})
}

// AddChart appends a chart.
func (p *Page) AddChart(c *ChartSpec) {
	p.Blocks = append(p.Blocks, Block{Kind: BlockChart, Chart: c})
}

// AddImage appends an image.
func (p *Page) AddImage(img *Image) {
	p.Blocks = append(p.Blocks, Block{Kind: BlockImage, Image: img})
}

// AddParse appends a sentence parse.
func (p *Page) AddParse(parse *Parse) {
	p.Blocks = append(p.Blocks, Block{Kind: BlockParse, Parse: parse})
}

// Charts returns the chart specs of the page in order.
// The HTTP chart endpoint addresses charts by their index in this slice.
func (p *Page) Charts() []*ChartSpec {
	var out []*ChartSpec
	for _, b := range p.Blocks {
		if b.Kind == BlockChart && b.Chart != nil {
			out = append(out, b.Chart)
		}
	}
	return out
}

// Notices returns the texts of all notices at the given level.
func (p *Page) Notices(level NoticeLevel) []string {
	var out []string
	for _, b := range p.Blocks {
		if b.Kind == BlockNotice && b.Notice == level {
			out = append(out, b.Text)
		}
	}
	return out
}

// Count returns the number of blocks of a kind.
func (p *Page) Count(kind BlockKind) int {
	n := 0
	for _, b := range p.Blocks {
		if b.Kind == kind {
			n++
		}
	}
	return n
}
