package page

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/nao1215/corpusscope/internal/artifact"
	"github.com/nao1215/corpusscope/internal/database"
	"github.com/nao1215/corpusscope/internal/model"
	"github.com/nao1215/corpusscope/internal/nlp"
	"github.com/nao1215/corpusscope/internal/pipeline"
)

// Page names.
const (
	NameIntro       = "intro"
	NameOverview    = "overview"
	NameWord        = "word"
	NameCollocation = "collocation"
	NameSentence    = "sentence"
)

// Inline messages.
const (
	MsgSelectField     = "Please select at least one field!"
	MsgSelectBook      = "Please select a book!"
	MsgOnlyLetters     = "Your search should contain only letters!"
	MsgNoCollocations  = "No collocations found. Try another word!"
	msgWordNotInCorpus = "%s is not in the corpora. Please try another word!"
)

// Info describes a page.
type Info struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

type builder func(r *Renderer, sel model.Selection) []pipeline.Step

type definition struct {
	Info
	build builder
}

var definitions = []definition{
	{Info{NameIntro, "Introduction"}, buildIntro},
	{Info{NameOverview, "Overview"}, buildOverview},
	{Info{NameWord, "Word-level Analysis"}, buildWord},
	{Info{NameCollocation, "Collocation"}, buildCollocation},
	{Info{NameSentence, "Sentence-level Analysis"}, buildSentence},
}

// Pages lists the pages in sidebar order.
func Pages() []Info {
	out := make([]Info, len(definitions))
	for i, d := range definitions {
		out[i] = d.Info
	}
	return out
}

// Lookup returns the page called name.
func Lookup(name string) (Info, error) {
	d, err := lookup(name)
	if err != nil {
		return Info{}, err
	}
	return d.Info, nil
}

func lookup(name string) (definition, error) {
	for _, d := range definitions {
		if d.Name == name {
			return d, nil
		}
	}
	return definition{}, fmt.Errorf("%w: %q", model.ErrUnknownPage, name)
}

// Deps are the shared, read-only resources pages render from.
type Deps struct {
	Artifacts *artifact.Store
	Database  *database.Store
	// Parser analyzes the chosen sentence. Nil disables parsing.
	Parser nlp.Parser
	Logger *slog.Logger
	// ContinueOnError renders the remaining sections after one fails and
	// shows the failure as an error notice.
	ContinueOnError bool
}

// Renderer builds page pipelines over a set of dependencies.
// It is safe for concurrent use.
type Renderer struct {
	deps   Deps
	logger *slog.Logger
}

// NewRenderer creates a Renderer.
func NewRenderer(deps Deps) *Renderer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{deps: deps, logger: logger}
}

// Pipeline builds the pipeline and empty page of one render.
func (r *Renderer) Pipeline(name string, sel model.Selection) (*pipeline.Pipeline, *model.Page, error) {
	d, err := lookup(name)
	if err != nil {
		return nil, nil, err
	}
	p := pipeline.New(
		pipeline.WithLogger(r.logger),
		pipeline.WithContinueOnError(r.deps.ContinueOnError),
	)
	p.AddSteps(d.build(r, sel)...)
	return p, model.NewPage(d.Name, d.Title, sel), nil
}

// Render renders one page. On error the returned page holds the blocks
// rendered before the failing section, or is nil for an unknown page.
func (r *Renderer) Render(ctx context.Context, name string, sel model.Selection) (*model.Page, error) {
	p, page, err := r.Pipeline(name, sel)
	if err != nil {
		return nil, err
	}
	if err := p.Execute(ctx, page); err != nil {
		return page, fmt.Errorf("render %s: %w", name, err)
	}
	return page, nil
}

// Factory adapts the renderer to batch processing.
func (r *Renderer) Factory() pipeline.Factory {
	return func(job pipeline.Job) (*pipeline.Pipeline, *model.Page, error) {
		return r.Pipeline(job.Page, job.Selection)
	}
}

// ExportJobs lists the renders of a full export: the introduction, the
// overview, and the word, collocation and sentence pages once per domain.
// base supplies every widget value that is not the exported domain.
func ExportJobs(base model.Selection) []pipeline.Job {
	jobs := []pipeline.Job{
		{Key: NameIntro, Page: NameIntro, Selection: base},
		{Key: NameOverview, Page: NameOverview, Selection: base},
	}
	for _, d := range model.AllDomains() {
		word := base
		word.Domains = []model.Domain{d}
		jobs = append(jobs, pipeline.Job{Key: NameWord + "-" + d.String(), Page: NameWord, Selection: word})

		coll := base
		coll.FieldA = d
		jobs = append(jobs, pipeline.Job{Key: NameCollocation + "-" + d.String(), Page: NameCollocation, Selection: coll})
	}
	for _, d := range model.SentenceDomains() {
		sent := base
		sent.SentenceField = d
		sent.Books = nil
		jobs = append(jobs, pipeline.Job{Key: NameSentence + "-" + d.String(), Page: NameSentence, Selection: sent})
	}
	return jobs
}

// section is a pipeline step backed by a function.
type section struct {
	name string
	do   func(ctx context.Context, p *model.Page) error
}

func (s section) Name() string { return s.name }

func (s section) Do(ctx context.Context, p *model.Page) error { return s.do(ctx, p) }

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
