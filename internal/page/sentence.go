package page

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/corpusscope/internal/analysis"
	"github.com/nao1215/corpusscope/internal/model"
	"github.com/nao1215/corpusscope/internal/nlp"
	"github.com/nao1215/corpusscope/internal/pipeline"
)

const msgParsingDisabled = "Sentence parsing is disabled."

// sentence searches the sentences of a field's books and analyzes one.
type sentence struct {
	r     *Renderer
	sel   model.Selection
	field model.Domain

	books   []string
	matches []model.SentenceRecord
}

func buildSentence(r *Renderer, sel model.Selection) []pipeline.Step {
	s := &sentence{r: r, sel: sel, field: sel.SentenceField}
	if s.field == "" || s.field == model.DomainGeneral {
		s.field = model.DefaultSentenceField
	}
	return []pipeline.Step{
		section{name: "books", do: s.selectBooks},
		section{name: "sentence_totals", do: s.totals},
		section{name: "sentence_search", do: s.search},
		section{name: "sentence_detail", do: s.detail},
	}
}

func (s *sentence) selectBooks(_ context.Context, p *model.Page) error {
	available, err := s.r.deps.Artifacts.Books(s.field)
	if err != nil {
		return err
	}

	switch {
	case s.sel.Books != nil:
		s.books = s.sel.Books
	case len(available) > 0:
		s.books = []string{available[0].Name}
	}
	p.Selection.SentenceField = s.field
	if len(s.books) == 0 {
		p.AddNotice(model.NoticeInfo, MsgSelectBook)
		return nil
	}
	p.Selection.Books = s.books

	names := make([]string, len(available))
	for i, b := range available {
		names[i] = b.Name
	}
	p.AddText(fmt.Sprintf("Field: %s. Books: %s.", s.field, strings.Join(s.books, "; ")))
	p.AddTable(&model.Table{Caption: "Available books", Header: []string{"Book"}, Rows: column(names)})
	return nil
}

func (s *sentence) totals(_ context.Context, p *model.Page) error {
	if len(s.books) == 0 {
		return nil
	}
	p.AddHeading(2, "Basic Information of "+s.field.String())

	totals, err := s.r.deps.Artifacts.SentenceTotals(s.field)
	if err != nil {
		return err
	}
	if totals.Values == nil {
		p.AddNotice(model.NoticeInfo, fmt.Sprintf("No sentence totals recorded for %s.", s.field))
		return nil
	}
	p.AddTable(&model.Table{Header: totals.Columns, Rows: [][]string{totals.Values}})
	return nil
}

func (s *sentence) search(_ context.Context, p *model.Page) error {
	if len(s.books) == 0 {
		return nil
	}
	p.AddHeading(2, "Sentences")

	recs, err := s.r.deps.Artifacts.Sentences(s.field, s.books)
	if err != nil {
		return err
	}
	s.matches = analysis.SearchSentences(recs, s.sel.SentenceSearch)
	if len(s.matches) == 0 {
		p.AddNotice(model.NoticeInfo, fmt.Sprintf("No sentences contain %q.", s.sel.SentenceSearch))
		return nil
	}

	t := &model.Table{
		Caption: fmt.Sprintf("%d sentences containing %q", len(s.matches), s.sel.SentenceSearch),
		Header:  []string{"Index", "Sentence", "Book"},
	}
	for i, m := range s.matches {
		t.Rows = append(t.Rows, []string{itoa(i), m.Sentence, m.Book})
	}
	p.AddTable(t)
	return nil
}

func (s *sentence) detail(ctx context.Context, p *model.Page) error {
	idx := s.sel.SentenceIndex
	if len(s.books) == 0 || idx == model.NoSentenceIndex {
		return nil
	}
	if idx < 0 || idx >= len(s.matches) {
		p.AddNotice(model.NoticeWarning,
			fmt.Sprintf("Sentence index %d is out of range: %d sentences match.", idx, len(s.matches)))
		return nil
	}

	rec := s.matches[idx]
	p.AddHeading(2, fmt.Sprintf("Sentence %d", idx))
	p.AddText(rec.Sentence)

	tagged, err := nlp.ParseTagged(rec.Tagged)
	if err != nil {
		p.AddNotice(model.NoticeWarning, "The stored tagging of this sentence could not be read.")
	} else if len(tagged) > 0 {
		t := &model.Table{Caption: "Stored part-of-speech tags", Header: []string{"Token", "POS"}}
		for _, tw := range tagged {
			t.Rows = append(t.Rows, []string{tw.Word, tw.Tag})
		}
		p.AddTable(t)
	}

	if s.r.deps.Parser == nil {
		p.AddNotice(model.NoticeInfo, msgParsingDisabled)
		return nil
	}
	parse, err := s.r.deps.Parser.Parse(ctx, rec.Sentence)
	switch {
	case errors.Is(err, nlp.ErrDisabled):
		p.AddNotice(model.NoticeInfo, msgParsingDisabled)
	case err != nil:
		s.r.logger.Warn("sentence parse failed", "parser", s.r.deps.Parser.Name(), "error", err)
		p.AddNotice(model.NoticeWarning, fmt.Sprintf("The sentence could not be parsed: %v", err))
	default:
		p.AddParse(parse)
	}
	return nil
}

func column(values []string) [][]string {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{v}
	}
	return rows
}
