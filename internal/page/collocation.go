package page

import (
	"context"
	"fmt"

	"github.com/nao1215/corpusscope/internal/analysis"
	"github.com/nao1215/corpusscope/internal/model"
	"github.com/nao1215/corpusscope/internal/pipeline"
)

// collocation lists the phrases containing a term in two fields.
type collocation struct {
	r     *Renderer
	sel   model.Selection
	valid bool
}

func buildCollocation(r *Renderer, sel model.Selection) []pipeline.Step {
	c := &collocation{r: r, sel: sel}
	return []pipeline.Step{
		section{name: "collocation_search", do: c.validate},
		section{name: "field_a", do: func(ctx context.Context, p *model.Page) error {
			return c.field(ctx, p, "A", sel.FieldA)
		}},
		section{name: "field_b", do: func(ctx context.Context, p *model.Page) error {
			return c.field(ctx, p, "B", sel.FieldB)
		}},
	}
}

// validate rejects non-alphabetic terms before any query runs.
// An empty term renders nothing.
func (c *collocation) validate(_ context.Context, p *model.Page) error {
	if c.sel.Term == "" {
		return nil
	}
	if !analysis.IsAlpha(c.sel.Term) {
		p.AddNotice(model.NoticeWarning, MsgOnlyLetters)
		return nil
	}
	p.AddText(fmt.Sprintf("Collocations of %q with phrase length %d (top %d).",
		c.sel.Term, c.sel.PhraseLength, c.sel.CollocationTop))
	c.valid = true
	return nil
}

func (c *collocation) field(ctx context.Context, p *model.Page, slot string, d model.Domain) error {
	if !c.valid {
		return nil
	}
	if c.r.deps.Database == nil {
		return fmt.Errorf("%w: no database configured", model.ErrArtifactMissing)
	}
	p.AddHeading(2, fmt.Sprintf("Field %s: %s", slot, d))

	grams, err := c.r.deps.Database.NGrams(ctx, d, c.sel.PhraseLength)
	if err != nil {
		return err
	}
	top := analysis.TopCollocations(grams, c.sel.Term, c.sel.CollocationTop)
	if len(top) == 0 {
		p.AddNotice(model.NoticeError, MsgNoCollocations)
		return nil
	}

	s := model.Series{Name: d.String()}
	for _, g := range analysis.Ascending(top) {
		s.Labels = append(s.Labels, g.Phrase)
		s.Values = append(s.Values, float64(g.Frequency))
	}
	p.AddChart(&model.ChartSpec{
		Kind:   model.ChartHBar,
		Title:  "Chart of Field " + slot,
		XTitle: "Number",
		YTitle: "Word",
		Series: []model.Series{s},
	})
	return nil
}
