package page

import (
	"context"
	"fmt"

	"github.com/nao1215/corpusscope/internal/model"
	"github.com/nao1215/corpusscope/internal/pipeline"
)

// overview compares one feature score across corpora.
type overview struct {
	r   *Renderer
	sel model.Selection

	table *model.FeatureTable
	code  string
}

func buildOverview(r *Renderer, sel model.Selection) []pipeline.Step {
	o := &overview{r: r, sel: sel}
	return []pipeline.Step{
		section{name: "feature_table", do: o.loadFeatures},
		section{name: "feature_chart", do: o.chart},
		section{name: "feature_definitions", do: o.definitions},
	}
}

func (o *overview) loadFeatures(ctx context.Context, p *model.Page) error {
	category, err := model.LookupFeatureCategory(o.sel.FeatureCategory)
	if err != nil {
		p.AddNotice(model.NoticeWarning, fmt.Sprintf("Unknown feature category %q.", o.sel.FeatureCategory))
		return nil
	}
	if o.r.deps.Database == nil {
		return fmt.Errorf("%w: no database configured", model.ErrArtifactMissing)
	}

	table, err := o.r.deps.Database.FeatureTable(ctx, category)
	if err != nil {
		return err
	}
	code, err := table.Resolve(o.sel.Feature)
	if err != nil {
		p.AddNotice(model.NoticeWarning, fmt.Sprintf("Unknown feature %q in %s.", o.sel.Feature, category.Name))
		return nil
	}

	o.table, o.code = table, code
	p.AddHeading(2, category.Name)
	p.AddText(fmt.Sprintf("%s: %s", code, table.Definitions[code]))
	return nil
}

func (o *overview) chart(_ context.Context, p *model.Page) error {
	if o.table == nil {
		return nil
	}
	domains := o.sel.DomainsOr(model.AllDomains())
	p.Selection.Domains = domains
	if len(domains) == 0 {
		p.AddNotice(model.NoticeWarning, MsgSelectField)
		return nil
	}

	series := model.Series{Name: o.code}
	var missing []string
	for _, d := range domains {
		score, ok := o.table.Score(d, o.code)
		if !ok {
			missing = append(missing, d.String())
			continue
		}
		series.Labels = append(series.Labels, d.String())
		series.Values = append(series.Values, score)
	}
	if len(missing) > 0 {
		p.AddNotice(model.NoticeWarning, fmt.Sprintf("No %s score for %v.", o.code, missing))
	}
	if series.Len() == 0 {
		return nil
	}

	p.AddChart(&model.ChartSpec{
		Kind:   model.ChartBar,
		Title:  o.table.Definitions[o.code],
		XTitle: "Field",
		YTitle: o.code,
		Series: []model.Series{series},
	})
	return nil
}

func (o *overview) definitions(_ context.Context, p *model.Page) error {
	if o.table == nil {
		return nil
	}
	t := &model.Table{Caption: o.table.Category.Name, Header: []string{"Feature", "Definition"}}
	for _, code := range o.table.Codes {
		t.Rows = append(t.Rows, []string{code, o.table.Definitions[code]})
	}
	p.AddTable(t)
	return nil
}
