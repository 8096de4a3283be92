package page

import (
	"context"
	"fmt"

	"github.com/nao1215/corpusscope/internal/analysis"
	"github.com/nao1215/corpusscope/internal/model"
	"github.com/nao1215/corpusscope/internal/pipeline"
)

// word compares up to three corpora word by word.
type word struct {
	r       *Renderer
	sel     model.Selection
	domains []model.Domain
	capped  bool
}

func buildWord(r *Renderer, sel model.Selection) []pipeline.Step {
	w := &word{r: r, sel: sel, domains: sel.DomainsOr(model.DefaultWordDomains)}
	if len(w.domains) > model.MaxCompareDomains {
		w.domains = w.domains[:model.MaxCompareDomains]
		w.capped = true
	}
	return []pipeline.Step{
		section{name: "basic_information", do: w.basicInformation},
		section{name: "search_word", do: w.searchWord},
		section{name: "word_frequency_graphs", do: w.frequencyGraphs},
		section{name: "word_frequency_lists", do: w.frequencyLists},
		section{name: "cumulative_frequency", do: w.cumulative},
		section{name: "pos_proportion", do: w.posProportion},
		section{name: "words_by_pos", do: w.wordsByPOS},
		section{name: "word_cloud", do: w.wordCloud},
		section{name: "word_lengths", do: w.wordLengths},
		section{name: "pos_full_names", do: w.posFullNames},
	}
}

// selected reports whether any domain is selected, adding the notice if not.
func (w *word) selected(p *model.Page) bool {
	if len(w.domains) == 0 {
		p.AddNotice(model.NoticeWarning, MsgSelectField)
		return false
	}
	return true
}

func (w *word) basicInformation(_ context.Context, p *model.Page) error {
	p.Selection.Domains = append([]model.Domain{}, w.domains...)
	if w.capped {
		p.AddNotice(model.NoticeInfo, fmt.Sprintf("Only the first %d fields are compared.", model.MaxCompareDomains))
	}
	p.AddHeading(2, "Basic Information")
	if !w.selected(p) {
		return nil
	}

	all, err := w.r.deps.Artifacts.BasicInfo()
	if err != nil {
		return err
	}
	info := analysis.FilterDomains(all, w.domains)

	t := &model.Table{Header: []string{"Field", "Type", "Token", "TTR"}}
	for _, i := range info {
		t.Rows = append(t.Rows, []string{i.Domain.String(), itoa(i.Type), itoa(i.Token), ftoa(i.TTR)})
	}
	p.AddTable(t)
	if len(info) == 0 {
		return nil
	}

	grouped := &model.ChartSpec{
		Kind:   model.ChartGroupedBar,
		Title:  "Type, Token and TTR of Each Corpus",
		YTitle: "Number",
	}
	metrics := []string{"Type", "Token", "TTR"}
	for _, i := range info {
		grouped.Series = append(grouped.Series, model.Series{
			Name:   i.Domain.String(),
			Labels: metrics,
			Values: []float64{float64(i.Type), float64(i.Token), i.TTR},
		})
	}
	p.AddChart(grouped)

	for _, m := range []struct {
		name  string
		axis  string
		value func(model.BasicInfo) float64
	}{
		{"Type", "Number", func(i model.BasicInfo) float64 { return float64(i.Type) }},
		{"Token", "Number", func(i model.BasicInfo) float64 { return float64(i.Token) }},
		{"TTR", "Value", func(i model.BasicInfo) float64 { return i.TTR }},
	} {
		s := model.Series{Name: m.name}
		for _, i := range info {
			s.Labels = append(s.Labels, i.Domain.String())
			s.Values = append(s.Values, m.value(i))
		}
		p.AddChart(&model.ChartSpec{
			Kind:   model.ChartBar,
			Title:  m.name + " of Each Corpus",
			XTitle: "Field",
			YTitle: m.axis,
			Series: []model.Series{s},
		})
	}
	return nil
}

func (w *word) searchWord(_ context.Context, p *model.Page) error {
	p.AddHeading(2, "Information about the Search Word")
	if !w.selected(p) || w.sel.Word == "" {
		return nil
	}

	var found []model.WordAttribute
	for _, d := range w.domains {
		attrs, err := w.r.deps.Artifacts.WordAttributes(d)
		if err != nil {
			return err
		}
		found = append(found, analysis.LookupWord(attrs, w.sel.Word)...)
	}
	if len(found) == 0 {
		p.AddNotice(model.NoticeError, fmt.Sprintf(msgWordNotInCorpus, w.sel.Word))
		return nil
	}

	// One series per POS tag, stacked per field.
	var series []model.Series
	index := make(map[string]int)
	t := &model.Table{Header: []string{"Field", "Part of Speech", "Count"}}
	for _, a := range found {
		i, ok := index[a.POSTag]
		if !ok {
			i = len(series)
			index[a.POSTag] = i
			series = append(series, model.Series{Name: a.POSTag})
		}
		series[i].Labels = append(series[i].Labels, a.Domain.String())
		series[i].Values = append(series[i].Values, float64(a.Count))
		t.Rows = append(t.Rows, []string{a.Domain.String(), a.POSTag, itoa(a.Count)})
	}

	p.AddChart(&model.ChartSpec{
		Kind:   model.ChartStackedHBar,
		Title:  fmt.Sprintf("Word Frequency and POS Proportion of %q", w.sel.Word),
		XTitle: "Count",
		YTitle: "Field",
		Series: series,
	})
	p.AddTable(t)
	return nil
}

func (w *word) frequencyGraphs(_ context.Context, p *model.Page) error {
	p.AddHeading(2, "Word Frequency & Part of Speech")
	p.AddHeading(3, "Word Frequency Graphs")
	if !w.selected(p) {
		return nil
	}

	for _, d := range w.domains {
		freqs, err := w.r.deps.Artifacts.WordFrequencies(d)
		if err != nil {
			return err
		}
		top := analysis.Ascending(analysis.TopWords(freqs, w.sel.TopN))
		s := model.Series{Name: d.String()}
		for _, f := range top {
			s.Labels = append(s.Labels, f.Word)
			s.Values = append(s.Values, float64(f.Freq))
		}
		p.AddChart(&model.ChartSpec{
			Kind:   model.ChartHBar,
			Title:  fmt.Sprintf("The First %d Words of %s Corpus", w.sel.TopN, d),
			XTitle: "Number",
			YTitle: "Word",
			Series: []model.Series{s},
		})
	}
	return nil
}

func (w *word) frequencyLists(_ context.Context, p *model.Page) error {
	p.AddHeading(3, "Word Frequency Lists")
	if !w.selected(p) {
		return nil
	}

	for _, d := range w.domains {
		freqs, err := w.r.deps.Artifacts.WordFrequencies(d)
		if err != nil {
			return err
		}
		t := &model.Table{Caption: d.String(), Header: []string{"Rank", "Word", "Freq", "Word Length"}}
		for i, f := range analysis.RankWords(freqs) {
			t.Rows = append(t.Rows, []string{itoa(i + 1), f.Word, itoa(f.Freq), itoa(f.Length)})
		}
		p.AddTable(t)
	}
	return nil
}

func (w *word) cumulative(_ context.Context, p *model.Page) error {
	p.AddHeading(3, "Cumulative Word Frequency Graphs")
	if !w.selected(p) {
		return nil
	}

	n := w.sel.CumulativeN
	wordLabels, dtick := analysis.CumulativeTicks(n)
	for _, d := range w.domains {
		rows, err := w.r.deps.Artifacts.CumulativeFrequencies(d)
		if err != nil {
			return err
		}
		s := model.Series{Name: d.String()}
		for i, row := range analysis.Head(rows, n) {
			label := itoa(i + 1)
			if wordLabels {
				label = row.Word
			}
			s.Labels = append(s.Labels, label)
			s.Values = append(s.Values, float64(row.CumulativeFreq))
		}
		p.AddChart(&model.ChartSpec{
			Kind:   model.ChartLine,
			Title:  fmt.Sprintf("Cumulative Word Frequency of the First %d Common Words (%s)", n, d),
			XTitle: "Common Words",
			YTitle: "Cumulative Counts",
			XDTick: dtick,
			Series: []model.Series{s},
		})
	}
	return nil
}

func (w *word) posProportion(_ context.Context, p *model.Page) error {
	p.AddHeading(3, "Part of Speech Proportion")
	if !w.selected(p) {
		return nil
	}

	for _, d := range w.domains {
		props, err := w.r.deps.Artifacts.POSProportions(d)
		if err != nil {
			return err
		}
		s := model.Series{Name: d.String()}
		for _, prop := range props {
			s.Labels = append(s.Labels, prop.Tag)
			s.Values = append(s.Values, prop.Percentage)
		}
		title := fmt.Sprintf("Part of Speech Proportion of %s Corpus", d)
		p.AddChart(&model.ChartSpec{Kind: model.ChartPie, Title: title, Series: []model.Series{s}})
		p.AddChart(&model.ChartSpec{
			Kind:        model.ChartBar,
			Title:       title,
			XTitle:      "Part of Speech",
			YTitle:      "Percentage",
			YTickSuffix: "%",
			Series:      []model.Series{s},
		})
	}
	return nil
}

func (w *word) wordsByPOS(_ context.Context, p *model.Page) error {
	p.AddHeading(3, "Word Frequency Displayed Through Part of Speech")
	if !w.selected(p) {
		return nil
	}

	for _, d := range w.domains {
		attrs, err := w.r.deps.Artifacts.WordAttributes(d)
		if err != nil {
			return err
		}
		top := analysis.WordsByPOS(attrs, w.sel.POS, w.sel.POSCount)
		if len(top) == 0 {
			p.AddNotice(model.NoticeInfo, fmt.Sprintf("No %s words in the %s corpus.", w.sel.POS, d))
			continue
		}
		s := model.Series{Name: d.String()}
		for _, a := range analysis.Ascending(top) {
			s.Labels = append(s.Labels, a.Word)
			s.Values = append(s.Values, float64(a.Count))
		}
		p.AddChart(&model.ChartSpec{
			Kind:   model.ChartHBar,
			Title:  fmt.Sprintf("The First %d Words in %s of %s Corpus", w.sel.POSCount, w.sel.POS, d),
			XTitle: "Count",
			YTitle: "Word",
			Series: []model.Series{s},
		})
	}
	return nil
}

func (w *word) wordCloud(_ context.Context, p *model.Page) error {
	p.AddHeading(2, "Word Cloud")
	if !w.selected(p) {
		return nil
	}

	for _, d := range w.domains {
		path, err := w.r.deps.Artifacts.WordCloudPath(d)
		if err != nil {
			return err
		}
		p.AddImage(&model.Image{Domain: d, Caption: d.String(), Path: path})
	}
	return nil
}

func (w *word) wordLengths(_ context.Context, p *model.Page) error {
	p.AddHeading(2, "Word Lengths")
	if !w.selected(p) {
		return nil
	}

	bars := &model.ChartSpec{
		Kind:   model.ChartGroupedBar,
		Title:  "Word Lengths Bar Chart",
		XTitle: "Word Lengths",
		YTitle: "Count",
	}
	hist := &model.ChartSpec{
		Kind:        model.ChartHistogram,
		Title:       "Word Lengths Histograms",
		XTitle:      "Word Lengths",
		YTitle:      "Percentage",
		YTickSuffix: "%",
	}
	for _, d := range w.domains {
		freqs, err := w.r.deps.Artifacts.WordFrequencies(d)
		if err != nil {
			return err
		}
		counts := model.Series{Name: d.String()}
		for _, c := range analysis.LengthCounts(freqs) {
			counts.Labels = append(counts.Labels, itoa(c.Length))
			counts.Values = append(counts.Values, float64(c.Count))
		}
		shares := model.Series{Name: d.String()}
		for _, s := range analysis.LengthPercentages(freqs) {
			shares.Labels = append(shares.Labels, itoa(s.Length))
			shares.Values = append(shares.Values, s.Percent)
		}
		bars.Series = append(bars.Series, counts)
		hist.Series = append(hist.Series, shares)
	}
	p.AddChart(bars)
	p.AddChart(hist)
	return nil
}

func (w *word) posFullNames(_ context.Context, p *model.Page) error {
	p.AddHeading(2, "The Full Name of Part of Speech")
	names, err := w.r.deps.Artifacts.POSNames()
	if err != nil {
		return err
	}
	t := &model.Table{Header: []string{"#", "Abbreviation", "Full Name"}}
	for i, n := range names {
		t.Rows = append(t.Rows, []string{itoa(i + 1), n.Abbreviation, n.FullName})
	}
	p.AddTable(t)
	return nil
}
