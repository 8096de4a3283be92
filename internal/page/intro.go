package page

import (
	"context"
	"strings"

	"github.com/nao1215/corpusscope/internal/model"
	"github.com/nao1215/corpusscope/internal/pipeline"
)

const introSummary = "corpusscope compares domain-specific corpora at the level of word, " +
	"collocation and sentence. It reports the type, the token and the TTR (type-token ratio) " +
	"of each corpus, word frequencies, the part-of-speech proportion of the words, word " +
	"lengths, cumulative frequencies and word clouds, the collocations of a search word, " +
	"and the entities, tags and dependency parse of a chosen sentence."

const introUsage = "Every view reads precomputed artifacts; nothing is recalculated. " +
	"Pick a page from the sidebar and adjust its fields to compare the corpora side by side."

func buildIntro(_ *Renderer, _ model.Selection) []pipeline.Step {
	return []pipeline.Step{
		section{name: "introduction", do: func(_ context.Context, p *model.Page) error {
			p.AddHeading(2, "Visualizing and Analyzing Domain-Specific Corpora")
			p.AddText(introSummary)
			p.AddText(introUsage)
			return nil
		}},
		section{name: "features", do: func(_ context.Context, p *model.Page) error {
			subject := make([]string, 0, len(model.SentenceDomains()))
			for _, d := range model.SentenceDomains() {
				subject = append(subject, d.DisplayName())
			}

			p.AddHeading(3, "Features")
			p.AddTable(&model.Table{
				Header: []string{"#", "Feature"},
				Rows: [][]string{
					{"1", "A corpus of over 80 textbooks in " + itoa(len(subject)) + " domains (" +
						strings.Join(subject, ", ") + ") and the BNC Baby reference corpus"},
					{"2", "A custom combination of corpora for contrastive analysis"},
					{"3", "Analysis of the selected texts at the level of word, collocation and sentence"},
				},
			})
			return nil
		}},
	}
}
