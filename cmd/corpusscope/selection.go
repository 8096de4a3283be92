package main

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nao1215/corpusscope/internal/model"
)

// selectionFlag maps a CLI flag onto a selection query parameter.
type selectionFlag struct {
	flag  string
	param string
	usage string
}

var stringSelectionFlags = []selectionFlag{
	{"category", model.ParamCategory, "Feature category name or code (overview)"},
	{"feature", model.ParamFeature, "Feature code or definition (overview)"},
	{"word", model.ParamWord, "Search word (word page)"},
	{"pos", model.ParamPOS, "Penn Treebank tag whose words are charted (word page)"},
	{"term", model.ParamTerm, "Collocation search term (collocation page)"},
	{"field-a", model.ParamFieldA, "First field (collocation page)"},
	{"field-b", model.ParamFieldB, "Second field (collocation page)"},
	{"field", model.ParamSentenceField, "Field whose books are searched (sentence page)"},
	{"search", model.ParamSentenceSearch, "Sentence search text (sentence page)"},
}

var intSelectionFlags = []selectionFlag{
	{"top-n", model.ParamTopN, "Number of most frequent words (word page)"},
	{"cumulative-n", model.ParamCumulativeN, "Number of words in the cumulative graph (word page)"},
	{"pos-count", model.ParamPOSCount, "Number of words per part of speech (word page)"},
	{"phrase-length", model.ParamPhraseLength, "Collocation phrase length (collocation page)"},
	{"collocation-top", model.ParamCollocationTop, "Number of collocations shown (collocation page)"},
	{"index", model.ParamSentenceIndex, "Index of the matching sentence to analyze (sentence page)"},
}

// addSelectionFlags registers the widget flags of all pages.
func addSelectionFlags(flags *pflag.FlagSet) {
	flags.StringSlice("domain", nil, "Fields to compare, comma separated (overview, word page)")
	flags.StringArray("book", nil, "Book to search, repeatable (sentence page)")
	for _, f := range stringSelectionFlags {
		flags.String(f.flag, "", f.usage)
	}
	for _, f := range intSelectionFlags {
		flags.Int(f.flag, 0, f.usage)
	}
}

// selectionFromFlags builds a selection from the flags the user set.
// Unset flags keep their defaults; "--domain=" selects no field.
func selectionFromFlags(cmd *cobra.Command) (model.Selection, error) {
	flags := cmd.Flags()
	v := url.Values{}

	if flags.Changed("domain") {
		domains, err := flags.GetStringSlice("domain")
		if err != nil {
			return model.Selection{}, err
		}
		v[model.ParamDomain] = append([]string{""}, domains...)
	}
	if flags.Changed("book") {
		books, err := flags.GetStringArray("book")
		if err != nil {
			return model.Selection{}, err
		}
		v[model.ParamBook] = append([]string{""}, books...)
	}
	for _, f := range stringSelectionFlags {
		if !flags.Changed(f.flag) {
			continue
		}
		s, err := flags.GetString(f.flag)
		if err != nil {
			return model.Selection{}, err
		}
		v.Set(f.param, s)
	}
	for _, f := range intSelectionFlags {
		if !flags.Changed(f.flag) {
			continue
		}
		n, err := flags.GetInt(f.flag)
		if err != nil {
			return model.Selection{}, err
		}
		v.Set(f.param, strconv.Itoa(n))
	}
	return model.ParseSelection(v)
}
