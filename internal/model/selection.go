package model

import (
	"net/url"
	"strconv"
	"strings"
)

// Selection defaults and ranges.
const (
	DefaultSearchWord     = "trapped"
	DefaultTopN           = 10
	MinTopN               = 5
	MaxTopN               = 100
	DefaultCumulativeN    = 100
	MinCumulativeN        = 10
	MaxCumulativeN        = 5000
	DefaultPOS            = "NN"
	DefaultPOSCount       = 10
	MinPOSCount           = 10
	MaxPOSCount           = 100
	DefaultPhraseLength   = 2
	MinPhraseLength       = 2
	MaxPhraseLength       = 10
	DefaultCollocationTop = 20
	DefaultSentenceSearch = "word"
	NoSentenceIndex       = -1

	// MaxCompareDomains caps the domains compared side by side on the word page.
	MaxCompareDomains = 3
)

// Default field selections.
var (
	DefaultWordDomains   = []Domain{DomainGeneral, DomainBusiness, DomainHistory}
	DefaultFieldA        = DomainGeneral
	DefaultFieldB        = DomainEconomics
	DefaultSentenceField = DomainBusiness
)

// Query parameter names. The CLI maps its flags onto the same names.
const (
	ParamDomain         = "domain"
	ParamCategory       = "category"
	ParamFeature        = "feature"
	ParamWord           = "word"
	ParamTopN           = "top_n"
	ParamCumulativeN    = "cumulative_n"
	ParamPOS            = "pos"
	ParamPOSCount       = "pos_count"
	ParamTerm           = "term"
	ParamPhraseLength   = "phrase_length"
	ParamCollocationTop = "collocation_top"
	ParamFieldA         = "field_a"
	ParamFieldB         = "field_b"
	ParamSentenceField  = "field"
	ParamBook           = "book"
	ParamSentenceSearch = "search"
	ParamSentenceIndex  = "index"
)

// Selection is the widget state of one interaction.
//
// Domains and Books distinguish "not given" (nil, defaults apply) from
// "explicitly empty" (non-nil, zero length), which pages report as a notice.
type Selection struct {
	Domains         []Domain `json:"domains"`
	FeatureCategory string   `json:"feature_category,omitempty"`
	Feature         string   `json:"feature,omitempty"`
	Word            string   `json:"word"`
	TopN            int      `json:"top_n"`
	CumulativeN     int      `json:"cumulative_n"`
	POS             string   `json:"pos"`
	POSCount        int      `json:"pos_count"`
	Term            string   `json:"term"`
	PhraseLength    int      `json:"phrase_length"`
	CollocationTop  int      `json:"collocation_top"`
	FieldA          Domain   `json:"field_a"`
	FieldB          Domain   `json:"field_b"`
	SentenceField   Domain   `json:"sentence_field"`
	Books           []string `json:"books"`
	SentenceSearch  string   `json:"sentence_search"`
	SentenceIndex   int      `json:"sentence_index"`
}

// DefaultSelection returns the state of a fresh session.
func DefaultSelection() Selection {
	return Selection{
		FeatureCategory: featureCategories[0].Name,
		Word:            DefaultSearchWord,
		TopN:            DefaultTopN,
		CumulativeN:     DefaultCumulativeN,
		POS:             DefaultPOS,
		POSCount:        DefaultPOSCount,
		PhraseLength:    DefaultPhraseLength,
		CollocationTop:  DefaultCollocationTop,
		FieldA:          DefaultFieldA,
		FieldB:          DefaultFieldB,
		SentenceField:   DefaultSentenceField,
		SentenceSearch:  DefaultSentenceSearch,
		SentenceIndex:   NoSentenceIndex,
	}
}

// ParseSelection builds a Selection from query values. Missing values take
// their defaults and numbers are clamped into range. Unknown domain names
// are rejected with ErrUnknownDomain.
func ParseSelection(v url.Values) (Selection, error) {
	sel := DefaultSelection()

	if v.Has(ParamDomain) {
		domains, err := parseDomains(v[ParamDomain])
		if err != nil {
			return Selection{}, err
		}
		sel.Domains = domains
	}

	if s := strings.TrimSpace(v.Get(ParamCategory)); s != "" {
		sel.FeatureCategory = s
	}
	sel.Feature = strings.TrimSpace(v.Get(ParamFeature))

	if v.Has(ParamWord) {
		sel.Word = strings.TrimSpace(v.Get(ParamWord))
	}
	sel.TopN = clampInt(v.Get(ParamTopN), DefaultTopN, MinTopN, MaxTopN)
	sel.CumulativeN = clampInt(v.Get(ParamCumulativeN), DefaultCumulativeN, MinCumulativeN, MaxCumulativeN)
	if pos := strings.TrimSpace(v.Get(ParamPOS)); IsPennTag(pos) {
		sel.POS = pos
	}
	sel.POSCount = clampInt(v.Get(ParamPOSCount), DefaultPOSCount, MinPOSCount, MaxPOSCount)

	sel.Term = strings.TrimSpace(v.Get(ParamTerm))
	sel.PhraseLength = clampInt(v.Get(ParamPhraseLength), DefaultPhraseLength, MinPhraseLength, MaxPhraseLength)
	sel.CollocationTop = clampInt(v.Get(ParamCollocationTop), DefaultCollocationTop, 1, 0)

	var err error
	if sel.FieldA, err = parseDomainOr(v.Get(ParamFieldA), DefaultFieldA); err != nil {
		return Selection{}, err
	}
	if sel.FieldB, err = parseDomainOr(v.Get(ParamFieldB), DefaultFieldB); err != nil {
		return Selection{}, err
	}
	if sel.SentenceField, err = parseDomainOr(v.Get(ParamSentenceField), DefaultSentenceField); err != nil {
		return Selection{}, err
	}
	if sel.SentenceField == DomainGeneral {
		sel.SentenceField = DefaultSentenceField
	}

	if v.Has(ParamBook) {
		// Book titles may contain commas, so only repeated values are accepted.
		sel.Books = []string{}
		for _, b := range v[ParamBook] {
			if b = strings.TrimSpace(b); b != "" {
				sel.Books = append(sel.Books, b)
			}
		}
	}
	if v.Has(ParamSentenceSearch) {
		sel.SentenceSearch = v.Get(ParamSentenceSearch)
	}
	sel.SentenceIndex = clampInt(v.Get(ParamSentenceIndex), NoSentenceIndex, NoSentenceIndex, 0)

	return sel, nil
}

// DomainsOr returns the selected domains, or def when none were given.
// An explicitly empty selection stays empty.
func (s Selection) DomainsOr(def []Domain) []Domain {
	if s.Domains == nil {
		out := make([]Domain, len(def))
		copy(out, def)
		return out
	}
	return s.Domains
}

// Values encodes the selection back into query values.
func (s Selection) Values() url.Values {
	v := url.Values{}
	if s.Domains != nil {
		if len(s.Domains) == 0 {
			v.Set(ParamDomain, "")
		}
		for _, d := range s.Domains {
			v.Add(ParamDomain, string(d))
		}
	}
	v.Set(ParamCategory, s.FeatureCategory)
	if s.Feature != "" {
		v.Set(ParamFeature, s.Feature)
	}
	v.Set(ParamWord, s.Word)
	v.Set(ParamTopN, strconv.Itoa(s.TopN))
	v.Set(ParamCumulativeN, strconv.Itoa(s.CumulativeN))
	v.Set(ParamPOS, s.POS)
	v.Set(ParamPOSCount, strconv.Itoa(s.POSCount))
	if s.Term != "" {
		v.Set(ParamTerm, s.Term)
	}
	v.Set(ParamPhraseLength, strconv.Itoa(s.PhraseLength))
	v.Set(ParamCollocationTop, strconv.Itoa(s.CollocationTop))
	v.Set(ParamFieldA, string(s.FieldA))
	v.Set(ParamFieldB, string(s.FieldB))
	v.Set(ParamSentenceField, string(s.SentenceField))
	if s.Books != nil {
		if len(s.Books) == 0 {
			v.Set(ParamBook, "")
		}
		for _, b := range s.Books {
			v.Add(ParamBook, b)
		}
	}
	v.Set(ParamSentenceSearch, s.SentenceSearch)
	v.Set(ParamSentenceIndex, strconv.Itoa(s.SentenceIndex))
	return v
}

// parseDomains accepts repeated and comma-separated values. The result is
// non-nil even when every value is empty.
func parseDomains(values []string) ([]Domain, error) {
	out := []Domain{}
	seen := make(map[Domain]bool)
	for _, name := range splitList(values) {
		d, err := ParseDomain(name)
		if err != nil {
			return nil, err
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out, nil
}

func parseDomainOr(s string, def Domain) (Domain, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return ParseDomain(s)
}

// splitList flattens repeated and comma-separated values, dropping blanks.
func splitList(values []string) []string {
	out := []string{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// clampInt parses s, falling back to def on error, and clamps the result
// into [lo, hi]. hi <= lo means no upper bound.
func clampInt(s string, def, lo, hi int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	if n < lo {
		return lo
	}
	if hi > lo && n > hi {
		return hi
	}
	return n
}
