package model

import (
	"fmt"
	"strings"
)

// FeatureCategory is a named group of linguistic features stored in one
// relational table.
type FeatureCategory struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// featureCategories lists the feature tables in display order.
var featureCategories = []FeatureCategory{
	{Name: "Wiki Knowledge Features", Code: "WoKF"},
	{Name: "Entity Density Features", Code: "EnDF"},
	{Name: "Phrasal Features", Code: "PhrF"},
	{Name: "Tree Features", Code: "TrSF"},
	{Name: "Part-of-Speech Features", Code: "POSF"},
	{Name: "TTR Features", Code: "TTRF"},
	{Name: "Psycholinguistic Difficulty", Code: "PsyF"},
	{Name: "Shallow Features", Code: "ShaF"},
	{Name: "Traditional Formulas", Code: "TraF"},
}

// FeatureCategories returns all feature categories.
func FeatureCategories() []FeatureCategory {
	out := make([]FeatureCategory, len(featureCategories))
	copy(out, featureCategories)
	return out
}

// LookupFeatureCategory finds a category by name or table code.
func LookupFeatureCategory(s string) (FeatureCategory, error) {
	s = strings.TrimSpace(s)
	for _, c := range featureCategories {
		if strings.EqualFold(c.Name, s) || strings.EqualFold(c.Code, s) {
			return c, nil
		}
	}
	return FeatureCategory{}, fmt.Errorf("%w: category %q", ErrUnknownFeature, s)
}

// DefinitionRow is the row key holding the human-readable feature definitions.
const DefinitionRow = "Definition"

// FeatureTable is one feature category's matrix: feature codes as columns,
// corpora as rows.
type FeatureTable struct {
	Category FeatureCategory `json:"category"`
	// Codes lists the feature columns in table order.
	Codes []string `json:"codes"`
	// Definitions maps a feature code to its definition.
	Definitions map[string]string `json:"definitions"`
	// Scores maps a row key (see Domain.FeatureRow) to code to score.
	Scores map[string]map[string]float64 `json:"scores"`
}

// Resolve returns the feature code matching s, which may be a code or a
// definition. An empty s selects the first feature.
func (t *FeatureTable) Resolve(s string) (string, error) {
	if len(t.Codes) == 0 {
		return "", fmt.Errorf("%w: table %s has no features", ErrArtifactMalformed, t.Category.Code)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return t.Codes[0], nil
	}
	for _, code := range t.Codes {
		if strings.EqualFold(code, s) {
			return code, nil
		}
	}
	for _, code := range t.Codes {
		if strings.EqualFold(t.Definitions[code], s) {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: %q in %s", ErrUnknownFeature, s, t.Category.Code)
}

// Score returns the score of a domain for a feature code.
func (t *FeatureTable) Score(d Domain, code string) (float64, bool) {
	row, ok := t.Scores[d.FeatureRow()]
	if !ok {
		return 0, false
	}
	v, ok := row[code]
	return v, ok
}
