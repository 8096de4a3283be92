package database

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/nao1215/corpusscope/internal/model"
)

// N-gram table columns.
const (
	colPhrase    = "field1"
	colFrequency = "field2"
	colLength    = "field3"
)

// featureKeyColumn holds the row key (corpus name or "Definition").
const featureKeyColumn = "field1"

// NGramTable returns the n-gram table name of a domain.
func NGramTable(d model.Domain) string {
	return "n_grams_" + string(d)
}

// FeatureTable loads a feature category's table. Every column except
// field1 is a feature code; the Definition row supplies the definitions
// and the remaining rows are corpus scores keyed by model.Domain.FeatureRow.
func (s *Store) FeatureTable(ctx context.Context, category model.FeatureCategory) (*model.FeatureTable, error) {
	known, err := model.LookupFeatureCategory(category.Code)
	if err != nil {
		return nil, err
	}

	query, args, err := s.builder.Select("*").From(known.Code).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(known.Code, err)
	}
	defer rows.Close()

	cols, data, err := scanStrings(rows)
	if err != nil {
		return nil, wrapQueryError(known.Code, err)
	}

	keyCol := -1
	for i, c := range cols {
		if strings.EqualFold(c, featureKeyColumn) {
			keyCol = i
			break
		}
	}
	if keyCol < 0 {
		return nil, fmt.Errorf("%w: table %s has no %s column", model.ErrArtifactMalformed, known.Code, featureKeyColumn)
	}

	table := &model.FeatureTable{
		Category:    known,
		Definitions: make(map[string]string),
		Scores:      make(map[string]map[string]float64),
	}
	for i, c := range cols {
		if i != keyCol {
			table.Codes = append(table.Codes, c)
		}
	}

	for _, row := range data {
		key := strings.TrimSpace(row[keyCol])
		if key == model.DefinitionRow {
			for i, c := range cols {
				if i != keyCol {
					table.Definitions[c] = row[i]
				}
			}
			continue
		}
		scores := make(map[string]float64, len(table.Codes))
		for i, c := range cols {
			if i == keyCol {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
			if err != nil {
				// Blank and text cells have no score.
				continue
			}
			scores[c] = v
		}
		table.Scores[key] = scores
	}
	return table, nil
}

// NGrams returns the collocations of a domain with the given phrase
// length, in table order. Rows whose frequency is not an integer, such as
// the header row the import left in every table, are excluded.
//
// Design decision: We skip rows by content rather than dropping the first
// row of the result because:
//  1. SQL gives no row order without ORDER BY, so "first" is not stable
//  2. A table imported without the stray header keeps its first real row
//  3. A header row that reappears mid-table is skipped as well
func (s *Store) NGrams(ctx context.Context, d model.Domain, length int) ([]model.Collocation, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownDomain, d)
	}
	table := NGramTable(d)

	query, args, err := s.builder.
		Select(colPhrase, colFrequency).
		From(table).
		Where(sq.Eq{colLength: length}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(table, err)
	}
	defer rows.Close()

	_, data, err := scanStrings(rows)
	if err != nil {
		return nil, wrapQueryError(table, err)
	}

	out := make([]model.Collocation, 0, len(data))
	for _, row := range data {
		freq, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			continue
		}
		out = append(out, model.Collocation{
			Phrase:    row[0],
			Length:    length,
			Frequency: freq,
			Domain:    d,
		})
	}
	return out, nil
}
