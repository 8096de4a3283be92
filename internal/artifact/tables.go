package artifact

import (
	"strings"

	"github.com/nao1215/corpusscope/internal/model"
)

// line converts a data row index to its 1-based sheet row number for errors.
func line(i int) int { return i + 2 }

// BasicInfo loads the Type/Token/TTR table of every corpus. The corpus
// name is the first column.
func (s *Store) BasicInfo() ([]model.BasicInfo, error) {
	t, err := s.loadTable(s.Path(s.paths.BasicInfo, ""), "")
	if err != nil {
		return nil, err
	}
	c, err := t.cols("Type", "Token", "TTR")
	if err != nil {
		return nil, err
	}

	out := make([]model.BasicInfo, 0, len(t.rows))
	for i, r := range t.rows {
		d, err := model.ParseDomain(cell(r, 0))
		if err != nil {
			s.logger.Debug("skipping unknown corpus in basic information", "row", line(i), "name", cell(r, 0))
			continue
		}
		typ, err := t.intAt(r, c[0], line(i))
		if err != nil {
			return nil, err
		}
		tok, err := t.intAt(r, c[1], line(i))
		if err != nil {
			return nil, err
		}
		ttr, err := t.floatAt(r, c[2], line(i))
		if err != nil {
			return nil, err
		}
		out = append(out, model.BasicInfo{Domain: d, Type: typ, Token: tok, TTR: ttr})
	}
	return out, nil
}

// WordAttributes loads a domain's word records (word, count, POS tag).
func (s *Store) WordAttributes(d model.Domain) ([]model.WordAttribute, error) {
	t, err := s.loadTable(s.Path(s.paths.WordAttributes, d), "")
	if err != nil {
		return nil, err
	}
	c, err := t.cols("word", "count", "pos_tag")
	if err != nil {
		return nil, err
	}

	out := make([]model.WordAttribute, 0, len(t.rows))
	for i, r := range t.rows {
		n, err := t.intAt(r, c[1], line(i))
		if err != nil {
			return nil, err
		}
		out = append(out, model.WordAttribute{
			Word:   cell(r, c[0]),
			Domain: d,
			Count:  n,
			POSTag: strings.TrimSpace(cell(r, c[2])),
		})
	}
	return out, nil
}

// WordFrequencies loads a domain's word frequency list.
func (s *Store) WordFrequencies(d model.Domain) ([]model.WordFrequency, error) {
	t, err := s.loadTable(s.Path(s.paths.WordFrequencies, d), "")
	if err != nil {
		return nil, err
	}
	c, err := t.cols("word", "freq")
	if err != nil {
		return nil, err
	}
	lengthCol, lerr := t.col("word_lengths", "word_length")

	out := make([]model.WordFrequency, 0, len(t.rows))
	for i, r := range t.rows {
		freq, err := t.intAt(r, c[1], line(i))
		if err != nil {
			return nil, err
		}
		w := model.WordFrequency{Word: cell(r, c[0]), Freq: freq}
		if lerr == nil {
			if w.Length, err = t.intAt(r, lengthCol, line(i)); err != nil {
				return nil, err
			}
		} else {
			w.Length = len([]rune(w.Word))
		}
		out = append(out, w)
	}
	return out, nil
}

// POSProportions loads a domain's POS tag shares.
func (s *Store) POSProportions(d model.Domain) ([]model.POSProportion, error) {
	t, err := s.loadTable(s.Path(s.paths.POSProportions, d), "")
	if err != nil {
		return nil, err
	}
	tagCol, err := t.col("pos_tag")
	if err != nil {
		return nil, err
	}
	pctCol, err := t.col("percentage(%)", "percentage")
	if err != nil {
		return nil, err
	}

	out := make([]model.POSProportion, 0, len(t.rows))
	for i, r := range t.rows {
		pct, err := t.floatAt(r, pctCol, line(i))
		if err != nil {
			return nil, err
		}
		out = append(out, model.POSProportion{Tag: cell(r, tagCol), Percentage: pct})
	}
	return out, nil
}

// CumulativeFrequencies loads a domain's cumulative frequency table in
// file order.
func (s *Store) CumulativeFrequencies(d model.Domain) ([]model.CumulativeFrequency, error) {
	t, err := s.loadTable(s.Path(s.paths.CumulativeFreq, d), "")
	if err != nil {
		return nil, err
	}
	c, err := t.cols("word", "cumulative_freq")
	if err != nil {
		return nil, err
	}

	out := make([]model.CumulativeFrequency, 0, len(t.rows))
	for i, r := range t.rows {
		n, err := t.intAt(r, c[1], line(i))
		if err != nil {
			return nil, err
		}
		out = append(out, model.CumulativeFrequency{Word: cell(r, c[0]), CumulativeFreq: n})
	}
	return out, nil
}

// POSNames loads the abbreviation to full name table. The first two
// columns are used whatever their headers say.
func (s *Store) POSNames() ([]model.POSName, error) {
	t, err := s.loadTable(s.Path(s.paths.POSFullNames, ""), "")
	if err != nil {
		return nil, err
	}
	out := make([]model.POSName, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, model.POSName{
			Abbreviation: strings.TrimSpace(cell(r, 0)),
			FullName:     strings.TrimSpace(cell(r, 1)),
		})
	}
	return out, nil
}

// SentenceTotals returns the rows of the sentence totals table whose
// "field" column names d. Values is nil when the domain has no row.
func (s *Store) SentenceTotals(d model.Domain) (model.SentenceTotals, error) {
	t, err := s.loadTable(s.Path(s.paths.SentenceTotals, d), "")
	if err != nil {
		return model.SentenceTotals{}, err
	}
	fieldCol, err := t.col("field")
	if err != nil {
		return model.SentenceTotals{}, err
	}

	out := model.SentenceTotals{Domain: d, Columns: t.header}
	for _, r := range t.rows {
		if strings.TrimSpace(cell(r, fieldCol)) == string(d) {
			values := make([]string, len(t.header))
			for i := range values {
				values[i] = cell(r, i)
			}
			out.Values = values
			break
		}
	}
	return out, nil
}

// bookSheetPrefixRunes is how many leading characters of a book name are
// matched against sheet names. Sheet names are capped at 31 characters, so
// the workbooks store truncated titles.
const bookSheetPrefixRunes = 20

// Sentences loads the sentences of the given books from the domain's
// sentence workbook. A book matches every sheet whose name contains the
// first 20 characters of the book name; each sheet is read once.
func (s *Store) Sentences(d model.Domain, books []string) ([]model.SentenceRecord, error) {
	path := s.Path(s.paths.Sentences, d)
	sheets, err := s.sheetNames(path)
	if err != nil {
		return nil, err
	}

	var out []model.SentenceRecord
	read := make(map[string]bool)
	for _, book := range books {
		cut := bookPrefix(book)
		for _, sheet := range sheets {
			if read[sheet] || !strings.Contains(sheet, cut) {
				continue
			}
			read[sheet] = true

			t, err := s.loadTable(path, sheet)
			if err != nil {
				return nil, err
			}
			c, err := t.cols("sentences", "tagged")
			if err != nil {
				return nil, err
			}
			for _, r := range t.rows {
				out = append(out, model.SentenceRecord{
					Sentence: cell(r, c[0]),
					Tagged:   cell(r, c[1]),
					Domain:   d,
					Book:     book,
				})
			}
		}
	}
	return out, nil
}

func bookPrefix(name string) string {
	r := []rune(name)
	if len(r) > bookSheetPrefixRunes {
		r = r[:bookSheetPrefixRunes]
	}
	return string(r)
}
