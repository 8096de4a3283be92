package artifact

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nao1215/corpusscope/internal/model"
)

// table is a sheet with an indexed header row.
type table struct {
	path   string
	header []string
	index  map[string]int
	rows   [][]string
}

func newTable(path string, rows [][]string) (*table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", model.ErrArtifactMalformed, path)
	}
	t := &table{
		path:   path,
		header: rows[0],
		index:  make(map[string]int, len(rows[0])),
	}
	for i, h := range rows[0] {
		key := normalizeHeader(h)
		if _, dup := t.index[key]; !dup {
			t.index[key] = i
		}
	}
	for _, r := range rows[1:] {
		if !blankRow(r) {
			t.rows = append(t.rows, r)
		}
	}
	return t, nil
}

// col returns the index of the first header matching one of names.
func (t *table) col(names ...string) (int, error) {
	for _, n := range names {
		if i, ok := t.index[normalizeHeader(n)]; ok {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s has no %q column", model.ErrArtifactMalformed, t.path, names[0])
}

// cols resolves several columns at once.
func (t *table) cols(names ...string) ([]int, error) {
	out := make([]int, len(names))
	for i, n := range names {
		c, err := t.col(n)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// intAt parses an integer cell. Integral floats such as "12.0" are accepted.
func (t *table) intAt(row []string, i, line int) (int, error) {
	v := cell(row, i)
	n, err := parseInt(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s row %d: %q is not an integer", model.ErrArtifactMalformed, t.path, line, v)
	}
	return n, nil
}

// floatAt parses a numeric cell.
func (t *table) floatAt(row []string, i, line int) (float64, error) {
	v := cell(row, i)
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s row %d: %q is not a number", model.ErrArtifactMalformed, t.path, line, v)
	}
	return f, nil
}

// cell returns row[i], or "" for cells trimmed off the end of the row.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseInt parses an integer, accepting integral float notation.
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrSyntax
	}
	return int(f), nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

func blankRow(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
