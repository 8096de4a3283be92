// Package corpustest builds small on-disk corpora for tests: xlsx
// workbooks written with excelize, word-cloud PNGs, a book directory and a
// SQLite database with feature and n-gram tables.
package corpustest

import (
	"database/sql"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/corpusscope/internal/model"
)

// Sheet is a named sheet with its rows, header first.
type Sheet struct {
	Name string
	Rows [][]any
}

// WriteWorkbook writes an xlsx file with the given sheets in order.
func WriteWorkbook(t testing.TB, path string, sheets ...Sheet) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // test fixture

	const defaultSheet = "Sheet1"
	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sh.Name); err != nil {
				t.Fatalf("failed to rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			t.Fatalf("failed to add sheet %q: %v", sh.Name, err)
		}
		for r, row := range sh.Rows {
			cellName, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			values := row
			if err := f.SetSheetRow(sh.Name, cellName, &values); err != nil {
				t.Fatalf("failed to write row %d of %q: %v", r+1, sh.Name, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save %s: %v", path, err)
	}
}

// Words are the word-frequency rows of every fixture domain, deliberately
// not sorted by frequency.
var Words = []struct {
	Word string
	Freq int
}{
	{"market", 50},
	{"the", 400},
	{"trapped", 7},
	{"of", 300},
	{"economy", 45},
	{"and", 250},
	{"history", 30},
	{"a", 200},
	{"to", 180},
	{"in", 150},
	{"is", 90},
	{"business", 40},
}

// CumulativeRows is the number of rows in each cumulative frequency table.
const CumulativeRows = 120

// Book titles per sentence domain.
const (
	BookPrinciples = "Principles of Economics Volume One"
	BookHistory    = "A Short History"
)

// FeatureCodes returns the two feature codes written for a category.
func FeatureCodes(category string) []string {
	return []string{category + "_1", category + "_2"}
}

// FeatureDefinition returns the definition of a fixture feature code.
func FeatureDefinition(code string) string {
	return "definition of " + code
}

// FeatureScore returns the fixture score of a domain for a code.
func FeatureScore(d model.Domain, code string) float64 {
	base := float64(len(d.FeatureRow()))
	if strings.HasSuffix(code, "_2") {
		return base * 2
	}
	return base + 0.5
}

// Collocations are the n-gram rows of every fixture domain.
var Collocations = []struct {
	Phrase string
	Freq   int
	Length int
}{
	{"market share", 12, 2},
	{"the market", 30, 2},
	{"stock market", 25, 2},
	{"Market forces", 9, 2},
	{"market price index", 7, 3},
	{"price index", 11, 2},
}

// Corpus writes a complete fixture corpus for every domain and returns
// its root directory. The database is root/corpora_data.db.
func Corpus(t testing.TB) string {
	t.Helper()
	root := t.TempDir()

	basic := [][]any{{"", "Type", "Token", "TTR"}}
	for i, d := range model.AllDomains() {
		basic = append(basic, []any{string(d), 1000 + i*100, 10000 + i*1000, 0.1 + float64(i)/100})
	}
	WriteWorkbook(t, filepath.Join(root, "word_attribute", "basic_information.xlsx"), Sheet{Name: "Sheet1", Rows: basic})

	WriteWorkbook(t, filepath.Join(root, "word_attribute_pos_count", "pos_full_name.xlsx"), Sheet{Name: "Sheet1", Rows: [][]any{
		{"abbreviation", "full name"},
		{"NN", "Noun, singular or mass"},
		{"DT", "Determiner"},
		{"VBN", "Verb, past participle"},
	}})

	for _, d := range model.AllDomains() {
		writeDomain(t, root, d)
	}

	totals := [][]any{{"field", "sentences", "average_length"}}
	for i, d := range model.SentenceDomains() {
		totals = append(totals, []any{string(d), 500 + i, 21.5})
		writeSentences(t, root, d)
	}
	WriteWorkbook(t, filepath.Join(root, "sentences_attribute", "sentences_total_attribute.xlsx"), Sheet{Name: "Sheet1", Rows: totals})

	writeDatabase(t, filepath.Join(root, "corpora_data.db"))
	return root
}

func writeDomain(t testing.TB, root string, d model.Domain) {
	t.Helper()
	name := string(d)

	freq := [][]any{{"word", "freq", "word_lengths"}}
	for _, w := range Words {
		freq = append(freq, []any{w.Word, w.Freq, len(w.Word)})
	}
	WriteWorkbook(t, filepath.Join(root, "word_freq", name+"_word_frequencies.xlsx"), Sheet{Name: "Sheet1", Rows: freq})

	attrs := [][]any{
		{"word", "count", "pos_tag"},
		{"the", 400, "DT"},
		{"market", 50, "NN"},
		{"economy", 45, "NN"},
		{"history", 30, "NN"},
	}
	if d == model.DomainGeneral || d == model.DomainBusiness {
		attrs = append(attrs, []any{"trapped", 5, "VBN"}, []any{"trapped", 2, "JJ"})
	}
	WriteWorkbook(t, filepath.Join(root, "word_attribute_pos_count", name+"_word_attribute.xlsx"), Sheet{Name: "Sheet1", Rows: attrs})

	WriteWorkbook(t, filepath.Join(root, "pos_proportion", name+"_pos_proportion.xlsx"), Sheet{Name: "Sheet1", Rows: [][]any{
		{"pos_tag", "percentage(%)"},
		{"NN", 40.5},
		{"DT", 30},
		{"JJ", 29.5},
	}})

	cumul := [][]any{{"word", "cumulative_freq"}}
	total := 0
	for i := range CumulativeRows {
		total += CumulativeRows - i
		cumul = append(cumul, []any{fmt.Sprintf("w%03d", i+1), total})
	}
	WriteWorkbook(t, filepath.Join(root, "cumulative_word_frequency", name+"_cumulative_word_frequency.xlsx"), Sheet{Name: "Sheet1", Rows: cumul})

	WritePNG(t, filepath.Join(root, "wordcloud", name+".png"))
}

func writeSentences(t testing.TB, root string, d model.Domain) {
	t.Helper()
	name := string(d)

	for _, book := range []string{BookPrinciples, BookHistory} {
		path := filepath.Join(root, "book", name, book+".txt")
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("text"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	WriteWorkbook(t, filepath.Join(root, "sentences_attribute", name+"_sentences_attribute.xlsx"),
		Sheet{Name: "Principles of Economics V", Rows: [][]any{
			{"sentences", "tagged"},
			{"The word market grows.", "[('The', 'DT'), ('word', 'NN'), ('market', 'NN'), ('grows', 'VBZ'), ('.', '.')]"},
			{"Prices rose sharply.", "[('Prices', 'NNS'), ('rose', 'VBD'), ('sharply', 'RB'), ('.', '.')]"},
			{"A WORD of caution.", "[('A', 'DT'), ('WORD', 'NN'), ('of', 'IN'), ('caution', 'NN'), ('.', '.')]"},
		}},
		Sheet{Name: "A Short History", Rows: [][]any{
			{"sentences", "tagged"},
			{"Rome fell in 476.", "(ROOT (S (NP (NNP Rome)) (VP (VBD fell) (PP (IN in) (NP (CD 476)))) (. .)))"},
			{"Words changed meaning.", "[('Words', 'NNS'), ('changed', 'VBD'), ('meaning', 'NN'), ('.', '.')]"},
		}},
	)
}

// WritePNG writes a 2x2 PNG image.
func WritePNG(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path) //nolint:gosec // test fixture path
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close() //nolint:errcheck // test fixture
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func writeDatabase(t testing.TB, path string) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open fixture database: %v", err)
	}
	defer db.Close() //nolint:errcheck // test fixture

	exec := func(q string, args ...any) {
		t.Helper()
		if _, err := db.Exec(q, args...); err != nil {
			t.Fatalf("fixture query %q failed: %v", q, err)
		}
	}

	for _, c := range model.FeatureCategories() {
		codes := FeatureCodes(c.Code)
		exec(fmt.Sprintf(`CREATE TABLE %s (field1 TEXT, "%s" TEXT, "%s" TEXT)`, c.Code, codes[0], codes[1]))
		insert := fmt.Sprintf(`INSERT INTO %s VALUES (?, ?, ?)`, c.Code)
		exec(insert, model.DefinitionRow, FeatureDefinition(codes[0]), FeatureDefinition(codes[1]))
		for _, d := range model.AllDomains() {
			exec(insert, d.FeatureRow(),
				fmt.Sprintf("%g", FeatureScore(d, codes[0])),
				fmt.Sprintf("%g", FeatureScore(d, codes[1])))
		}
	}

	for _, d := range model.AllDomains() {
		table := "n_grams_" + string(d)
		exec(fmt.Sprintf(`CREATE TABLE %s (field1 TEXT, field2 TEXT, field3 INTEGER)`, table))
		insert := fmt.Sprintf(`INSERT INTO %s VALUES (?, ?, ?)`, table)
		exec(insert, "text", "frequency", 2)
		for _, c := range Collocations {
			exec(insert, c.Phrase, fmt.Sprint(c.Freq), c.Length)
		}
	}
}
