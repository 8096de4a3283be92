package analysis

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"github.com/nao1215/corpusscope/internal/model"
)

// SortBy returns a stably sorted copy of rows ordered by key.
func SortBy[T any, K cmp.Ordered](rows []T, key func(T) K, desc bool) []T {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b T) int {
		if desc {
			return cmp.Compare(key(b), key(a))
		}
		return cmp.Compare(key(a), key(b))
	})
	return out
}

// Head returns at most n leading rows. A negative n returns all rows.
func Head[T any](rows []T, n int) []T {
	if n < 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

// Filter returns the rows for which keep is true, in order.
func Filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// ContainsFold reports whether s contains substr, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// IsAlpha reports whether s is non-empty and consists of letters only.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// TopWords returns the n most frequent words, most frequent first.
// Ties keep file order.
func TopWords(words []model.WordFrequency, n int) []model.WordFrequency {
	return Head(RankWords(words), n)
}

// RankWords returns all words sorted by descending frequency.
func RankWords(words []model.WordFrequency) []model.WordFrequency {
	return SortBy(words, func(w model.WordFrequency) int { return w.Freq }, true)
}

// Ascending reverses a most-frequent-first slice for display, so that
// horizontal bar charts draw the largest bar on top.
func Ascending[T any](rows []T) []T {
	out := slices.Clone(rows)
	slices.Reverse(out)
	return out
}

// LookupWord returns the records of exactly word.
func LookupWord(attrs []model.WordAttribute, word string) []model.WordAttribute {
	return Filter(attrs, func(a model.WordAttribute) bool { return a.Word == word })
}

// WordsByPOS returns the n most frequent words tagged pos, most frequent first.
func WordsByPOS(attrs []model.WordAttribute, pos string, n int) []model.WordAttribute {
	tagged := Filter(attrs, func(a model.WordAttribute) bool { return a.POSTag == pos })
	return Head(SortBy(tagged, func(a model.WordAttribute) int { return a.Count }, true), n)
}

// TopCollocations returns the k most frequent collocations containing
// term (case-insensitive), most frequent first.
func TopCollocations(colls []model.Collocation, term string, k int) []model.Collocation {
	matching := Filter(colls, func(c model.Collocation) bool { return ContainsFold(c.Phrase, term) })
	return Head(SortBy(matching, func(c model.Collocation) int { return c.Frequency }, true), k)
}

// SearchSentences returns the records whose sentence contains q,
// ignoring case. An empty q matches everything.
func SearchSentences(recs []model.SentenceRecord, q string) []model.SentenceRecord {
	return Filter(recs, func(r model.SentenceRecord) bool { return ContainsFold(r.Sentence, q) })
}

// FilterDomains keeps the basic information rows of the given domains, in
// the order of domains.
func FilterDomains(info []model.BasicInfo, domains []model.Domain) []model.BasicInfo {
	byDomain := make(map[model.Domain]model.BasicInfo, len(info))
	for _, i := range info {
		byDomain[i.Domain] = i
	}
	out := make([]model.BasicInfo, 0, len(domains))
	for _, d := range domains {
		if i, ok := byDomain[d]; ok {
			out = append(out, i)
		}
	}
	return out
}
