package analysis

import (
	"slices"

	"github.com/nao1215/corpusscope/internal/model"
)

// LengthCount is the number of distinct words of one length.
type LengthCount struct {
	Length int
	Count  int
}

// LengthCounts groups words by length, shortest first.
func LengthCounts(words []model.WordFrequency) []LengthCount {
	counts := make(map[int]int)
	for _, w := range words {
		counts[w.Length]++
	}
	out := make([]LengthCount, 0, len(counts))
	for l, c := range counts {
		out = append(out, LengthCount{Length: l, Count: c})
	}
	slices.SortFunc(out, func(a, b LengthCount) int { return a.Length - b.Length })
	return out
}

// LengthShare is the percentage of distinct words of one length.
type LengthShare struct {
	Length  int
	Percent float64
}

// LengthPercentages is the percent-normalized histogram of word lengths.
// The shares of a non-empty list sum to 100.
func LengthPercentages(words []model.WordFrequency) []LengthShare {
	counts := LengthCounts(words)
	out := make([]LengthShare, len(counts))
	for i, c := range counts {
		out[i] = LengthShare{Length: c.Length, Percent: 100 * float64(c.Count) / float64(len(words))}
	}
	return out
}

// Cumulative tick thresholds.
const (
	wordLabelLimit = 50
	smallTickLimit = 100
	largeTickFrom  = 500
)

// CumulativeTicks decides how the x axis of a cumulative frequency chart
// of n words is labelled. Up to 50 words are labelled by word; beyond
// that the axis shows ranks with a dtick of 10 (up to 100), 50 (below
// 500) or 100.
func CumulativeTicks(n int) (wordLabels bool, dtick float64) {
	switch {
	case n <= wordLabelLimit:
		return true, 0
	case n <= smallTickLimit:
		return false, 10
	case n < largeTickFrom:
		return false, 50
	default:
		return false, 100
	}
}
