package model

// WordFrequency is one row of a domain's word frequency list.
type WordFrequency struct {
	Word   string `json:"word"`
	Freq   int    `json:"freq"`
	Length int    `json:"word_length"`
}

// WordAttribute is a word record: how often a word occurs in a domain
// under one part-of-speech tag.
type WordAttribute struct {
	Word   string `json:"word"`
	Domain Domain `json:"domain"`
	Count  int    `json:"count"`
	POSTag string `json:"pos_tag"`
}

// POSProportion is the share of one POS tag in a domain, in percent.
type POSProportion struct {
	Tag        string  `json:"pos_tag"`
	Percentage float64 `json:"percentage"`
}

// CumulativeFrequency is one row of the cumulative frequency table.
// Rows are ordered from the most common word down.
type CumulativeFrequency struct {
	Word           string `json:"word"`
	CumulativeFreq int    `json:"cumulative_freq"`
}

// BasicInfo holds the vocabulary-richness metrics of a domain.
type BasicInfo struct {
	Domain Domain  `json:"domain"`
	Type   int     `json:"type"`
	Token  int     `json:"token"`
	TTR    float64 `json:"ttr"`
}

// Collocation is an n-gram phrase with its frequency in a domain.
type Collocation struct {
	Phrase    string `json:"phrase"`
	Length    int    `json:"phrase_length"`
	Frequency int    `json:"frequency"`
	Domain    Domain `json:"domain"`
}

// SentenceRecord is a sentence of a book together with its tagged POS string.
type SentenceRecord struct {
	Sentence string `json:"sentence"`
	Tagged   string `json:"tagged"`
	Domain   Domain `json:"domain"`
	Book     string `json:"book"`
}

// SentenceTotals is a domain's row of the sentence totals table. The
// table's columns vary between releases, so they are kept as read.
type SentenceTotals struct {
	Domain  Domain   `json:"domain"`
	Columns []string `json:"columns"`
	Values  []string `json:"values"`
}

// POSName maps a POS tag abbreviation to its full name.
type POSName struct {
	Abbreviation string `json:"abbreviation"`
	FullName     string `json:"full_name"`
}

// Book is a source text discovered under the book directory.
type Book struct {
	Name   string `json:"name"`
	Domain Domain `json:"domain"`
	Path   string `json:"-"`
}

// TaggedWord is one (word, tag) pair of a stored tagged POS string.
type TaggedWord struct {
	Word string `json:"word"`
	Tag  string `json:"tag"`
}
