package model

import (
	"errors"
	"net/url"
	"testing"
)

func TestParseSelectionDefaults(t *testing.T) {
	t.Parallel()

	sel, err := ParseSelection(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sel.Domains != nil {
		t.Errorf("expected unset domains, got %v", sel.Domains)
	}
	if got := sel.DomainsOr(DefaultWordDomains); len(got) != 3 || got[0] != DomainGeneral || got[2] != DomainHistory {
		t.Errorf("unexpected default word domains %v", got)
	}
	if sel.Word != "trapped" {
		t.Errorf("Word = %q", sel.Word)
	}
	if sel.TopN != 10 || sel.CumulativeN != 100 || sel.POSCount != 10 {
		t.Errorf("unexpected numeric defaults %+v", sel)
	}
	if sel.POS != "NN" {
		t.Errorf("POS = %q", sel.POS)
	}
	if sel.PhraseLength != 2 || sel.CollocationTop != 20 {
		t.Errorf("unexpected collocation defaults %+v", sel)
	}
	if sel.FieldA != DomainGeneral || sel.FieldB != DomainEconomics {
		t.Errorf("unexpected fields %q %q", sel.FieldA, sel.FieldB)
	}
	if sel.SentenceField != DomainBusiness || sel.SentenceSearch != "word" || sel.SentenceIndex != -1 {
		t.Errorf("unexpected sentence defaults %+v", sel)
	}
	if sel.Books != nil {
		t.Errorf("expected unset books, got %v", sel.Books)
	}
}

func TestParseSelectionClamps(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		query string
		check func(Selection) bool
	}{
		{"top n below range", "top_n=1", func(s Selection) bool { return s.TopN == 5 }},
		{"top n above range", "top_n=1000", func(s Selection) bool { return s.TopN == 100 }},
		{"cumulative above range", "cumulative_n=9000", func(s Selection) bool { return s.CumulativeN == 5000 }},
		{"cumulative not a number", "cumulative_n=lots", func(s Selection) bool { return s.CumulativeN == 100 }},
		{"phrase length above range", "phrase_length=11", func(s Selection) bool { return s.PhraseLength == 10 }},
		{"collocation top has no upper bound", "collocation_top=500", func(s Selection) bool { return s.CollocationTop == 500 }},
		{"collocation top below one", "collocation_top=0", func(s Selection) bool { return s.CollocationTop == 1 }},
		{"negative index becomes none", "index=-7", func(s Selection) bool { return s.SentenceIndex == -1 }},
		{"unknown pos falls back", "pos=XYZ", func(s Selection) bool { return s.POS == "NN" }},
		{"known pos", "pos=PRP%24", func(s Selection) bool { return s.POS == "PRP$" }},
		{"general sentence field falls back", "field=General", func(s Selection) bool { return s.SentenceField == DomainBusiness }},
		{"explicit empty word", "word=", func(s Selection) bool { return s.Word == "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			v, err := url.ParseQuery(tc.query)
			if err != nil {
				t.Fatal(err)
			}
			sel, err := ParseSelection(v)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.check(sel) {
				t.Errorf("unexpected selection for %q: %+v", tc.query, sel)
			}
		})
	}
}

func TestParseSelectionDomains(t *testing.T) {
	t.Parallel()

	t.Run("repeated and comma separated", func(t *testing.T) {
		t.Parallel()
		v, _ := url.ParseQuery("domain=business,history&domain=Business&domain=Psychology")
		sel, err := ParseSelection(v)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []Domain{DomainBusiness, DomainHistory, DomainPsychology}
		if len(sel.Domains) != len(want) {
			t.Fatalf("got %v, expected %v", sel.Domains, want)
		}
		for i := range want {
			if sel.Domains[i] != want[i] {
				t.Errorf("got %v, expected %v", sel.Domains, want)
			}
		}
	})

	t.Run("explicit empty stays empty", func(t *testing.T) {
		t.Parallel()
		v, _ := url.ParseQuery("domain=")
		sel, err := ParseSelection(v)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sel.Domains == nil || len(sel.DomainsOr(DefaultWordDomains)) != 0 {
			t.Errorf("expected explicit empty selection, got %v", sel.Domains)
		}
	})

	t.Run("unknown domain is rejected", func(t *testing.T) {
		t.Parallel()
		v, _ := url.ParseQuery("field_a=Astrology")
		if _, err := ParseSelection(v); !errors.Is(err, ErrUnknownDomain) {
			t.Errorf("expected ErrUnknownDomain, got %v", err)
		}
	})
}

func TestSelectionValuesRoundTrip(t *testing.T) {
	t.Parallel()

	sel := DefaultSelection()
	sel.Domains = []Domain{}
	sel.Books = []string{"Principles of Economics"}
	sel.Term = "market"
	sel.SentenceIndex = 3

	got, err := ParseSelection(sel.Values())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Domains == nil || len(got.Domains) != 0 {
		t.Errorf("domains = %v", got.Domains)
	}
	if len(got.Books) != 1 || got.Books[0] != "Principles of Economics" {
		t.Errorf("books = %v", got.Books)
	}
	if got.Term != "market" || got.SentenceIndex != 3 {
		t.Errorf("unexpected selection %+v", got)
	}
}
