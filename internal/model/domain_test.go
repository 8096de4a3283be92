package model

import (
	"errors"
	"sync"
	"testing"
)

func TestParseDomain(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input   string
		want    Domain
		wantErr bool
	}{
		{"General", DomainGeneral, false},
		{"business", DomainBusiness, false},
		{" History ", DomainHistory, false},
		{"Media_communication", DomainMediaCommunication, false},
		{"media communication", DomainMediaCommunication, false},
		{"Chemistry", "", true},
		{"", "", true},
		{"n_grams_General", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDomain(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownDomain) {
					t.Errorf("expected ErrUnknownDomain, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, expected %q", got, tc.want)
			}
		})
	}
}

func TestDomainLists(t *testing.T) {
	t.Parallel()

	all := AllDomains()
	if len(all) != 9 {
		t.Fatalf("expected 9 domains, got %d", len(all))
	}
	if all[0] != DomainGeneral {
		t.Errorf("expected General first, got %q", all[0])
	}

	sentence := SentenceDomains()
	if len(sentence) != 8 {
		t.Fatalf("expected 8 sentence domains, got %d", len(sentence))
	}
	for _, d := range sentence {
		if d == DomainGeneral {
			t.Error("General must not offer sentence-level analysis")
		}
	}

	all[0] = "mutated"
	if AllDomains()[0] != DomainGeneral {
		t.Error("AllDomains must return a copy")
	}
}

func TestDomainFeatureRow(t *testing.T) {
	t.Parallel()

	if got := DomainGeneral.FeatureRow(); got != "BNC_Baby" {
		t.Errorf("General feature row = %q, expected BNC_Baby", got)
	}
	if got := DomainPsychology.FeatureRow(); got != "Psychology" {
		t.Errorf("Psychology feature row = %q", got)
	}
}

func TestDomainDisplayName(t *testing.T) {
	t.Parallel()

	if got := DomainMediaCommunication.DisplayName(); got != "Media Communication" {
		t.Errorf("got %q, expected %q", got, "Media Communication")
	}
	if got := DomainGeneral.DisplayName(); got != "General" {
		t.Errorf("got %q", got)
	}
}

func TestDomainDisplayNameConcurrent(t *testing.T) {
	t.Parallel()

	const workers = 32
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		bad []string
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if got := DomainMediaCommunication.DisplayName(); got != "Media Communication" {
					mu.Lock()
					bad = append(bad, got)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if len(bad) > 0 {
		t.Errorf("got %d wrong display names, first %q", len(bad), bad[0])
	}
}

func TestDomainValid(t *testing.T) {
	t.Parallel()

	if !DomainLinguistics.Valid() {
		t.Error("expected Linguistics to be valid")
	}
	if Domain("Linguistics; DROP TABLE x").Valid() {
		t.Error("expected injected name to be invalid")
	}
}
