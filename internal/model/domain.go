package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Domain identifies one corpus. The eight subject domains come from
// textbooks; General is the BNC Baby reference corpus.
type Domain string

// Known domains, in the order the dashboard lists them.
const (
	DomainGeneral            Domain = "General"
	DomainBusiness           Domain = "Business"
	DomainEconomics          Domain = "Economics"
	DomainHistory            Domain = "History"
	DomainLinguistics        Domain = "Linguistics"
	DomainManagement         Domain = "Management"
	DomainMediaCommunication Domain = "Media_communication"
	DomainPhilosophy         Domain = "Philosophy"
	DomainPsychology         Domain = "Psychology"
)

// generalFeatureRow is the row key of the General corpus in the feature tables.
const generalFeatureRow = "BNC_Baby"

// allDomains is the closed domain set. Table and file names are only ever
// built from these values.
var allDomains = []Domain{
	DomainGeneral,
	DomainBusiness,
	DomainEconomics,
	DomainHistory,
	DomainLinguistics,
	DomainManagement,
	DomainMediaCommunication,
	DomainPhilosophy,
	DomainPsychology,
}

// AllDomains returns every domain, General first.
func AllDomains() []Domain {
	out := make([]Domain, len(allDomains))
	copy(out, allDomains)
	return out
}

// SentenceDomains returns the domains that have sentence-level artifacts.
// The General reference corpus has no books and is excluded.
func SentenceDomains() []Domain {
	out := make([]Domain, 0, len(allDomains)-1)
	for _, d := range allDomains {
		if d != DomainGeneral {
			out = append(out, d)
		}
	}
	return out
}

// ParseDomain resolves a domain name case-insensitively.
// Spaces are accepted in place of underscores ("media communication").
func ParseDomain(s string) (Domain, error) {
	norm := strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
	for _, d := range allDomains {
		if strings.EqualFold(string(d), norm) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
}

// Valid reports whether d belongs to the closed domain set.
func (d Domain) Valid() bool {
	for _, known := range allDomains {
		if d == known {
			return true
		}
	}
	return false
}

// String returns the artifact name of the domain.
func (d Domain) String() string {
	return string(d)
}

// DisplayName returns a human-readable name, e.g. "Media Communication".
// A cases.Caser is stateful, so each call builds its own.
func (d Domain) DisplayName() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(d), "_", " "))
}

// FeatureRow returns the row key of the domain in the feature tables.
func (d Domain) FeatureRow() string {
	if d == DomainGeneral {
		return generalFeatureRow
	}
	return string(d)
}
