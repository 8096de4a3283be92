package model

import "errors"

var (
	// ErrArtifactMissing is returned when a spreadsheet, image, book directory
	// or database table the page needs does not exist.
	ErrArtifactMissing = errors.New("artifact missing")

	// ErrArtifactMalformed is returned when an artifact exists but its
	// content does not have the expected shape.
	ErrArtifactMalformed = errors.New("artifact malformed")

	// ErrUnknownPage is returned for a page name that is not registered.
	ErrUnknownPage = errors.New("unknown page")

	// ErrUnknownDomain is returned for a domain name outside the closed domain set.
	ErrUnknownDomain = errors.New("unknown domain")

	// ErrUnknownFeature is returned for a feature category or feature code
	// that is not part of the feature tables.
	ErrUnknownFeature = errors.New("unknown feature")
)
