package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoArtifactRoot is returned when the artifact root directory is empty.
	ErrNoArtifactRoot = errors.New("no artifact root: set --root or artifactRoot in the config file")

	// ErrNoDatabase is returned when no database DSN is configured.
	ErrNoDatabase = errors.New("no database: set --db or database.dsn in the config file")

	// ErrUnknownDriver is returned for a database driver other than sqlite or pgx.
	ErrUnknownDriver = errors.New("unknown database driver: must be sqlite or pgx")

	// ErrUnknownBackend is returned for an NLP backend other than prose, corenlp or none.
	ErrUnknownBackend = errors.New("unknown nlp backend: must be prose, corenlp or none")

	// ErrNoCoreNLPURL is returned when the corenlp backend has no server URL.
	ErrNoCoreNLPURL = errors.New("corenlp backend selected but no server url configured")

	// ErrInvalidTimeout is returned when the NLP timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid nlp timeout: must be positive")

	// ErrInvalidCacheSize is returned when a cache size is negative.
	ErrInvalidCacheSize = errors.New("invalid cache size: must be non-negative")

	// ErrInvalidChartSize is returned when the chart width or height is not positive.
	ErrInvalidChartSize = errors.New("invalid chart size: width and height must be positive")

	// ErrInvalidConcurrency is returned when the export concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid export concurrency: must be positive")
)
