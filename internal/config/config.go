package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultListenAddress is where the dashboard listens when serving.
	DefaultListenAddress = "127.0.0.1:8501"

	// DefaultArtifactRoot is the directory that holds the offline corpus
	// artifacts (spreadsheets, word clouds, books and the corpora database).
	DefaultArtifactRoot = "."

	// DefaultDatabaseFile is the SQLite file name inside the artifact root.
	DefaultDatabaseFile = "corpora_data.db"

	// DefaultDatabaseDriver selects the relational store implementation.
	DefaultDatabaseDriver = DriverSQLite

	// DefaultNLPBackend is the sentence parser used by the sentence view.
	DefaultNLPBackend = BackendProse

	// DefaultCoreNLPURL is the address of a locally started CoreNLP server.
	DefaultCoreNLPURL = "http://127.0.0.1:9000"

	// DefaultNLPTimeout bounds a single parse request.
	// CoreNLP loads its models lazily, so the first request is slow.
	DefaultNLPTimeout = 60 * time.Second

	// DefaultParseCacheSize is the number of parsed sentences kept in memory.
	DefaultParseCacheSize = 256

	// DefaultTableCacheSize is the number of parsed spreadsheets kept in memory.
	// Zero disables the cache and every interaction rereads its artifacts.
	DefaultTableCacheSize = 64

	// DefaultChartWidth and DefaultChartHeight size rendered PNG charts.
	DefaultChartWidth  = 900
	DefaultChartHeight = 550

	// DefaultExportConcurrency is the number of pages rendered at once by export.
	DefaultExportConcurrency = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "corpusscope"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// NLP backends.
const (
	BackendProse   = "prose"
	BackendCoreNLP = "corenlp"
	BackendNone    = "none"
)

// Config holds all configuration options for corpusscope.
// It is populated from defaults, the YAML config file, CORPUSSCOPE_*
// environment variables and CLI flags, in that order.
type Config struct {
	// ArtifactRoot is the directory the path templates are resolved against.
	ArtifactRoot string

	// Paths holds the artifact path templates. "{domain}" is replaced by
	// the domain name.
	Paths Paths

	// DatabaseDriver is "sqlite" or "pgx".
	DatabaseDriver string

	// DatabaseDSN is the SQLite file path or PostgreSQL connection string.
	// A relative SQLite path is resolved against ArtifactRoot.
	DatabaseDSN string

	// ListenAddress is the host:port the dashboard server binds to.
	ListenAddress string

	// NLPBackend is "prose", "corenlp" or "none".
	NLPBackend string

	// CoreNLPURL is the base URL of a Stanford CoreNLP server.
	CoreNLPURL string

	// CoreNLPUsername and CoreNLPPassword enable basic auth against a
	// CoreNLP server started with -username/-password.
	CoreNLPUsername string
	CoreNLPPassword string

	// NLPTimeout bounds a single parse.
	NLPTimeout time.Duration

	// ParseCacheSize is the capacity of the parse result cache.
	ParseCacheSize int

	// TableCacheSize is the capacity of the spreadsheet cache (0 disables it).
	TableCacheSize int

	// ChartWidth and ChartHeight size rendered PNG charts in pixels.
	ChartWidth  int
	ChartHeight int

	// ChartFontPath optionally points at a TrueType font for chart text.
	ChartFontPath string

	// ExportConcurrency is the number of pages rendered concurrently by export.
	ExportConcurrency int

	// Verbose enables debug logging.
	Verbose bool

	// JSONLog switches the log handler to JSON output.
	JSONLog bool

	// ConfigFilePath is the explicit configuration file path, if any.
	ConfigFilePath string
}

// Paths holds artifact path templates relative to the artifact root.
type Paths struct {
	BasicInfo       string `yaml:"basicInfo,omitempty"`
	WordAttributes  string `yaml:"wordAttributes,omitempty"`
	POSFullNames    string `yaml:"posFullNames,omitempty"`
	WordFrequencies string `yaml:"wordFrequencies,omitempty"`
	POSProportions  string `yaml:"posProportions,omitempty"`
	CumulativeFreq  string `yaml:"cumulativeFrequencies,omitempty"`
	Sentences       string `yaml:"sentences,omitempty"`
	SentenceTotals  string `yaml:"sentenceTotals,omitempty"`
	WordCloud       string `yaml:"wordCloud,omitempty"`
	BookDir         string `yaml:"bookDir,omitempty"`
}

// DefaultPaths returns the artifact layout produced by the offline pipeline.
func DefaultPaths() Paths {
	return Paths{
		BasicInfo:       "word_attribute/basic_information.xlsx",
		WordAttributes:  "word_attribute_pos_count/{domain}_word_attribute.xlsx",
		POSFullNames:    "word_attribute_pos_count/pos_full_name.xlsx",
		WordFrequencies: "word_freq/{domain}_word_frequencies.xlsx",
		POSProportions:  "pos_proportion/{domain}_pos_proportion.xlsx",
		CumulativeFreq:  "cumulative_word_frequency/{domain}_cumulative_word_frequency.xlsx",
		Sentences:       "sentences_attribute/{domain}_sentences_attribute.xlsx",
		SentenceTotals:  "sentences_attribute/sentences_total_attribute.xlsx",
		WordCloud:       "wordcloud/{domain}.png",
		BookDir:         "book",
	}
}

// merge overrides p with every non-empty template in o.
func (p Paths) merge(o Paths) Paths {
	pick := func(cur, override string) string {
		if override != "" {
			return override
		}
		return cur
	}
	return Paths{
		BasicInfo:       pick(p.BasicInfo, o.BasicInfo),
		WordAttributes:  pick(p.WordAttributes, o.WordAttributes),
		POSFullNames:    pick(p.POSFullNames, o.POSFullNames),
		WordFrequencies: pick(p.WordFrequencies, o.WordFrequencies),
		POSProportions:  pick(p.POSProportions, o.POSProportions),
		CumulativeFreq:  pick(p.CumulativeFreq, o.CumulativeFreq),
		Sentences:       pick(p.Sentences, o.Sentences),
		SentenceTotals:  pick(p.SentenceTotals, o.SentenceTotals),
		WordCloud:       pick(p.WordCloud, o.WordCloud),
		BookDir:         pick(p.BookDir, o.BookDir),
	}
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		ArtifactRoot:      DefaultArtifactRoot,
		Paths:             DefaultPaths(),
		DatabaseDriver:    DefaultDatabaseDriver,
		DatabaseDSN:       DefaultDatabaseFile,
		ListenAddress:     DefaultListenAddress,
		NLPBackend:        DefaultNLPBackend,
		CoreNLPURL:        DefaultCoreNLPURL,
		NLPTimeout:        DefaultNLPTimeout,
		ParseCacheSize:    DefaultParseCacheSize,
		TableCacheSize:    DefaultTableCacheSize,
		ChartWidth:        DefaultChartWidth,
		ChartHeight:       DefaultChartHeight,
		ExportConcurrency: DefaultExportConcurrency,
	}
}

// ResolvedDSN returns the DSN the database package should open.
// Relative SQLite paths are joined with the artifact root.
func (c *Config) ResolvedDSN() string {
	if c.DatabaseDriver == DriverSQLite && !filepath.IsAbs(c.DatabaseDSN) {
		return filepath.Join(c.ArtifactRoot, c.DatabaseDSN)
	}
	return c.DatabaseDSN
}

// XDGDataDir returns the XDG data directory for corpusscope.
// On Linux: ~/.local/share/corpusscope
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for corpusscope.
// On Linux: ~/.config/corpusscope
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// The first problem found is returned.
func (c *Config) Validate() error {
	if c.ArtifactRoot == "" {
		return ErrNoArtifactRoot
	}

	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return ErrUnknownDriver
	}

	if c.DatabaseDSN == "" {
		return ErrNoDatabase
	}

	switch c.NLPBackend {
	case BackendProse, BackendNone:
	case BackendCoreNLP:
		if c.CoreNLPURL == "" {
			return ErrNoCoreNLPURL
		}
	default:
		return ErrUnknownBackend
	}

	if c.NLPTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.ParseCacheSize < 0 || c.TableCacheSize < 0 {
		return ErrInvalidCacheSize
	}

	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return ErrInvalidChartSize
	}

	if c.ExportConcurrency <= 0 {
		return ErrInvalidConcurrency
	}

	return nil
}
