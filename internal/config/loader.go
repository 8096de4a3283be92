package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".corpusscope"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the on-disk YAML configuration.
// Every field is optional; zero values leave the current setting untouched.
type File struct {
	ArtifactRoot string       `yaml:"artifactRoot,omitempty"`
	Paths        Paths        `yaml:"paths,omitempty"`
	Database     DatabaseFile `yaml:"database,omitempty"`
	Server       ServerFile   `yaml:"server,omitempty"`
	NLP          NLPFile      `yaml:"nlp,omitempty"`
	Chart        ChartFile    `yaml:"chart,omitempty"`
	Export       ExportFile   `yaml:"export,omitempty"`
}

// DatabaseFile configures the relational store.
type DatabaseFile struct {
	Driver string `yaml:"driver,omitempty"`
	DSN    string `yaml:"dsn,omitempty"`
}

// ServerFile configures the dashboard server.
type ServerFile struct {
	Listen string `yaml:"listen,omitempty"`
}

// NLPFile configures sentence parsing.
type NLPFile struct {
	Backend        string `yaml:"backend,omitempty"`
	CoreNLPURL     string `yaml:"corenlpURL,omitempty"`
	Username       string `yaml:"username,omitempty"`
	Password       string `yaml:"password,omitempty"`
	Timeout        string `yaml:"timeout,omitempty"`
	ParseCacheSize *int   `yaml:"parseCacheSize,omitempty"`
	TableCacheSize *int   `yaml:"tableCacheSize,omitempty"`
}

// ChartFile configures PNG chart rendering.
type ChartFile struct {
	Width    int    `yaml:"width,omitempty"`
	Height   int    `yaml:"height,omitempty"`
	FontPath string `yaml:"fontPath,omitempty"`
}

// ExportFile configures the export command.
type ExportFile struct {
	Concurrency int `yaml:"concurrency,omitempty"`
}

// LoadConfigFile loads a configuration file from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cf, nil
}

// Apply copies every value set in the file onto cfg.
func (f *File) Apply(cfg *Config) error {
	if f.ArtifactRoot != "" {
		cfg.ArtifactRoot = f.ArtifactRoot
	}
	cfg.Paths = cfg.Paths.merge(f.Paths)

	if f.Database.Driver != "" {
		cfg.DatabaseDriver = f.Database.Driver
	}
	if f.Database.DSN != "" {
		cfg.DatabaseDSN = f.Database.DSN
	}
	if f.Server.Listen != "" {
		cfg.ListenAddress = f.Server.Listen
	}

	if f.NLP.Backend != "" {
		cfg.NLPBackend = f.NLP.Backend
	}
	if f.NLP.CoreNLPURL != "" {
		cfg.CoreNLPURL = f.NLP.CoreNLPURL
	}
	if f.NLP.Username != "" {
		cfg.CoreNLPUsername = f.NLP.Username
	}
	if f.NLP.Password != "" {
		cfg.CoreNLPPassword = f.NLP.Password
	}
	if f.NLP.Timeout != "" {
		d, err := time.ParseDuration(f.NLP.Timeout)
		if err != nil {
			return fmt.Errorf("invalid nlp.timeout %q: %w", f.NLP.Timeout, err)
		}
		cfg.NLPTimeout = d
	}
	if f.NLP.ParseCacheSize != nil {
		cfg.ParseCacheSize = *f.NLP.ParseCacheSize
	}
	if f.NLP.TableCacheSize != nil {
		cfg.TableCacheSize = *f.NLP.TableCacheSize
	}

	if f.Chart.Width != 0 {
		cfg.ChartWidth = f.Chart.Width
	}
	if f.Chart.Height != 0 {
		cfg.ChartHeight = f.Chart.Height
	}
	if f.Chart.FontPath != "" {
		cfg.ChartFontPath = f.Chart.FontPath
	}
	if f.Export.Concurrency != 0 {
		cfg.ExportConcurrency = f.Export.Concurrency
	}
	return nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .corpusscope in the current directory
// 3. Look for config.yaml in the XDG config directory
// 4. Look for .corpusscope in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// envOverrides lists the CORPUSSCOPE_* variables. It is seeded from the
// current config, so an unset variable leaves its value untouched.
type envOverrides struct {
	ArtifactRoot    string        `env:"CORPUSSCOPE_ROOT"`
	DatabaseDriver  string        `env:"CORPUSSCOPE_DB_DRIVER"`
	DatabaseDSN     string        `env:"CORPUSSCOPE_DB"`
	ListenAddress   string        `env:"CORPUSSCOPE_LISTEN"`
	NLPBackend      string        `env:"CORPUSSCOPE_NLP_BACKEND"`
	CoreNLPURL      string        `env:"CORPUSSCOPE_CORENLP_URL"`
	CoreNLPUsername string        `env:"CORPUSSCOPE_CORENLP_USERNAME"`
	CoreNLPPassword string        `env:"CORPUSSCOPE_CORENLP_PASSWORD"`
	NLPTimeout      time.Duration `env:"CORPUSSCOPE_NLP_TIMEOUT"`
	ChartFontPath   string        `env:"CORPUSSCOPE_CHART_FONT"`
	JSONLog         bool          `env:"CORPUSSCOPE_JSON_LOG"`
}

// ApplyEnv overlays CORPUSSCOPE_* environment variables onto cfg.
// cleanenv converts durations and booleans; a malformed value is an error.
func ApplyEnv(cfg *Config) error {
	env := envOverrides{
		ArtifactRoot:    cfg.ArtifactRoot,
		DatabaseDriver:  cfg.DatabaseDriver,
		DatabaseDSN:     cfg.DatabaseDSN,
		ListenAddress:   cfg.ListenAddress,
		NLPBackend:      cfg.NLPBackend,
		CoreNLPURL:      cfg.CoreNLPURL,
		CoreNLPUsername: cfg.CoreNLPUsername,
		CoreNLPPassword: cfg.CoreNLPPassword,
		NLPTimeout:      cfg.NLPTimeout,
		ChartFontPath:   cfg.ChartFontPath,
		JSONLog:         cfg.JSONLog,
	}
	if err := cleanenv.UpdateEnv(&env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.ArtifactRoot = env.ArtifactRoot
	cfg.DatabaseDriver = env.DatabaseDriver
	cfg.DatabaseDSN = env.DatabaseDSN
	cfg.ListenAddress = env.ListenAddress
	cfg.NLPBackend = env.NLPBackend
	cfg.CoreNLPURL = env.CoreNLPURL
	cfg.CoreNLPUsername = env.CoreNLPUsername
	cfg.CoreNLPPassword = env.CoreNLPPassword
	cfg.NLPTimeout = env.NLPTimeout
	cfg.ChartFontPath = env.ChartFontPath
	cfg.JSONLog = env.JSONLog
	return nil
}
