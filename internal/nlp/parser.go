package nlp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/corpusscope/internal/config"
	"github.com/nao1215/corpusscope/internal/model"
)

var (
	// ErrDisabled is returned by the parser of the "none" backend.
	ErrDisabled = errors.New("sentence parsing is disabled")

	// ErrEmptySentence is returned when asked to parse blank text.
	ErrEmptySentence = errors.New("empty sentence")
)

// Parser analyzes one sentence.
type Parser interface {
	// Parse returns the analysis of sentence.
	Parse(ctx context.Context, sentence string) (*model.Parse, error)

	// Name returns the backend name recorded in model.Parse.Backend.
	Name() string
}

// New builds the configured parser, wrapped in a result cache when
// cfg.ParseCacheSize is positive.
func New(cfg *config.Config, logger *slog.Logger) (Parser, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		p   Parser
		err error
	)
	switch cfg.NLPBackend {
	case config.BackendProse:
		p = NewProseParser(cfg.NLPTimeout)
	case config.BackendCoreNLP:
		opts := []CoreNLPOption{WithTimeout(cfg.NLPTimeout), WithLogger(logger)}
		if cfg.CoreNLPUsername != "" {
			opts = append(opts, WithBasicAuth(cfg.CoreNLPUsername, cfg.CoreNLPPassword))
		}
		p, err = NewCoreNLPClient(cfg.CoreNLPURL, opts...)
		if err != nil {
			return nil, err
		}
	case config.BackendNone:
		return disabledParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.NLPBackend)
	}

	if cfg.ParseCacheSize > 0 {
		return NewCachedParser(p, cfg.ParseCacheSize, logger)
	}
	return p, nil
}

type disabledParser struct{}

func (disabledParser) Parse(context.Context, string) (*model.Parse, error) {
	return nil, ErrDisabled
}

func (disabledParser) Name() string { return config.BackendNone }
