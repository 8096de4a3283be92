package nlp

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nao1215/corpusscope/internal/model"
)

// CachedParser memoizes another parser's results. Errors are not cached.
type CachedParser struct {
	next   Parser
	cache  *lru.Cache[string, *model.Parse]
	logger *slog.Logger
}

// NewCachedParser wraps next with an LRU cache of size entries.
func NewCachedParser(next Parser, size int, logger *slog.Logger) (*CachedParser, error) {
	cache, err := lru.New[string, *model.Parse](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse cache: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedParser{next: next, cache: cache, logger: logger}, nil
}

// Name implements Parser.
func (c *CachedParser) Name() string { return c.next.Name() }

// Parse implements Parser.
func (c *CachedParser) Parse(ctx context.Context, sentence string) (*model.Parse, error) {
	if p, ok := c.cache.Get(sentence); ok {
		c.logger.Debug("parse cache hit", "backend", c.Name())
		return p, nil
	}
	p, err := c.next.Parse(ctx, sentence)
	if err != nil {
		return nil, err
	}
	c.cache.Add(sentence, p)
	return p, nil
}

// Len returns the number of cached parses.
func (c *CachedParser) Len() int {
	return c.cache.Len()
}
