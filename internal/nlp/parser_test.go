package nlp

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/corpusscope/internal/config"
	"github.com/nao1215/corpusscope/internal/model"
)

type countingParser struct {
	calls atomic.Int32
	err   error
}

func (p *countingParser) Parse(_ context.Context, sentence string) (*model.Parse, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return &model.Parse{Sentence: sentence, Backend: "counting"}, nil
}

func (p *countingParser) Name() string { return "counting" }

func TestCachedParser(t *testing.T) {
	t.Parallel()

	t.Run("second parse is served from the cache", func(t *testing.T) {
		t.Parallel()
		next := &countingParser{}
		c, err := NewCachedParser(next, 2, nil)
		require.NoError(t, err)

		first, err := c.Parse(t.Context(), "A sentence.")
		require.NoError(t, err)
		second, err := c.Parse(t.Context(), "A sentence.")
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, int32(1), next.calls.Load())
		assert.Equal(t, "counting", c.Name())
	})

	t.Run("least recently used entry is evicted", func(t *testing.T) {
		t.Parallel()
		next := &countingParser{}
		c, err := NewCachedParser(next, 2, nil)
		require.NoError(t, err)

		for _, s := range []string{"one", "two", "three", "one"} {
			_, err := c.Parse(t.Context(), s)
			require.NoError(t, err)
		}
		assert.Equal(t, int32(4), next.calls.Load())
		assert.Equal(t, 2, c.Len())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		next := &countingParser{err: boom}
		c, err := NewCachedParser(next, 2, nil)
		require.NoError(t, err)

		_, err = c.Parse(t.Context(), "x")
		require.ErrorIs(t, err, boom)
		_, err = c.Parse(t.Context(), "x")
		require.ErrorIs(t, err, boom)
		assert.Equal(t, int32(2), next.calls.Load())
		assert.Zero(t, c.Len())
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("none backend is disabled", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.NLPBackend = config.BackendNone
		p, err := New(cfg, nil)
		require.NoError(t, err)
		_, err = p.Parse(t.Context(), "x")
		require.ErrorIs(t, err, ErrDisabled)
	})

	t.Run("prose backend is cached", func(t *testing.T) {
		t.Parallel()
		p, err := New(config.NewConfig(), nil)
		require.NoError(t, err)
		_, ok := p.(*CachedParser)
		assert.True(t, ok)
		assert.Equal(t, config.BackendProse, p.Name())
	})

	t.Run("corenlp backend without cache", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.NLPBackend = config.BackendCoreNLP
		cfg.ParseCacheSize = 0
		p, err := New(cfg, nil)
		require.NoError(t, err)
		_, ok := p.(*CoreNLPClient)
		assert.True(t, ok)
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.NLPBackend = "spacy"
		_, err := New(cfg, nil)
		require.ErrorIs(t, err, config.ErrUnknownBackend)
	})
}

func TestProseParser(t *testing.T) {
	t.Parallel()

	p := NewProseParser(time.Minute)
	parse, err := p.Parse(t.Context(), "Rome fell in 476.")
	require.NoError(t, err)

	assert.Equal(t, "prose", parse.Backend)
	require.GreaterOrEqual(t, len(parse.Tokens), 4)
	assert.Equal(t, "Rome", parse.Tokens[0].Text)
	assert.Equal(t, 1, parse.Tokens[0].Index)
	assert.NotEmpty(t, parse.Tokens[0].Tag)
	assert.Empty(t, parse.Arcs)

	_, err = p.Parse(t.Context(), "")
	require.ErrorIs(t, err, ErrEmptySentence)
}

func TestProseParserCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := NewProseParser(0).Parse(ctx, "Rome fell in 476.")
	require.ErrorIs(t, err, context.Canceled)
}
