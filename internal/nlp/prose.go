package nlp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jdkato/prose/v2"

	"github.com/nao1215/corpusscope/internal/config"
	"github.com/nao1215/corpusscope/internal/model"
)

// ProseParser tags and chunks sentences in process with jdkato/prose.
// prose has no dependency parser, so every token is its own root and no
// arcs are produced.
type ProseParser struct {
	timeout time.Duration
}

// NewProseParser creates a ProseParser. A positive timeout bounds each parse.
func NewProseParser(timeout time.Duration) *ProseParser {
	return &ProseParser{timeout: timeout}
}

// Name implements Parser.
func (p *ProseParser) Name() string { return config.BackendProse }

type proseResult struct {
	parse *model.Parse
	err   error
}

// Parse implements Parser. prose does not take a context, so the
// document is built on its own goroutine and abandoned on cancellation.
func (p *ProseParser) Parse(ctx context.Context, sentence string) (*model.Parse, error) {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return nil, ErrEmptySentence
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("prose parse: %w", err)
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	done := make(chan proseResult, 1)
	go func() {
		parse, err := p.parse(sentence)
		done <- proseResult{parse: parse, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("prose parse: %w", ctx.Err())
	case r := <-done:
		return r.parse, r.err
	}
}

func (p *ProseParser) parse(sentence string) (*model.Parse, error) {
	doc, err := prose.NewDocument(sentence, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("prose parse: %w", err)
	}

	out := &model.Parse{Sentence: sentence, Backend: p.Name()}
	for i, tok := range doc.Tokens() {
		out.Tokens = append(out.Tokens, model.Token{
			Index:  i + 1,
			Text:   tok.Text,
			Tag:    tok.Tag,
			Entity: entityLabel(tok.Label),
		})
	}
	for _, ent := range doc.Entities() {
		out.Entities = append(out.Entities, model.Entity{Text: ent.Text, Label: ent.Label})
	}
	return out, nil
}

// entityLabel strips the IOB prefix of a token label. "O" means no entity.
func entityLabel(label string) string {
	if label == "" || label == "O" {
		return ""
	}
	if i := strings.IndexByte(label, '-'); i == 1 {
		return label[2:]
	}
	return label
}
