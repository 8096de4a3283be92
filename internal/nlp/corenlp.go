package nlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nao1215/corpusscope/internal/config"
	"github.com/nao1215/corpusscope/internal/model"
)

// ErrCoreNLP is returned when the CoreNLP server answers with an error.
var ErrCoreNLP = errors.New("corenlp server error")

// coreNLPProperties requests the annotations the sentence view shows.
const coreNLPProperties = `{"annotators":"tokenize,ssplit,pos,lemma,ner,depparse","outputFormat":"json","ssplit.isOneSentence":"true"}`

// maxResponseSize caps the CoreNLP response body.
const maxResponseSize = 8 << 20

// CoreNLPClient parses sentences with a Stanford CoreNLP server.
type CoreNLPClient struct {
	endpoint string
	client   *http.Client
	username string
	password string
	timeout  time.Duration
	logger   *slog.Logger
}

// CoreNLPOption configures a CoreNLPClient.
type CoreNLPOption func(*CoreNLPClient)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) CoreNLPOption {
	return func(cl *CoreNLPClient) {
		cl.client = c
	}
}

// WithBasicAuth sets the credentials of a server started with
// -username and -password.
func WithBasicAuth(username, password string) CoreNLPOption {
	return func(cl *CoreNLPClient) {
		cl.username = username
		cl.password = password
	}
}

// WithTimeout bounds each parse request.
func WithTimeout(d time.Duration) CoreNLPOption {
	return func(cl *CoreNLPClient) {
		cl.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) CoreNLPOption {
	return func(cl *CoreNLPClient) {
		cl.logger = l
	}
}

// NewCoreNLPClient creates a client for the server at baseURL.
func NewCoreNLPClient(baseURL string, opts ...CoreNLPOption) (*CoreNLPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid corenlp url %q", baseURL)
	}
	q := u.Query()
	q.Set("properties", coreNLPProperties)
	u.RawQuery = q.Encode()
	if u.Path == "" {
		u.Path = "/"
	}

	c := &CoreNLPClient{
		endpoint: u.String(),
		client:   http.DefaultClient,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name implements Parser.
func (c *CoreNLPClient) Name() string { return config.BackendCoreNLP }

// Parse implements Parser.
func (c *CoreNLPClient) Parse(ctx context.Context, sentence string) (*model.Parse, error) {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return nil, ErrEmptySentence
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(sentence))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Accept", "application/json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("corenlp request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("corenlp response: %w", err)
	}
	c.logger.Debug("corenlp parse", "status", resp.StatusCode, "elapsed", time.Since(start), "sentence", sentence)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: %s", ErrCoreNLP, resp.Status, strings.TrimSpace(string(body)))
	}

	var doc coreNLPDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %w", ErrCoreNLP, err)
	}
	return doc.toParse(sentence, c.Name()), nil
}

// coreNLPDocument is the subset of the CoreNLP JSON output that is used.
type coreNLPDocument struct {
	Sentences []struct {
		Tokens []struct {
			Index int    `json:"index"`
			Word  string `json:"word"`
			Lemma string `json:"lemma"`
			POS   string `json:"pos"`
			NER   string `json:"ner"`
		} `json:"tokens"`
		BasicDependencies []struct {
			Dep       string `json:"dep"`
			Governor  int    `json:"governor"`
			Dependent int    `json:"dependent"`
		} `json:"basicDependencies"`
		EntityMentions []struct {
			Text string `json:"text"`
			NER  string `json:"ner"`
		} `json:"entitymentions"`
	} `json:"sentences"`
}

// toParse flattens every sentence of the document into one token list.
// Token indexes of later sentences are shifted so they stay unique.
func (d *coreNLPDocument) toParse(sentence, backend string) *model.Parse {
	out := &model.Parse{Sentence: sentence, Backend: backend}
	offset := 0
	for _, s := range d.Sentences {
		first := len(out.Tokens)
		for _, t := range s.Tokens {
			out.Tokens = append(out.Tokens, model.Token{
				Index:  t.Index + offset,
				Text:   t.Word,
				Lemma:  t.Lemma,
				Tag:    t.POS,
				Entity: entityLabel(t.NER),
			})
		}
		for _, dep := range s.BasicDependencies {
			i := first + dep.Dependent - 1
			if i < first || i >= len(out.Tokens) {
				continue
			}
			head := 0
			if dep.Governor > 0 {
				head = dep.Governor + offset
				out.Arcs = append(out.Arcs, model.Arc{From: head, To: dep.Dependent + offset, Label: dep.Dep})
			}
			out.Tokens[i].Head = head
			out.Tokens[i].Dep = dep.Dep
		}
		for _, m := range s.EntityMentions {
			out.Entities = append(out.Entities, model.Entity{Text: m.Text, Label: m.NER})
		}
		offset += len(s.Tokens)
	}
	return out
}
