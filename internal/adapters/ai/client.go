// Package ai wraps the generative-AI collaborator used for leader
// discovery, comparisons, dashboard insights and promise verification.
//
// Every call carries an explicit timeout. Text operations never fail
// hard: they return a tagged degraded answer with canned content.
// Structured operations return an error the async worker can log and
// retry.
package ai

import (
	"context"
	"time"

	"google.golang.org/genai"

	"github.com/accountable-india/civicrank/pkg/logger"
)

// Default client configuration constants.
const (
	DefaultModel   = "gemini-2.0-flash"
	defaultTimeout = 30 * time.Second
)

// Source is a grounding citation returned alongside generated text.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Answer is a free-text result with its citations. Degraded marks a
// canned fallback produced because the collaborator failed, so callers
// and tests can tell fallback content from real output.
type Answer struct {
	Text     string   `json:"text"`
	Sources  []Source `json:"sources"`
	Degraded bool     `json:"degraded"`
}

// Generator abstracts the underlying model call so tests can substitute
// a double.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTimeout bounds each collaborator call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// Client issues prompt requests to the collaborator and parses the
// text or JSON payloads it returns.
type Client struct {
	gen     Generator
	model   string
	timeout time.Duration
	log     logger.Logger
}

// New creates a client backed by the Gemini API.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return NewFromGenerator(&genaiGenerator{client: gc}, opts...), nil
}

// NewFromGenerator creates a client over an arbitrary generator. Tests
// use this to inject a double.
func NewFromGenerator(gen Generator, opts ...Option) *Client {
	c := &Client{
		gen:     gen,
		model:   DefaultModel,
		timeout: defaultTimeout,
		log:     logger.Get().Named("ai"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// genaiGenerator adapts the real SDK client to the Generator interface.
type genaiGenerator struct {
	client *genai.Client
}

func (g *genaiGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.client.Models.GenerateContent(ctx, model, contents, config)
}

// generate runs one bounded model call.
func (c *Client) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := c.gen.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, err
	}
	if resp.Text() == "" {
		return nil, ErrEmptyResponse
	}
	return resp, nil
}

// groundingSources extracts the {uri, title} citations from a grounded
// response. Chunks without both fields are dropped.
func groundingSources(resp *genai.GenerateContentResponse) []Source {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var sources []Source
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" || chunk.Web.Title == "" {
			continue
		}
		sources = append(sources, Source{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return sources
}

// searchTools enables search grounding on a request.
func searchTools() []*genai.Tool {
	return []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
}
