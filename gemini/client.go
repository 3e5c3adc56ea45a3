package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/notionpub"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ notionpub.Summarizer = (*Client)(nil)

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("gemini: empty response")

// Client implements [notionpub.Summarizer] for the Google Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// Option configures a [Client].
type Option func(*clientOptions)

type clientOptions struct {
	model   string
	baseURL string
}

// WithModel sets the model ID. Default is gemini-2.5-flash.
func WithModel(model string) Option {
	return func(o *clientOptions) { o.model = model }
}

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(o *clientOptions) { o.baseURL = url }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	o := clientOptions{model: defaultModel}
	for _, opt := range opts {
		opt(&o)
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if o.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: o.baseURL}
	}
	gc, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return &Client{client: gc, model: o.model}, nil
}

// Summarize asks the model for a digest of content. The raw model text is
// returned; callers clean it with [notionpub.CleanDigest].
func (c *Client) Summarize(ctx context.Context, content string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(notionpub.DigestPrompt(content), genai.RoleUser),
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, BuildConfig())
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	text := ResponseText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// BuildConfig returns the generation settings used for summaries.
// Exported for testing.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(defaultTemperature)
	return &genai.GenerateContentConfig{
		MaxOutputTokens: defaultMaxTokens,
		Temperature:     &temp,
	}
}

// ResponseText joins the non-thought text parts of the first candidate.
// Exported for testing.
func ResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}
