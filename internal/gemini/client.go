// Package gemini wraps the Gemini API client for single-turn generation,
// both one-shot and streamed.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const (
	DefaultEndpoint   = "https://generativelanguage.googleapis.com/"
	DefaultModel      = "gemini-2.5-flash"
	DefaultAPIVersion = "v1beta"
)

var ErrBadStatus = errors.New("gemini returned an error status")

// Request is one single-turn exchange.
type Request struct {
	APIKey string
	System string
	Prompt string
}

// Client builds a genai client per request because the API key is resolved
// per call and may change at runtime.
type Client struct {
	http     *http.Client
	endpoint string
	model    string
}

func NewClient(httpClient *http.Client, endpoint, model string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{http: httpClient, endpoint: strings.TrimRight(endpoint, "/") + "/", model: model}
}

func (c *Client) newGenAI(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.http,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    c.endpoint,
			APIVersion: DefaultAPIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return client, nil
}

func contents(req Request) ([]*genai.Content, *genai.GenerateContentConfig) {
	msgs := []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: req.Prompt}}}}

	var cfg *genai.GenerateContentConfig
	if req.System != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.System}}},
		}
	}
	return msgs, cfg
}

// text joins the non-thought text parts of every candidate.
func text(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if p == nil || p.Thought {
				continue
			}
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

// mapError tags API error responses with ErrBadStatus.
func mapError(op string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %d %s", ErrBadStatus, apiErr.Code, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return fmt.Errorf("%w: %d %s", ErrBadStatus, apiErrPtr.Code, apiErrPtr.Message)
	}
	return fmt.Errorf("gemini %s: %w", op, err)
}

// Generate returns the whole answer at once.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	client, err := c.newGenAI(ctx, req.APIKey)
	if err != nil {
		return "", err
	}

	msgs, cfg := contents(req)
	resp, err := client.Models.GenerateContent(ctx, c.model, msgs, cfg)
	if err != nil {
		return "", mapError("generate", err)
	}
	return text(resp), nil
}

// Stream calls onChunk for every non-empty text increment and returns the
// concatenated answer. An error from onChunk stops the stream.
func (c *Client) Stream(ctx context.Context, req Request, onChunk func(string) error) (string, error) {
	client, err := c.newGenAI(ctx, req.APIKey)
	if err != nil {
		return "", err
	}

	var full strings.Builder
	msgs, cfg := contents(req)
	for resp, err := range client.Models.GenerateContentStream(ctx, c.model, msgs, cfg) {
		if err != nil {
			return full.String(), mapError("stream", err)
		}
		chunk := text(resp)
		if chunk == "" {
			continue
		}
		full.WriteString(chunk)
		if onChunk != nil {
			if err := onChunk(chunk); err != nil {
				return full.String(), err
			}
		}
	}
	return full.String(), nil
}
