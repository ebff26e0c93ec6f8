// Package gemini adapts Google's Gemini API to the ai.Chatter interface.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/pluqqy/pluqqy-convert/pkg/normalize"
)

const DefaultModel = "gemini-2.5-flash"

type Client struct {
	client *genai.Client
	model  string
}

// NewClient builds a Gemini API client. No request is made until Chat.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

func (c *Client) Chat(ctx context.Context, prompt string) (normalize.Response, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return normalize.Response{}, fmt.Errorf("gemini generate failed: %w", err)
	}
	return fromGenerateResponse(result), nil
}

// fromGenerateResponse maps the first candidate onto the reply union.
// One text part is single content, several are fragments. Thought parts are dropped.
func fromGenerateResponse(result *genai.GenerateContentResponse) normalize.Response {
	if result == nil || len(result.Candidates) == 0 {
		return normalize.Response{}
	}
	candidate := result.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return normalize.Response{}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		parts = append(parts, part.Text)
	}

	switch len(parts) {
	case 0:
		return normalize.Response{}
	case 1:
		return normalize.SingleContent(parts[0])
	default:
		return normalize.FragmentList(parts...)
	}
}
