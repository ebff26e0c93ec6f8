// Package openai talks to OpenAI-compatible chat-completions endpoints.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pluqqy/pluqqy-convert/pkg/ai"
	"github.com/pluqqy/pluqqy-convert/pkg/normalize"
)

const DefaultBaseURL = "https://api.openai.com"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Chat returns the first choice's message content as single content.
// A reply without choices decodes to an unknown response.
func (c *Client) Chat(ctx context.Context, prompt string) (normalize.Response, error) {
	payload := chatCompletionRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return normalize.Response{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return normalize.Response{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return normalize.Response{}, err
	}
	defer resp.Body.Close()
	if err := ai.CheckResponse(resp); err != nil {
		return normalize.Response{}, err
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return normalize.Response{}, err
	}
	if len(decoded.Choices) == 0 || decoded.Choices[0].Message.Content == nil {
		return normalize.Response{}, nil
	}
	return normalize.SingleContent(*decoded.Choices[0].Message.Content), nil
}
