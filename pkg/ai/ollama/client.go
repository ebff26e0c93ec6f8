// Package ollama talks to a local Ollama server's chat endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pluqqy/pluqqy-convert/pkg/ai"
	"github.com/pluqqy/pluqqy-convert/pkg/normalize"
)

const DefaultBaseURL = "http://localhost:11434"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// Client implements ai.Chatter against /api/chat with streaming disabled
type Client struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewClient(baseURL, model string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Chat sends prompt as a single user message. The reply body is decoded as is,
// so Ollama's {"message":{"content":...}} lands in the single-content variant.
func (c *Client) Chat(ctx context.Context, prompt string) (normalize.Response, error) {
	payload := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return normalize.Response{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return normalize.Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return normalize.Response{}, err
	}
	defer resp.Body.Close()
	if err := ai.CheckResponse(resp); err != nil {
		return normalize.Response{}, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return normalize.Response{}, fmt.Errorf("failed to read ollama response: %w", err)
	}
	return normalize.DecodeJSON(data)
}
