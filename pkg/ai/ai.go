// Package ai defines the chat capability the converter delegates to.
package ai

import (
	"context"
	"errors"

	"github.com/pluqqy/pluqqy-convert/pkg/normalize"
)

var (
	ErrUnauthorized = errors.New("ai unauthorized")
	ErrUnavailable  = errors.New("ai unavailable")
	ErrRateLimited  = errors.New("ai rate limited")
)

// Chatter sends a single prompt to a chat backend and returns its decoded reply
type Chatter interface {
	Chat(ctx context.Context, prompt string) (normalize.Response, error)
}

// ChatFunc adapts a plain function to the Chatter interface
type ChatFunc func(ctx context.Context, prompt string) (normalize.Response, error)

// Chat calls f(ctx, prompt)
func (f ChatFunc) Chat(ctx context.Context, prompt string) (normalize.Response, error) {
	return f(ctx, prompt)
}
