// Package convert owns the conversion lifecycle: input validation, the single
// request to the chat backend, reply normalization and the resulting feedback.
package convert

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pluqqy/pluqqy-convert/pkg/ai"
	"github.com/pluqqy/pluqqy-convert/pkg/clip"
	"github.com/pluqqy/pluqqy-convert/pkg/feedback"
	"github.com/pluqqy/pluqqy-convert/pkg/models"
	"github.com/pluqqy/pluqqy-convert/pkg/normalize"
)

var ErrAttemptDone = errors.New("conversion attempt already run")

// Capability hands out the chat backend once it is ready.
// *capability.Monitor satisfies it.
type Capability interface {
	Handle() (ai.Chatter, bool)
}

// State is a point-in-time copy of everything a renderer needs
type State struct {
	Source   string
	Target   models.Language
	Result   string
	Phase    Phase
	Feedback feedback.Message
	Ready    bool
}

type Controller struct {
	capability Capability
	logger     *zap.Logger
	snippet    string
	machine    Machine

	mu       sync.Mutex
	source   string
	target   models.Language
	result   string
	feedback feedback.Message
}

type Option func(*Controller)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDefaultSnippet sets the source shown initially and restored by Reset
func WithDefaultSnippet(snippet string) Option {
	return func(c *Controller) {
		c.snippet = snippet
		c.source = snippet
	}
}

func WithLanguage(target models.Language) Option {
	return func(c *Controller) {
		if target.Valid() {
			c.target = target
		}
	}
}

func NewController(capability Capability, opts ...Option) *Controller {
	c := &Controller{
		capability: capability,
		logger:     zap.NewNop(),
		snippet:    models.DefaultSnippet,
		source:     models.DefaultSnippet,
		target:     models.Python,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Attempt is one dispatched conversion. Run must be called exactly once.
type Attempt struct {
	ID     string
	Target models.Language
	Prompt string

	c    *Controller
	chat ai.Chatter
	ran  atomic.Bool
}

// Start validates the request and, if it passes, enters the converting phase.
//
// An empty target keeps the current one; a target outside the supported set
// gives ErrUnsupportedLanguage and changes nothing else. The remaining checks
// run in order and stop at the first failure: blank source gives
// ErrEmptyInput, a backend that is not ready gives ErrNotReady, and a running
// conversion gives ErrBusy. No request is sent by Start.
func (c *Controller) Start(source string, target models.Language) (*Attempt, error) {
	if target != "" && !target.Valid() {
		err := fmt.Errorf("%w: %s", ErrUnsupportedLanguage, target)
		c.setFeedback(feedback.Present(feedback.OutcomeFailure, err))
		return nil, err
	}

	c.mu.Lock()
	c.source = source
	if target != "" {
		c.target = target
	}
	target = c.target
	c.mu.Unlock()

	if strings.TrimSpace(source) == "" {
		c.setFeedback(feedback.Present(feedback.OutcomeEmptyInput, nil))
		return nil, ErrEmptyInput
	}

	chat, ok := c.capability.Handle()
	if !ok {
		c.setFeedback(feedback.Present(feedback.OutcomeNotReady, nil))
		return nil, ErrNotReady
	}

	if err := c.machine.Begin(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.result = ""
	c.feedback = feedback.Message{}
	c.mu.Unlock()

	attempt := &Attempt{
		ID:     uuid.NewString(),
		Target: target,
		Prompt: BuildPrompt(source, target),
		c:      c,
		chat:   chat,
	}
	c.logger.Info("conversion started",
		zap.String("attempt", attempt.ID),
		zap.String("target", target.String()),
		zap.Int("source_bytes", len(source)))
	return attempt, nil
}

// Run sends the prompt, normalizes the reply and records the outcome.
// The phase is back to Idle when Run returns, whatever happened.
func (a *Attempt) Run(ctx context.Context) (string, error) {
	if !a.ran.CompareAndSwap(false, true) {
		return "", ErrAttemptDone
	}
	c := a.c
	defer c.machine.Finish()

	started := time.Now()
	resp, err := a.call(ctx)
	var result string
	if err == nil {
		result, err = normalize.Normalize(resp)
	}
	c.complete(a, resp.Kind, result, err, time.Since(started))
	if err != nil {
		return "", err
	}
	return result, nil
}

func (a *Attempt) call(ctx context.Context) (resp normalize.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = normalize.Response{}, &RequestError{Err: fmt.Errorf("%v", r)}
		}
	}()

	resp, err = a.chat.Chat(ctx, a.Prompt)
	if err != nil {
		return normalize.Response{}, &RequestError{Err: err}
	}
	return resp, nil
}

func (c *Controller) complete(a *Attempt, kind normalize.Kind, result string, err error, elapsed time.Duration) {
	c.mu.Lock()
	if err != nil {
		c.result = ""
		c.feedback = feedback.Present(feedback.OutcomeFailure, err)
	} else {
		c.result = result
		c.feedback = feedback.Present(feedback.OutcomeSuccess, nil)
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("conversion failed",
			zap.String("attempt", a.ID),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return
	}
	c.logger.Info("conversion finished",
		zap.String("attempt", a.ID),
		zap.String("reply_kind", kind.String()),
		zap.Int("result_bytes", len(result)),
		zap.Duration("elapsed", elapsed))
}

// Convert runs a whole attempt synchronously
func (c *Controller) Convert(ctx context.Context, source string, target models.Language) (string, error) {
	attempt, err := c.Start(source, target)
	if err != nil {
		return "", err
	}
	return attempt.Run(ctx)
}

// Reset restores the default snippet and clears the result and feedback.
// Readiness and phase are untouched; a running conversion makes it fail with ErrBusy.
func (c *Controller) Reset() error {
	if c.machine.Phase() == PhaseConverting {
		return ErrBusy
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.source = c.snippet
	c.result = ""
	c.feedback = feedback.Message{}
	return nil
}

// Copy writes the current result to the clipboard. Nothing is written when
// there is no result.
func (c *Controller) Copy(cb clip.Clipboard) error {
	result := c.Result()
	if result == "" {
		return ErrNothingToCopy
	}
	if err := cb.WriteText(result); err != nil {
		c.setFeedback(feedback.Present(feedback.OutcomeFailure, err))
		return err
	}
	c.setFeedback(feedback.Present(feedback.OutcomeCopied, nil))
	return nil
}

func (c *Controller) SetSource(source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.source = source
}

// SetTarget selects the target language. Languages outside the supported set
// are rejected and the current target is kept.
func (c *Controller) SetTarget(target models.Language) error {
	if !target.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedLanguage, target)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
	return nil
}

func (c *Controller) Source() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source
}

func (c *Controller) Target() models.Language {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *Controller) Result() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

func (c *Controller) Feedback() feedback.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.feedback
}

func (c *Controller) Phase() Phase {
	return c.machine.Phase()
}

func (c *Controller) Ready() bool {
	_, ok := c.capability.Handle()
	return ok
}

func (c *Controller) Snapshot() State {
	phase := c.machine.Phase()
	ready := c.Ready()

	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Source:   c.source,
		Target:   c.target,
		Result:   c.result,
		Phase:    phase,
		Feedback: c.feedback,
		Ready:    ready,
	}
}

func (c *Controller) setFeedback(msg feedback.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.feedback = msg
}
