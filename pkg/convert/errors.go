package convert

import (
	"errors"

	"github.com/pluqqy/pluqqy-convert/pkg/feedback"
	"github.com/pluqqy/pluqqy-convert/pkg/normalize"
)

var (
	ErrEmptyInput    = errors.New("please enter some code to convert")
	ErrNotReady      = errors.New("AI is not ready yet")
	ErrBusy          = errors.New("a conversion is already in progress")
	ErrNothingToCopy = errors.New("no converted code to copy")

	ErrUnsupportedLanguage = errors.New("unsupported target language")
)

// ErrEmptyResponse is re-exported so callers only need this package
var ErrEmptyResponse = normalize.ErrEmptyResponse

// RequestError wraps a failure raised by the chat backend. Its message is the
// backend's message unchanged.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// OutcomeFor classifies an error returned by the controller for the presenter
func OutcomeFor(err error) feedback.Outcome {
	switch {
	case err == nil:
		return feedback.OutcomeSuccess
	case errors.Is(err, ErrEmptyInput):
		return feedback.OutcomeEmptyInput
	case errors.Is(err, ErrNotReady):
		return feedback.OutcomeNotReady
	default:
		return feedback.OutcomeFailure
	}
}
