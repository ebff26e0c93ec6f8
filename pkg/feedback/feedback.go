// Package feedback maps conversion outcomes to the status line shown to the user.
package feedback

import "fmt"

type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeEmptyInput
	OutcomeNotReady
	OutcomeSuccess
	OutcomeCopied
	OutcomeFailure
)

// Message is a status line with its severity. The zero value means no message.
type Message struct {
	Text     string
	Severity Severity
}

func (m Message) IsZero() bool {
	return m.Text == ""
}

// Initializing is the hint shown while the AI backend is still being detected
var Initializing = Message{Text: "Initializing AI... please wait", Severity: SeverityInfo}

// Present returns the message for an outcome. err is only read for OutcomeFailure.
func Present(outcome Outcome, err error) Message {
	switch outcome {
	case OutcomeEmptyInput:
		return Message{Text: "⚠️ Please enter some code to convert.", Severity: SeverityWarning}
	case OutcomeNotReady:
		return Message{Text: "⚡ AI is not ready yet. Please wait a few seconds.", Severity: SeverityWarning}
	case OutcomeSuccess:
		return Message{Text: "✅ Conversion successful!", Severity: SeveritySuccess}
	case OutcomeCopied:
		return Message{Text: "📄 Code copied to clipboard!", Severity: SeveritySuccess}
	case OutcomeFailure:
		reason := "unknown error"
		if err != nil {
			reason = err.Error()
		}
		return Message{Text: fmt.Sprintf("❌ Error: %s", reason), Severity: SeverityError}
	}
	return Message{}
}
