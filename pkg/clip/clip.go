// Package clip writes converted code to the system clipboard.
package clip

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

var ErrUnsupported = errors.New("no clipboard utility available")

type Clipboard interface {
	WriteText(text string) error
}

// Available reports ErrUnsupported when no clipboard utility was found
func Available() error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return nil
}

// System is the OS clipboard
type System struct{}

func (System) WriteText(text string) error {
	if err := Available(); err != nil {
		return err
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// Memory keeps the last written text. Useful when no system clipboard exists.
type Memory struct {
	Text   string
	Writes int
}

func (m *Memory) WriteText(text string) error {
	m.Text = text
	m.Writes++
	return nil
}
