package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/pluqqy/pluqqy-convert/pkg/capability"
	"github.com/pluqqy/pluqqy-convert/pkg/clip"
	"github.com/pluqqy/pluqqy-convert/pkg/convert"
	"github.com/pluqqy/pluqqy-convert/pkg/models"
)

const (
	inputPane = iota
	outputPane
)

// Options wires the converter view to its collaborators
type Options struct {
	Controller *convert.Controller
	Monitor    *capability.Monitor
	Clipboard  clip.Clipboard
	Settings   *models.Settings
	Logger     *zap.Logger
}

// App is the interactive converter: source editor on the left, converted
// code on the right, status line and help below.
type App struct {
	ctx        context.Context
	controller *convert.Controller
	monitor    *capability.Monitor
	clipboard  clip.Clipboard
	settings   *models.Settings
	logger     *zap.Logger

	input   textarea.Model
	output  viewport.Model
	spinner spinner.Model
	code    *codeRenderer

	// language of the result currently shown
	resultLang models.Language

	activePane int
	width      int
	height     int
}

// readyMsg is sent once the AI backend has been detected
type readyMsg struct{}

// conversionDoneMsg carries the outcome of one attempt back to the UI loop
type conversionDoneMsg struct {
	attempt string
	result  string
	err     error
}

func NewApp(ctx context.Context, opts Options) *App {
	if opts.Settings == nil {
		opts.Settings = models.DefaultSettings()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clip.System{}
	}

	ta := textarea.New()
	ta.Placeholder = "Paste the code to convert..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = true
	ta.SetWidth(60)
	ta.SetHeight(20)
	ta.SetValue(opts.Controller.Source())
	ta.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	code := newCodeRenderer(opts.Settings.UI.Highlight)
	code.setWidth(58)

	return &App{
		ctx:        ctx,
		controller: opts.Controller,
		monitor:    opts.Monitor,
		clipboard:  opts.Clipboard,
		settings:   opts.Settings,
		logger:     opts.Logger,
		input:      ta,
		output:     viewport.New(60, 20),
		spinner:    s,
		code:       code,
		resultLang: opts.Controller.Target(),
		activePane: inputPane,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, a.waitForReady())
}

func (a *App) waitForReady() tea.Cmd {
	if a.monitor == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-a.monitor.Ready():
			return readyMsg{}
		case <-a.ctx.Done():
			return nil
		}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateViewportSizes()
		return a, nil

	case readyMsg:
		a.logger.Debug("AI capability reported ready to UI")
		return a, nil

	case conversionDoneMsg:
		if msg.err != nil {
			a.logger.Debug("conversion attempt ended with error", zap.String("attempt_id", msg.attempt), zap.Error(msg.err))
		}
		a.refreshOutput()
		a.output.GotoTop()
		return a, nil

	case spinner.TickMsg:
		if a.converting() {
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit

		case "ctrl+r":
			if !a.canConvert() {
				return a, nil
			}
			return a, a.startConversion()

		case "ctrl+x":
			if a.converting() {
				return a, nil
			}
			a.reset()
			return a, nil

		case "ctrl+y":
			a.copyResult()
			return a, nil

		case "ctrl+t":
			a.controller.SetTarget(a.controller.Target().Next())
			return a, nil

		case "ctrl+g":
			a.controller.SetTarget(a.controller.Target().Prev())
			return a, nil

		case "tab":
			a.switchPane()
			return a, nil
		}

		if a.activePane == outputPane {
			a.output, cmd = a.output.Update(msg)
			return a, cmd
		}
		// The source is locked while a request is in flight
		if a.converting() {
			return a, nil
		}
		a.input, cmd = a.input.Update(msg)
		a.controller.SetSource(a.input.Value())
		return a, cmd
	}

	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) converting() bool {
	return a.controller.Phase() == convert.PhaseConverting
}

// canConvert mirrors the disabled state of the convert control: it needs a
// detected backend and no request in flight.
func (a *App) canConvert() bool {
	return !a.converting() && a.controller.Ready()
}

// startConversion dispatches a request. Precondition failures only update
// the status line.
func (a *App) startConversion() tea.Cmd {
	attempt, err := a.controller.Start(a.input.Value(), a.controller.Target())
	if err != nil {
		a.logger.Debug("conversion not started", zap.Error(err))
		return nil
	}
	a.resultLang = attempt.Target
	a.refreshOutput()
	return tea.Batch(a.spinner.Tick, a.runAttempt(attempt))
}

func (a *App) runAttempt(attempt *convert.Attempt) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		result, err := attempt.Run(ctx)
		return conversionDoneMsg{attempt: attempt.ID, result: result, err: err}
	}
}

func (a *App) reset() {
	if err := a.controller.Reset(); err != nil {
		return
	}
	a.input.SetValue(a.controller.Source())
	a.refreshOutput()
}

func (a *App) copyResult() {
	err := a.controller.Copy(a.clipboard)
	if err != nil && !errors.Is(err, convert.ErrNothingToCopy) {
		a.logger.Warn("copy to clipboard failed", zap.Error(err))
	}
}

func (a *App) switchPane() {
	if a.activePane == inputPane {
		a.activePane = outputPane
		a.input.Blur()
		return
	}
	a.activePane = inputPane
	a.input.Focus()
}
