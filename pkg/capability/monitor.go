// Package capability resolves the AI chat backend once it becomes usable.
//
// A Monitor repeatedly runs a presence probe on a backoff schedule until the
// probe hands back a chat handle. From then on the monitor is ready for good
// and the handle can be fetched or awaited by any number of readers.
package capability

import (
	"context"
	"errors"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/pluqqy/pluqqy-convert/pkg/ai"
	"github.com/pluqqy/pluqqy-convert/pkg/models"
)

// Probe reports whether the backend is present and, if so, returns its handle.
// A probe must not call Chat; it only checks that the call path exists.
type Probe func() (ai.Chatter, bool)

var errNotPresent = errors.New("ai capability not present")

type Monitor struct {
	probe  Probe
	cfg    models.ReadinessSettings
	logger *zap.Logger

	mu      sync.Mutex
	handle  ai.Chatter
	ready   chan struct{}
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
}

func NewMonitor(probe Probe, cfg models.ReadinessSettings, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := models.DefaultSettings().Readiness
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaults.PollInterval
	}
	if cfg.MaxInterval < cfg.PollInterval {
		cfg.MaxInterval = cfg.PollInterval
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = defaults.Multiplier
	}
	return &Monitor{
		probe:  probe,
		cfg:    cfg,
		logger: logger,
		ready:  make(chan struct{}),
	}
}

// Static returns a monitor that is ready from the start with the given handle
func Static(handle ai.Chatter) *Monitor {
	m := NewMonitor(nil, models.ReadinessSettings{}, nil)
	m.resolve(handle)
	return m
}

// Start begins polling in the background. It is a no-op when the monitor is
// already polling, already ready, or has been stopped.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.cancel != nil || m.handle != nil || m.stopped || m.probe == nil {
		m.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	done := m.done
	m.mu.Unlock()

	go m.poll(ctx, done)
}

func (m *Monitor) poll(ctx context.Context, done chan struct{}) {
	defer close(done)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = m.cfg.PollInterval
	b.MaxInterval = m.cfg.MaxInterval
	b.Multiplier = m.cfg.Multiplier
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	attempts := 0
	operation := func() error {
		attempts++
		handle, ok := m.probe()
		if !ok || handle == nil {
			return errNotPresent
		}
		m.resolve(handle)
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		m.logger.Debug("capability polling stopped",
			zap.Int("attempts", attempts),
			zap.Error(err))
		return
	}
	m.logger.Info("AI capability ready", zap.Int("attempts", attempts))
}

// resolve records the handle the first time only
func (m *Monitor) resolve(handle ai.Chatter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handle != nil || handle == nil {
		return
	}
	m.handle = handle
	close(m.ready)
}

// Stop cancels any pending poll and waits for the polling goroutine to exit.
// It may be called at any time, more than once, and before Start.
func (m *Monitor) Stop() {
	m.mu.Lock()
	m.stopped = true
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Ready is closed once the capability has been detected
func (m *Monitor) Ready() <-chan struct{} {
	return m.ready
}

func (m *Monitor) IsReady() bool {
	select {
	case <-m.ready:
		return true
	default:
		return false
	}
}

// Handle returns the resolved chat handle, or false while not ready
func (m *Monitor) Handle() (ai.Chatter, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handle, m.handle != nil
}

// Wait blocks until the capability is ready or ctx is done
func (m *Monitor) Wait(ctx context.Context) (ai.Chatter, error) {
	select {
	case <-m.ready:
		handle, _ := m.Handle()
		return handle, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
