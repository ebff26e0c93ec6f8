package convert

import "sync"

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseConverting
)

func (p Phase) String() string {
	if p == PhaseConverting {
		return "converting"
	}
	return "idle"
}

// Machine holds the conversion phase and only allows the two legal transitions
type Machine struct {
	mu    sync.Mutex
	phase Phase
}

// Begin moves Idle to Converting. It fails with ErrBusy when a conversion is running.
func (m *Machine) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseIdle {
		return ErrBusy
	}
	m.phase = PhaseConverting
	return nil
}

// Finish moves Converting back to Idle. Calling it while Idle does nothing.
func (m *Machine) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phase = PhaseIdle
}

func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}
