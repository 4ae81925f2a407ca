// Package states implements game state management.
package states

import "go.uber.org/zap"

// State represents one phase of a level (wait, play, cleanup, setup).
type State interface {
	// Name identifies the state in logs.
	Name() string

	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every frame.
	Update(dt float64) error
}

// Manager manages game state transitions.
type Manager struct {
	current State
	next    State
	log     *zap.Logger
}

// NewManager creates a new state manager.
func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{log: log}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change. It takes effect on the next Update, so a
// state may request it from its own Update.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes state changes and updates current state.
func (m *Manager) Update(dt float64) error {
	if m.next != nil {
		from := "none"
		if m.current != nil {
			from = m.current.Name()
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		m.log.Info("state changed", zap.String("from", from), zap.String("to", m.current.Name()))
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(dt)
	}
	return nil
}
