package status

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/fyndhq/fynd/internal/bus"
)

// State represents the chat connection state.
type State string

const (
	// Idle means no socket exists.
	Idle State = "idle"
	// Connecting means a socket is opening.
	Connecting State = "connecting"
	// Connected means the socket is open and ready to send.
	Connected State = "connected"
	// Failed means the socket reported a failure.
	Failed State = "error"
)

// validTransitions defines allowed state transitions. Any state may be
// forced back to Idle by an explicit disable or socket close; a failed
// connection returns to Connecting on the next enable cycle.
var validTransitions = map[State][]State{
	Idle:       {Connecting},
	Connecting: {Connected, Failed, Idle},
	Connected:  {Failed, Idle},
	Failed:     {Connecting, Idle},
}

// Machine tracks and enforces chat connection state transitions.
// Exactly one instance exists per open chat window.
type Machine struct {
	mu      sync.RWMutex
	current State
	bus     *bus.Bus
}

// NewMachine creates a new state machine starting in Idle state.
func NewMachine(b *bus.Bus) *Machine {
	return &Machine{
		current: Idle,
		bus:     b,
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Transition attempts to move to a new state. Returns error if transition is invalid.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == to {
		return nil
	}
	allowed := validTransitions[m.current]
	if !slices.Contains(allowed, to) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, to)
	}
	from := m.current
	m.current = to
	if m.bus != nil {
		m.bus.Publish(bus.Event{
			Kind:      "chat.status_changed",
			Timestamp: time.Now(),
			Payload: Change{
				From: from,
				To:   to,
			},
		})
	}
	return nil
}

// Change is the payload for status change events.
type Change struct {
	From State
	To   State
}
