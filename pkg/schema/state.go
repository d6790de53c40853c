package schema

import (
	"fmt"
	"time"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	StateUninitialized BridgeState = iota
	StateVerifyingBackend
	StateBackendReady
	StateConnectingProvider
	StateProviderReady
	StateReady
	StateDegraded // backend available, tools unavailable
	StateFailed
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// BridgeState enumerates the bridge lifecycle. Transitions are monotonic
// except degraded and failed, which are reachable from any state.
type BridgeState int

// StatusEvent is an immutable status record pushed to the observer. It
// carries either a state transition or free-form progress text.
type StatusEvent struct {
	Time   time.Time   `json:"time"`
	State  BridgeState `json:"state"`
	Detail string      `json:"detail,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewStatusEvent creates a status event timestamped now
func NewStatusEvent(state BridgeState, detail string) StatusEvent {
	return StatusEvent{
		Time:   time.Now(),
		State:  state,
		Detail: detail,
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (s BridgeState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateVerifyingBackend:
		return "verifying-backend"
	case StateBackendReady:
		return "backend-ready"
	case StateConnectingProvider:
		return "connecting-provider"
	case StateProviderReady:
		return "provider-ready"
	case StateReady:
		return "ready"
	case StateDegraded:
		return "degraded"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state %d", int(s))
}

// CanTransition reports whether moving from s to next is legal: forward
// along the setup sequence, or into degraded/failed from anywhere.
func (s BridgeState) CanTransition(next BridgeState) bool {
	if next == StateDegraded || next == StateFailed {
		return true
	}
	return next > s && next <= StateReady
}

// Usable reports whether the bridge accepts user turns in this state.
// Degraded is usable (plain conversation without tools); failed is not.
func (s BridgeState) Usable() bool {
	return s == StateReady || s == StateDegraded
}

func (e StatusEvent) String() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Time.Format(time.TimeOnly), e.State, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Time.Format(time.TimeOnly), e.State)
}
