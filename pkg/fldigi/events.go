package fldigi

import "github.com/tlf-contrib/fldigilink/pkg/lifecycle"

// State is the lifecycle state of the receive monitor.
type State = lifecycle.State

// Monitor states.
const (
	StateStopped  = lifecycle.StateStopped
	StateStarting = lifecycle.StateStarting
	StateRunning  = lifecycle.StateRunning
	StateStopping = lifecycle.StateStopping
	StateCrashed  = lifecycle.StateCrashed
)

// TextEvent carries newly received text.
type TextEvent struct {
	Text   string
	Cursor int
}

// CarrierShiftEvent is emitted when the carrier was recentered.
// Shift is the frequency change the rig VFO has to follow, in Hz.
type CarrierShiftEvent struct {
	Carrier int
	Shift   int
}

// StateChangeEvent is emitted on monitor lifecycle transitions.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// EventHandler receives monitor events. Methods are called synchronously
// from the monitor goroutine and should return quickly.
type EventHandler interface {
	OnText(TextEvent)
	OnCarrierShift(CarrierShiftEvent)
	OnStateChange(StateChangeEvent)
}

// BaseEventHandler implements EventHandler with no-ops. Embed it to handle
// only some events.
type BaseEventHandler struct{}

func (BaseEventHandler) OnText(TextEvent)                 {}
func (BaseEventHandler) OnCarrierShift(CarrierShiftEvent) {}
func (BaseEventHandler) OnStateChange(StateChangeEvent)   {}

// eventEmitterWrapper adapts EventHandler to lifecycle.EventEmitter.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current lifecycle.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: previous,
		Current:  current,
		Reason:   reason,
	})
}
