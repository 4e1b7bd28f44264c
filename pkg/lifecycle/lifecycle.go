package lifecycle

// State is where a background loop is in its start/stop cycle.
type State int

const (
	// StateStopped is the initial state and the state after a clean stop.
	StateStopped State = iota
	// StateStarting covers plugin initialization before the loop runs.
	StateStarting
	// StateRunning means the loop goroutine is polling.
	StateRunning
	// StateStopping is entered when a stop cancels the loop.
	StateStopping
	// StateCrashed follows a failed start or a stop that timed out.
	// A new start is allowed from here.
	StateCrashed
)

var stateNames = [...]string{
	StateStopped:  "Stopped",
	StateStarting: "Starting",
	StateRunning:  "Running",
	StateStopping: "Stopping",
	StateCrashed:  "Crashed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// EventEmitter receives every accepted transition, after the state has
// changed and outside the manager's lock.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
}
