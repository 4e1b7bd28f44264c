// Package lifecycle provides the start/stop state machine for background
// loops such as the fldigi receive monitor.
//
// A [Manager] tracks the current State, validates transitions, notifies an
// optional EventEmitter, and counts the worker goroutines that must finish
// before a stop completes.
//
//	m := lifecycle.NewManager(logger, emitter)
//	if !m.CanStart() {
//	    return lifecycle.ErrAlreadyRunning
//	}
//	_ = m.TransitionTo(lifecycle.StateStarting, "start requested")
//	m.AddWorker()
//	go func() { defer m.WorkerDone(); run(ctx) }()
//	_ = m.TransitionTo(lifecycle.StateRunning, "started")
//
// # State Machine
//
// Valid state transitions:
//   - Stopped -> Starting
//   - Starting -> Running, Stopping, Crashed
//   - Running -> Stopping, Crashed
//   - Stopping -> Stopped, Crashed
//   - Crashed -> Starting, Stopped
package lifecycle
