// Package rig provides an in-memory ports.RigSource.
//
// The logging application (or the config watcher) pushes rig state in; the
// carrier corrector reads it on every poll.
package rig

import (
	"sync"

	"github.com/tlf-contrib/fldigilink/internal/domain"
)

// State is a concurrency-safe, settable rig context.
type State struct {
	mu  sync.RWMutex
	ctx domain.RigContext
}

// NewState creates a State with the given initial context.
func NewState(initial domain.RigContext) *State {
	return &State{ctx: initial}
}

// Rig returns the current rig context.
func (s *State) Rig() domain.RigContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctx
}

// Set replaces the rig context and reports whether it changed.
func (s *State) Set(ctx domain.RigContext) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.ctx != ctx
	s.ctx = ctx
	return changed
}

// SetMode updates the rig mode only.
func (s *State) SetMode(mode domain.RigMode) {
	s.mu.Lock()
	s.ctx.Mode = mode
	s.mu.Unlock()
}

// SetActive enables or disables rig control.
func (s *State) SetActive(active bool) {
	s.mu.Lock()
	s.ctx.Active = active
	s.mu.Unlock()
}
