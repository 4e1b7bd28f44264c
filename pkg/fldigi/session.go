package fldigi

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/tlf-contrib/fldigilink/internal/ports"
)

// ServerEndpoint is the resolved address of the remote peer.
// No query may run while the endpoint is not ready.
type ServerEndpoint struct {
	Address string
	ready   bool
}

// Ready reports whether the endpoint was resolved successfully.
func (e ServerEndpoint) Ready() bool { return e.ready }

// Session owns the endpoint and the transport caller. It is created once
// and closed once.
type Session struct {
	mu        sync.RWMutex
	id        string
	transport string
	endpoint  ServerEndpoint
	caller    ports.Caller
}

// OpenSession resolves address and dials it with the named transport.
//
// The returned Session is never nil. When resolution or dialing fails the
// error is returned alongside a session that stays not ready, so every
// query through it fails with domain.ErrNotInitialized.
func OpenSession(transport, address string, o dialOptions) (*Session, error) {
	s := &Session{
		id:        uuid.NewString(),
		transport: transport,
		endpoint:  ServerEndpoint{Address: address},
	}

	if err := validateAddress(address); err != nil {
		return s, err
	}
	caller, err := dial(transport, address, o)
	if err != nil {
		return s, fmt.Errorf("dial %s: %w", address, err)
	}

	s.caller = caller
	s.endpoint.ready = true
	return s, nil
}

// NewSessionWithCaller creates a ready session around an existing caller.
func NewSessionWithCaller(address string, caller ports.Caller) *Session {
	return &Session{
		id:        uuid.NewString(),
		transport: "custom",
		endpoint:  ServerEndpoint{Address: address, ready: caller != nil},
		caller:    caller,
	}
}

// ID returns the random identifier used to correlate log lines.
func (s *Session) ID() string { return s.id }

// Transport returns the transport name the session was opened with.
func (s *Session) Transport() string { return s.transport }

// Endpoint returns a copy of the endpoint.
func (s *Session) Endpoint() ServerEndpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.endpoint
}

// Ready reports whether queries may run.
func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.endpoint.ready
}

// activeCaller returns the transport caller, or false if the session is not ready.
func (s *Session) activeCaller() (ports.Caller, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.endpoint.ready {
		return nil, false
	}
	return s.caller, true
}

// Close tears the session down. Later calls are no-ops.
func (s *Session) Close() error {
	s.mu.Lock()
	caller := s.caller
	s.caller = nil
	s.endpoint.ready = false
	s.mu.Unlock()

	if caller == nil {
		return nil
	}
	return caller.Close()
}

func validateAddress(address string) error {
	u, err := url.Parse(address)
	if err != nil {
		return fmt.Errorf("parse url %q: %w", address, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url %q: scheme must be http or https", address)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q: missing host", address)
	}
	return nil
}
