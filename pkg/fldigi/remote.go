package fldigi

import (
	"context"
	"fmt"

	"github.com/tlf-contrib/fldigilink/internal/domain"
)

// Remote is the remote-control capability the dispatcher, poller and
// corrector depend on. It is chosen once, when the Client is built:
// *Engine when remote control is configured, Disabled otherwise.
type Remote interface {
	Query(ctx context.Context, method string, args ...domain.Argument) (domain.Result, error)

	// Enabled is false for the no-op stub. Consumers then skip all work and
	// report success / no data.
	Enabled() bool

	// Describe is a short description for status lines.
	Describe() string
}

// Disabled is the Remote used when remote control is switched off.
type Disabled struct{}

// Query always fails with domain.ErrNotInitialized.
func (Disabled) Query(ctx context.Context, method string, args ...domain.Argument) (domain.Result, error) {
	return domain.Result{}, fmt.Errorf("%s: %w", method, domain.ErrNotInitialized)
}

// Enabled reports false.
func (Disabled) Enabled() bool { return false }

// Describe reports "disabled".
func (Disabled) Describe() string { return "disabled" }

var (
	_ Remote = (*Engine)(nil)
	_ Remote = Disabled{}
)
