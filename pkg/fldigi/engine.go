package fldigi

import (
	"context"
	"fmt"
	"sync"

	"github.com/tlf-contrib/fldigilink/internal/domain"
	"github.com/tlf-contrib/fldigilink/pkg/log"
)

// Engine runs remote queries over a single logical connection.
//
// One lock covers the whole query: readiness and breaker checks, argument
// marshaling, the transport call and result decoding. Concurrent callers
// queue on it without timeout, so at most one call is ever in flight.
type Engine struct {
	mu      sync.Mutex
	session *Session
	breaker *CircuitBreaker
	logger  log.Logger
}

// NewEngine creates an engine bound to session. A nil breaker gets the
// default threshold.
func NewEngine(session *Session, breaker *CircuitBreaker, logger log.Logger) *Engine {
	if breaker == nil {
		breaker = NewCircuitBreaker(DefaultBreakerThreshold)
	}
	return &Engine{
		session: session,
		breaker: breaker,
		logger: log.OrNoop(logger).With(
			log.Component("engine"),
			log.String("session", session.ID()),
		),
	}
}

// Query calls method with args and decodes the result.
//
// Errors wrap one of domain.ErrNotInitialized, domain.ErrCircuitOpen,
// domain.ErrArgMarshal, domain.ErrFault or domain.ErrDecodeTypeUnrecognized.
// A fault trips the breaker; the following calls fail fast with
// ErrCircuitOpen until the breaker lets one through again.
func (e *Engine) Query(ctx context.Context, method string, args ...domain.Argument) (domain.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Checked under the lock so a call queued behind Close never reaches
	// the transport.
	caller, ok := e.session.activeCaller()
	if !ok {
		return domain.Result{}, fmt.Errorf("%s: %w", method, domain.ErrNotInitialized)
	}

	// A caller that gave up while queued is not a peer fault.
	if err := ctx.Err(); err != nil {
		return domain.Result{}, fmt.Errorf("%s: %w", method, err)
	}

	wasTripped := e.breaker.Tripped()
	if !e.breaker.Allow() {
		return domain.Result{}, fmt.Errorf("%s: %w", method, domain.ErrCircuitOpen)
	}
	if wasTripped {
		e.logger.Info("circuit breaker reset, retrying remote", log.String("method", method))
	}

	params, err := marshalArgs(args)
	if err != nil {
		return domain.Result{}, fmt.Errorf("%s: %w", method, err)
	}

	reply, err := caller.Call(ctx, method, params)
	if err != nil {
		e.breaker.Trip()
		e.logger.Warn("remote call failed, circuit open",
			log.String("method", method),
			log.Err(err),
		)
		return domain.Result{}, fmt.Errorf("%s: %w: %w", method, domain.ErrFault, err)
	}

	res, err := decodeResult(reply)
	if err != nil {
		return domain.Result{}, fmt.Errorf("%s: %w", method, err)
	}

	e.logger.Debug("remote call",
		log.String("method", method),
		log.Int("args", len(args)),
		log.String("result", res.Kind.String()),
	)
	return res, nil
}

// Enabled reports true: the engine talks to a real peer.
func (e *Engine) Enabled() bool { return true }

// Describe names the transport and endpoint for status output.
func (e *Engine) Describe() string {
	return fmt.Sprintf("%s %s", e.session.Transport(), e.session.Endpoint().Address)
}

// BreakerTripped reports whether the circuit breaker is currently open.
func (e *Engine) BreakerTripped() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.breaker.Tripped()
}

// Session returns the session the engine queries through.
func (e *Engine) Session() *Session { return e.session }
