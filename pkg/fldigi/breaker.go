package fldigi

// DefaultBreakerThreshold is the number of calls skipped after a transport
// fault before the next call is allowed through.
const DefaultBreakerThreshold = 10

// CircuitBreaker stops hammering an unreachable peer.
//
// After Trip, the next threshold calls to Allow return false; the call
// after that resets the breaker and returns true. A CircuitBreaker is not
// safe for concurrent use on its own; the Engine guards it with its lock.
type CircuitBreaker struct {
	threshold int
	tripped   bool
	skipped   int
}

// NewCircuitBreaker creates a breaker with the given threshold.
// A threshold <= 0 uses DefaultBreakerThreshold.
func NewCircuitBreaker(threshold int) *CircuitBreaker {
	if threshold <= 0 {
		threshold = DefaultBreakerThreshold
	}
	return &CircuitBreaker{threshold: threshold}
}

// Allow reports whether a call may attempt the transport, counting skipped
// attempts while tripped.
func (b *CircuitBreaker) Allow() bool {
	if !b.tripped {
		return true
	}
	if b.skipped == b.threshold {
		b.tripped = false
		b.skipped = 0
		return true
	}
	b.skipped++
	return false
}

// Trip opens the breaker after a transport fault.
func (b *CircuitBreaker) Trip() {
	b.tripped = true
	b.skipped = 0
}

// Tripped reports whether the breaker is open.
func (b *CircuitBreaker) Tripped() bool { return b.tripped }

// Skipped returns the number of calls skipped since the last trip.
func (b *CircuitBreaker) Skipped() int { return b.skipped }
