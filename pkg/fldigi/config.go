package fldigi

import (
	"errors"
	"fmt"
	"time"
)

// DefaultURL is fldigi's default XML-RPC endpoint.
const DefaultURL = "http://localhost:7362/RPC2"

// Defaults applied by Config.SetDefaults.
const (
	DefaultTimeout      = 10 * time.Second
	DefaultPollInterval = 500 * time.Millisecond
)

// Config holds the configuration of a Client.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// URL of the remote XML-RPC (or JSON-RPC) server.
	URL string

	// Transport is the registered transport name, "xmlrpc" by default.
	Transport string

	// Timeout bounds a single remote call.
	Timeout time.Duration

	// PollInterval is how often the monitor polls receive text and carrier.
	PollInterval time.Duration

	// SettleDelay is the pause after forcing the peer out of transmit.
	SettleDelay time.Duration

	// BreakerThreshold is the number of calls skipped after a fault.
	BreakerThreshold int

	// Rig is the initial rig context when no RigSource option is given.
	Rig RigContext

	// Disabled turns remote control off. The client then does nothing and
	// reports no data.
	Disabled bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills zero fields with defaults.
func (c *Config) SetDefaults() {
	if c.URL == "" {
		c.URL = DefaultURL
	}
	if c.Transport == "" {
		c.Transport = DefaultTransport
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = DefaultSettleDelay
	}
	if c.BreakerThreshold <= 0 {
		c.BreakerThreshold = DefaultBreakerThreshold
	}
}

// Validate checks the configuration. Address problems are not errors here:
// a bad URL leaves the session not ready, like an unreachable peer.
func (c Config) Validate() error {
	var errs []error
	if c.Disabled {
		return nil
	}
	if !HasTransport(c.Transport) {
		errs = append(errs, fmt.Errorf("unknown transport %q (available: %v)", c.Transport, AvailableTransports()))
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("timeout must not be negative"))
	}
	if c.PollInterval < 0 {
		errs = append(errs, errors.New("poll interval must not be negative"))
	}
	if c.BreakerThreshold < 0 {
		errs = append(errs, errors.New("breaker threshold must not be negative"))
	}
	return errors.Join(errs...)
}
