package fldigi

import (
	"github.com/tlf-contrib/fldigilink/internal/ports"
	"github.com/tlf-contrib/fldigilink/pkg/log"
)

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Caller performs one remote procedure call. Implement it to plug in a
// transport that is not registered by name.
type Caller = ports.Caller

// RigSource exposes the current rig context.
type RigSource = ports.RigSource

// Option configures optional behavior of a Client.
type Option func(*options)

type options struct {
	logger       log.Logger
	httpClient   HTTPClient
	caller       Caller
	rig          RigSource
	eventHandler EventHandler
	plugins      []Plugin
}

// WithLogger sets a logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHTTPClient sets the HTTP client used by the jsonrpc transport.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithCaller bypasses the transport registry and sends every query through
// caller.
func WithCaller(caller Caller) Option {
	return func(o *options) {
		o.caller = caller
	}
}

// WithRigSource sets where the carrier corrector reads the rig context.
// If not provided, an in-memory source seeded from Config.Rig is used.
func WithRigSource(rig RigSource) Option {
	return func(o *options) {
		o.rig = rig
	}
}

// WithEventHandler sets a handler for monitor events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when the monitor starts.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
