package fldigi

import (
	"context"

	"github.com/tlf-contrib/fldigilink/pkg/log"
)

// Plugin extends a Client with background work tied to the monitor.
// Plugins are initialized in registration order when the monitor starts
// and shut down in reverse order when it stops.
type Plugin interface {
	// Name returns a short identifier for logs.
	Name() string

	// Initialize starts the plugin. An error aborts the monitor start.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown stops the plugin and waits for its goroutines.
	Shutdown(ctx context.Context) error
}

// RigUpdater is a rig source that plugins may update.
type RigUpdater interface {
	Rig() RigContext
	Set(RigContext) bool
}

// PluginConfig is handed to plugins on Initialize.
type PluginConfig struct {
	Logger log.Logger

	// Rig is nil when the configured RigSource is read-only.
	Rig RigUpdater
}
