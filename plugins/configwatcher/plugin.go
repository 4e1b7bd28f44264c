// Package configwatcher reloads the rig section of the fldigilink config
// file while the monitor runs.
//
// The logging application usually owns rig state. When fldigilink runs on
// its own, editing rig_mode or rig_control in the TOML file is how the
// operator tells the carrier corrector that the rig changed.
package configwatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tlf-contrib/fldigilink/internal/cliconfig"
	"github.com/tlf-contrib/fldigilink/internal/domain"
	"github.com/tlf-contrib/fldigilink/pkg/fldigi"
	"github.com/tlf-contrib/fldigilink/pkg/log"
)

// Plugin watches the config file and pushes rig changes into the client.
type Plugin struct {
	mu sync.Mutex

	path          string
	debounceDelay time.Duration

	logger   log.Logger
	rig      fldigi.RigUpdater
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// Path of the TOML file to watch.
	// Default: ~/.fldigilink/config.toml
	Path string

	// DebounceDelay is the delay to wait after a file change before reloading.
	// Editors often write a file in several steps.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Path:          cliconfig.DefaultConfigPath(),
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{
		path:          cfg.Path,
		debounceDelay: cfg.DebounceDelay,
		logger:        log.NoopLogger{},
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Initialize starts watching the config file.
// Without a writable rig source or a path the plugin stays idle.
func (p *Plugin) Initialize(ctx context.Context, cfg fldigi.PluginConfig) error {
	p.mu.Lock()
	p.logger = log.OrNoop(cfg.Logger).With(log.Component("configwatcher"))
	p.rig = cfg.Rig
	p.mu.Unlock()

	if p.rig == nil || p.path == "" {
		p.logger.Warn("config watcher disabled: no rig updater or config path")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors replace the file rather than write it.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("config watcher started", log.String("path", p.path))

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	return nil
}

// Shutdown stops the config watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	name := filepath.Base(p.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			p.debounceReload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Warn("config watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceReload(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		p.reload()
	})
}

// reload applies rig_mode and rig_control from the file. Keys missing from
// the file leave the current value alone.
func (p *Plugin) reload() {
	fc, err := cliconfig.LoadFileConfig(p.path)
	if err != nil {
		p.logger.Warn("config reload failed", log.String("path", p.path), log.Err(err))
		return
	}

	next := p.rig.Rig()
	if fc.RigMode != "" {
		mode, err := domain.ParseRigMode(fc.RigMode)
		if err != nil {
			p.logger.Warn("config reload: ignoring rig mode", log.Err(err))
		} else {
			next.Mode = mode
		}
	}
	if fc.RigControl != nil {
		next.Active = *fc.RigControl
	}

	if p.rig.Set(next) {
		p.logger.Info("rig context reloaded",
			log.String("mode", next.Mode.String()),
			log.Bool("active", next.Active),
		)
	}
}

// Ensure Plugin implements fldigi.Plugin.
var _ fldigi.Plugin = (*Plugin)(nil)
