package fldigi

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tlf-contrib/fldigilink/internal/adapters/rig"
	"github.com/tlf-contrib/fldigilink/internal/domain"
	"github.com/tlf-contrib/fldigilink/pkg/lifecycle"
	"github.com/tlf-contrib/fldigilink/pkg/log"
)

// Client is the remote-control bridge to one fldigi instance.
//
// Use New() to create a Client. Its query methods are safe for concurrent
// use. Start() runs an optional background monitor that reports received
// text and carrier corrections through an EventHandler.
type Client struct {
	config Config
	logger log.Logger

	session *Session
	engine  *Engine
	remote  Remote
	dialErr error

	dispatcher *Dispatcher
	poller     *Poller
	corrector  *Corrector
	rig        RigSource

	lifecycle *lifecycle.Manager
	monitor   *monitor
	plugins   []Plugin

	mu     sync.Mutex
	closed bool
}

// New creates a Client with the given configuration.
//
// An unreachable or malformed URL is not an error: the client is returned
// with a session that is not ready, every query fails with
// ErrNotInitialized, and SessionErr reports why. New fails only on an
// invalid configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := log.OrNoop(o.logger)

	c := &Client{
		config:  cfg,
		logger:  logger,
		plugins: o.plugins,
		rig:     o.rig,
	}
	if c.rig == nil {
		c.rig = rig.NewState(cfg.Rig)
	}

	switch {
	case cfg.Disabled:
		c.remote = Disabled{}
	default:
		if o.caller != nil {
			c.session = NewSessionWithCaller(cfg.URL, o.caller)
		} else {
			c.session, c.dialErr = OpenSession(cfg.Transport, cfg.URL, dialOptions{
				timeout:    cfg.Timeout,
				httpClient: o.httpClient,
			})
		}
		if c.dialErr != nil {
			logger.Warn("fldigi session not ready, remote calls will fail",
				log.String("url", cfg.URL),
				log.Err(c.dialErr),
			)
		}
		c.engine = NewEngine(c.session, NewCircuitBreaker(cfg.BreakerThreshold), logger)
		c.remote = c.engine
	}

	c.dispatcher = NewDispatcher(c.remote, cfg.SettleDelay, logger)
	c.poller = NewPoller(c.remote, logger)
	c.corrector = NewCorrector(c.remote, c.rig.Rig, logger)

	var handler EventHandler = BaseEventHandler{}
	if o.eventHandler != nil {
		handler = o.eventHandler
	}
	c.lifecycle = lifecycle.NewManager(logger, &eventEmitterWrapper{handler: handler})
	c.monitor = newMonitor(c.poller, c.corrector, cfg.PollInterval, handler, logger)

	return c, nil
}

// Query runs a raw remote call through the engine.
func (c *Client) Query(ctx context.Context, method string, args ...Argument) (Result, error) {
	return c.remote.Query(ctx, method, args...)
}

// SendText queues text for transmission. See Dispatcher.SendText.
func (c *Client) SendText(ctx context.Context, text string) error {
	return c.dispatcher.SendText(ctx, text)
}

// ToRX switches fldigi to receive.
func (c *Client) ToRX(ctx context.Context) error {
	return c.dispatcher.ToRX(ctx)
}

// Poll returns text received since the previous poll.
func (c *Client) Poll(ctx context.Context) []byte {
	return c.poller.Poll(ctx)
}

// PollNewText copies text received since the previous poll into buf.
func (c *Client) PollNewText(ctx context.Context, buf []byte) int {
	return c.poller.PollNewText(ctx, buf)
}

// PollCarrier reads and, in RTTY, recenters the modem carrier.
func (c *Client) PollCarrier(ctx context.Context) error {
	return c.corrector.PollCarrier(ctx)
}

// CurrentCarrier returns the carrier from the last successful poll.
func (c *Client) CurrentCarrier() int {
	return c.corrector.CurrentCarrier()
}

// ConsumePendingShift returns the pending carrier shift and clears it.
func (c *Client) ConsumePendingShift() int {
	return c.corrector.ConsumePendingShift()
}

// Enabled reports whether remote control is switched on.
func (c *Client) Enabled() bool { return c.remote.Enabled() }

// Ready reports whether the session can carry queries.
func (c *Client) Ready() bool {
	return c.session != nil && c.session.Ready()
}

// SessionErr returns the error that kept the session from becoming ready.
func (c *Client) SessionErr() error { return c.dialErr }

// Rig returns the current rig context.
func (c *Client) Rig() RigContext { return c.rig.Rig() }

// SetRig updates the rig context. It fails when the rig source given with
// WithRigSource cannot be written.
func (c *Client) SetRig(ctx RigContext) error {
	u, ok := c.rig.(RigUpdater)
	if !ok {
		return errors.New("rig source is read-only")
	}
	if u.Set(ctx) {
		c.logger.Info("rig context changed",
			log.String("mode", ctx.Mode.String()),
			log.Bool("active", ctx.Active),
		)
	}
	return nil
}

// StatusLine describes whether remote control is available, for the
// logging application's status display.
func (c *Client) StatusLine() string {
	if !c.remote.Enabled() {
		return "fldigi remote control disabled"
	}
	if !c.Ready() {
		return fmt.Sprintf("fldigi remote control enabled (%s, not connected)", c.remote.Describe())
	}
	return fmt.Sprintf("fldigi remote control enabled (%s)", c.remote.Describe())
}

// Snapshot is a point-in-time view of the bridge and the remote modem.
type Snapshot struct {
	Enabled     bool
	Ready       bool
	Transport   string
	URL         string
	SessionID   string
	BreakerOpen bool
	Monitor     State
	Rig         RigContext

	TRXState string
	RXLength int
	Carrier  int
}

// Snapshot reads the transmit state, receive length and raw carrier.
// Remote failures are joined into the returned error; the fields that could
// be read are filled in regardless.
func (c *Client) Snapshot(ctx context.Context) (Snapshot, error) {
	s := Snapshot{
		Enabled: c.remote.Enabled(),
		Ready:   c.Ready(),
		Monitor: c.Status(),
		Rig:     c.Rig(),
	}
	if c.session != nil {
		s.Transport = c.session.Transport()
		s.URL = c.session.Endpoint().Address
		s.SessionID = c.session.ID()
	}
	if c.engine != nil {
		s.BreakerOpen = c.engine.BreakerTripped()
	}
	if !s.Enabled {
		return s, nil
	}

	var errs []error
	if res, err := c.remote.Query(ctx, MethodGetTRXState); err != nil {
		errs = append(errs, err)
	} else {
		s.TRXState = string(res.Payload())
		res.Release()
	}
	if n, err := c.queryInt(ctx, MethodGetRXLength); err != nil {
		errs = append(errs, err)
	} else {
		s.RXLength = n
	}
	if n, err := c.queryInt(ctx, MethodGetCarrier); err != nil {
		errs = append(errs, err)
	} else {
		s.Carrier = n
	}
	s.BreakerOpen = c.engine.BreakerTripped()

	return s, errors.Join(errs...)
}

// queryInt runs a query whose result must be an integer.
func (c *Client) queryInt(ctx context.Context, method string) (int, error) {
	res, err := c.remote.Query(ctx, method)
	if err != nil {
		return 0, err
	}
	defer res.Release()
	if res.Kind != domain.ResultInt {
		return 0, fmt.Errorf("%s: %w: got %s", method, domain.ErrDecodeTypeUnrecognized, res.Kind)
	}
	return res.Int, nil
}

// Start runs the monitor in the background until Stop is called or ctx is
// canceled. Returns lifecycle.ErrAlreadyRunning if it is already running.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errors.New("client closed")
	}
	if !c.lifecycle.CanStart() {
		return lifecycle.ErrAlreadyRunning
	}
	if err := c.lifecycle.TransitionTo(lifecycle.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.lifecycle.SetCancel(cancel)

	pluginCfg := PluginConfig{Logger: c.logger}
	if u, ok := c.rig.(RigUpdater); ok {
		pluginCfg.Rig = u
	}
	for i, p := range c.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			c.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			c.shutdownPlugins(c.plugins[:i])
			cancel()
			_ = c.lifecycle.TransitionTo(lifecycle.StateCrashed, "plugin init failed: "+p.Name())
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
		c.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}

	// Running is entered before the goroutine starts so Stop never races it.
	if err := c.lifecycle.TransitionTo(lifecycle.StateRunning, "monitor started"); err != nil {
		cancel()
		return err
	}

	c.lifecycle.AddWorker()
	go func() {
		defer c.lifecycle.WorkerDone()

		err := c.monitor.run(runCtx)
		if err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Error("monitor stopped", log.Err(err))
		}
	}()

	return nil
}

// Stop halts the monitor and shuts plugins down.
// Returns lifecycle.ErrNotRunning if the monitor is not running.
func (c *Client) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopLocked()
}

func (c *Client) stopLocked() error {
	if !c.lifecycle.CanStop() {
		return lifecycle.ErrNotRunning
	}
	if err := c.lifecycle.TransitionTo(lifecycle.StateStopping, "Stop() called"); err != nil {
		return err
	}

	c.lifecycle.Cancel()
	err := c.lifecycle.WaitWithTimeout(lifecycle.ShutdownTimeout)

	c.shutdownPlugins(c.plugins)

	if err != nil {
		_ = c.lifecycle.TransitionTo(lifecycle.StateCrashed, "shutdown timeout")
	} else {
		_ = c.lifecycle.TransitionTo(lifecycle.StateStopped, "graceful shutdown")
	}
	return err
}

// shutdownPlugins shuts plugins down in reverse order.
func (c *Client) shutdownPlugins(plugins []Plugin) {
	ctx := context.Background()
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(ctx); err != nil {
			c.logger.Error("plugin shutdown failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			continue
		}
		c.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
	}
}

// Status returns the monitor lifecycle state.
func (c *Client) Status() State {
	return c.lifecycle.State()
}

// Close stops the monitor if it is running and tears the session down.
// Later calls are no-ops.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	if c.lifecycle.CanStop() {
		errs = append(errs, c.stopLocked())
	}
	if c.session != nil {
		errs = append(errs, c.session.Close())
	}
	return errors.Join(errs...)
}

var _ RigUpdater = (*rig.State)(nil)
