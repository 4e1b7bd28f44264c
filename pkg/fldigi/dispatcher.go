package fldigi

import (
	"context"
	"time"

	"github.com/tlf-contrib/fldigilink/internal/domain"
	"github.com/tlf-contrib/fldigilink/pkg/log"
)

// DefaultSettleDelay is how long SendText waits after forcing an ongoing
// transmission back to receive.
const DefaultSettleDelay = 2 * time.Second

// Dispatcher pushes operator text into the remote transmit buffer.
type Dispatcher struct {
	remote Remote
	settle time.Duration
	logger log.Logger

	// wait blocks for d or until ctx is done. Replaced in tests.
	wait func(ctx context.Context, d time.Duration) error
}

// NewDispatcher creates a dispatcher. A zero settle uses DefaultSettleDelay.
func NewDispatcher(remote Remote, settle time.Duration, logger log.Logger) *Dispatcher {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &Dispatcher{
		remote: remote,
		settle: settle,
		logger: log.OrNoop(logger).With(log.Component("dispatcher")),
		wait:   sleepContext,
	}
}

// SendText queues text for transmission and keys the transmitter.
//
// If the peer is already transmitting it is switched to receive and its
// transmit buffer cleared first, followed by the settle delay. The text is
// followed by a switch-to-receive control sequence so the peer drops back
// to receive once it has been sent. The first failing step aborts the rest;
// steps already applied are not undone.
func (d *Dispatcher) SendText(ctx context.Context, text string) error {
	if !d.remote.Enabled() {
		return nil
	}

	state, err := d.remote.Query(ctx, MethodGetTRXState)
	if err != nil {
		return err
	}
	transmitting := state.Kind == domain.ResultText && state.Text == StateTX
	state.Release()

	if transmitting {
		d.logger.Debug("peer is transmitting, switching to receive")
		if err := d.exec(ctx, MethodRX); err != nil {
			return err
		}
		if err := d.exec(ctx, MethodClearTX); err != nil {
			return err
		}
		if err := d.wait(ctx, d.settle); err != nil {
			return err
		}
	}

	if err := d.exec(ctx, MethodAddTX, domain.Text(text)); err != nil {
		return err
	}
	if err := d.exec(ctx, MethodAddTX, domain.Text(ControlSwitchToRX)); err != nil {
		return err
	}
	if err := d.exec(ctx, MethodTX); err != nil {
		return err
	}

	d.logger.Debug("text queued", log.Int("len", len(text)))
	return nil
}

// ToRX switches the peer to receive immediately.
func (d *Dispatcher) ToRX(ctx context.Context) error {
	if !d.remote.Enabled() {
		return nil
	}
	return d.exec(ctx, MethodRX)
}

// exec runs a query whose result is not inspected.
func (d *Dispatcher) exec(ctx context.Context, method string, args ...domain.Argument) error {
	res, err := d.remote.Query(ctx, method, args...)
	if err != nil {
		return err
	}
	res.Release()
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
