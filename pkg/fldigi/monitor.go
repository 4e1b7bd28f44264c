package fldigi

import (
	"context"
	"time"

	"github.com/tlf-contrib/fldigilink/pkg/log"
)

// monitor polls receive text and the carrier on a fixed interval and
// reports what it finds to an EventHandler. It consumes pending carrier
// shifts, so callers running a monitor get them through OnCarrierShift.
type monitor struct {
	poller    *Poller
	corrector *Corrector
	interval  time.Duration
	handler   EventHandler
	logger    log.Logger
}

func newMonitor(p *Poller, c *Corrector, interval time.Duration, handler EventHandler, logger log.Logger) *monitor {
	if handler == nil {
		handler = BaseEventHandler{}
	}
	return &monitor{
		poller:    p,
		corrector: c,
		interval:  interval,
		handler:   handler,
		logger:    log.OrNoop(logger).With(log.Component("monitor")),
	}
}

// run polls until ctx is canceled.
func (m *monitor) run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		m.tick(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (m *monitor) tick(ctx context.Context) {
	if text := m.poller.Poll(ctx); len(text) > 0 {
		m.handler.OnText(TextEvent{
			Text:   string(text),
			Cursor: m.poller.Cursor().Position,
		})
	}

	if err := m.corrector.PollCarrier(ctx); err != nil {
		m.logger.Debug("carrier poll failed", log.Err(err))
		return
	}
	if shift := m.corrector.ConsumePendingShift(); shift != 0 {
		m.handler.OnCarrierShift(CarrierShiftEvent{
			Carrier: m.corrector.CurrentCarrier(),
			Shift:   shift,
		})
	}
}
