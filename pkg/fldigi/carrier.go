package fldigi

import (
	"context"
	"fmt"
	"sync"

	"github.com/tlf-contrib/fldigilink/internal/domain"
	"github.com/tlf-contrib/fldigilink/pkg/log"
)

const (
	// CenterFrequency is the audio carrier, in Hz, that shift-keyed modes
	// are recentered to.
	CenterFrequency = 2210

	// MaxCarrierShift is how far, in Hz, the carrier may drift from
	// CenterFrequency before it is recentered.
	MaxCarrierShift = 20

	// reverseShiftOffset is applied to the reported carrier in reverse RTTY.
	reverseShiftOffset = -100
)

// CarrierState holds the last reported carrier and the pending shift.
// PendingShift is zero when no correction is waiting to be consumed.
type CarrierState struct {
	LastCarrier  int
	PendingShift int
}

type normalization struct {
	sign   int
	offset int
}

// normalizations maps the rig mode to how the measured carrier is reported.
// Modes not listed report 0.
var normalizations = map[domain.RigMode]normalization{
	domain.RigModeUSB:   {sign: 1},
	domain.RigModeLSB:   {sign: -1},
	domain.RigModeRTTY:  {},
	domain.RigModeRTTYR: {offset: reverseShiftOffset},
}

// Normalize returns the carrier as reported for mode.
func Normalize(mode domain.RigMode, carrier int) int {
	n := normalizations[mode]
	return n.sign*carrier + n.offset
}

// Corrector tracks the remote modem carrier and recenters it in RTTY.
type Corrector struct {
	remote Remote
	rig    func() domain.RigContext
	logger log.Logger

	mu    sync.Mutex
	state CarrierState
}

// NewCorrector creates a carrier corrector. rig is read on every poll; a nil
// rig behaves as if rig control were off.
func NewCorrector(remote Remote, rig func() domain.RigContext, logger log.Logger) *Corrector {
	if rig == nil {
		rig = func() domain.RigContext { return domain.RigContext{} }
	}
	return &Corrector{
		remote: remote,
		rig:    rig,
		logger: log.OrNoop(logger).With(log.Component("carrier")),
	}
}

// PollCarrier reads the remote carrier and updates the carrier state.
//
// With rig control active in RTTY or reverse RTTY, a carrier more than
// MaxCarrierShift away from CenterFrequency is set back to the center and
// the difference latched as the pending shift. The latch fires once; it is
// re-armed by ConsumePendingShift. A failed recenter is logged and leaves
// the latch unarmed.
func (c *Corrector) PollCarrier(ctx context.Context) error {
	if !c.remote.Enabled() {
		return nil
	}

	res, err := c.remote.Query(ctx, MethodGetCarrier)
	if err != nil {
		return err
	}
	if res.Kind != domain.ResultInt {
		res.Release()
		return fmt.Errorf("%s: %w: got %s", MethodGetCarrier, domain.ErrDecodeTypeUnrecognized, res.Kind)
	}
	measured := res.Int

	rig := c.rig()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.LastCarrier = measured
	if !rig.Active {
		return nil
	}

	if rig.Mode.IsRTTY() && abs(CenterFrequency-measured) > MaxCarrierShift && c.state.PendingShift == 0 {
		set, err := c.remote.Query(ctx, MethodSetCarrier, domain.Int(CenterFrequency))
		if err != nil {
			c.logger.Warn("recenter carrier failed",
				log.Int("carrier", measured),
				log.Err(err),
			)
		} else {
			set.Release()
			c.state.PendingShift = CenterFrequency - measured
			c.logger.Info("carrier recentered",
				log.Int("from", measured),
				log.Int("shift", c.state.PendingShift),
			)
		}
	}

	c.state.LastCarrier = Normalize(rig.Mode, measured)
	return nil
}

// CurrentCarrier returns the carrier from the last successful poll,
// normalized for the rig mode when rig control is active.
func (c *Corrector) CurrentCarrier() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.LastCarrier
}

// ConsumePendingShift returns the pending shift and clears it.
// A second call without an intervening correction returns 0.
func (c *Corrector) ConsumePendingShift() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	shift := c.state.PendingShift
	c.state.PendingShift = 0
	return shift
}

// State returns a copy of the carrier state.
func (c *Corrector) State() CarrierState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
