package fldigi

import (
	"context"
	"sync"

	"github.com/tlf-contrib/fldigilink/internal/domain"
	"github.com/tlf-contrib/fldigilink/pkg/log"
)

// RxCursor is the last observed length of the remote receive buffer.
type RxCursor struct {
	Position    int
	Initialized bool
}

// Poller reads newly decoded text from the remote receive buffer.
//
// The first poll only records the current buffer length; history is never
// backfilled. Each later poll returns the text appended since the previous
// one. When the remote buffer shrinks the cursor follows it down without
// returning anything.
type Poller struct {
	remote Remote
	logger log.Logger

	mu     sync.Mutex
	cursor RxCursor
}

// NewPoller creates a poller with an uninitialized cursor.
func NewPoller(remote Remote, logger log.Logger) *Poller {
	return &Poller{
		remote: remote,
		logger: log.OrNoop(logger).With(log.Component("poller")),
	}
}

// Poll returns the text received since the previous poll, or nil when there
// is none. Failures are logged and reported as no data.
func (p *Poller) Poll(ctx context.Context) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.poll(ctx)
}

// PollNewText copies new text into buf and returns the number of bytes
// copied. A zero byte follows the text when buf has room for it.
//
// Text that does not fit in buf is lost: the cursor still advances past
// it, so no later poll returns it. Use Poll when the amount of new text
// cannot be bounded in advance.
func (p *Poller) PollNewText(ctx context.Context, buf []byte) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	text := p.poll(ctx)
	n := copy(buf, text)
	if n < len(text) {
		p.logger.Warn("receive buffer too small, text truncated",
			log.Int("have", len(buf)),
			log.Int("need", len(text)),
		)
	}
	if n < len(buf) {
		buf[n] = 0
	}
	return n
}

// Cursor returns a copy of the read cursor.
func (p *Poller) Cursor() RxCursor {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

func (p *Poller) poll(ctx context.Context) []byte {
	if !p.remote.Enabled() {
		return nil
	}

	res, err := p.remote.Query(ctx, MethodGetRXLength)
	if err != nil {
		p.logger.Debug("rx length query failed", log.Err(err))
		return nil
	}
	if res.Kind != domain.ResultInt {
		p.logger.Warn("rx length is not an integer", log.String("kind", res.Kind.String()))
		res.Release()
		return nil
	}
	length := res.Int

	if !p.cursor.Initialized {
		p.cursor = RxCursor{Position: length, Initialized: true}
		return nil
	}

	var text []byte
	if length > p.cursor.Position {
		delta, err := p.remote.Query(ctx, MethodGetRX, domain.Int(p.cursor.Position), domain.Int(length))
		if err != nil {
			// Cursor stays put so the same range is asked for again.
			p.logger.Debug("rx text query failed", log.Err(err))
			return nil
		}
		if payload := delta.Payload(); len(payload) > 0 {
			text = make([]byte, len(payload))
			copy(text, payload)
		}
		delta.Release()
	} else if length < p.cursor.Position {
		p.logger.Debug("remote receive buffer shrank, re-baselining",
			log.Int("from", p.cursor.Position),
			log.Int("to", length),
		)
	}

	p.cursor.Position = length
	return text
}
