package fldigi

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var errPeerDown = errors.New("connection refused")

type recordedCall struct {
	method string
	params []interface{}
}

// fakeCaller is a scripted ports.Caller. Replies are looked up per method;
// respond, when set, takes precedence.
type fakeCaller struct {
	mu      sync.Mutex
	calls   []recordedCall
	log     []string
	replies map[string]interface{}
	errs    map[string]error
	respond func(method string, params []interface{}) (interface{}, error)
	delay   time.Duration
	closed  bool

	inflight    int32
	maxInflight int32
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{
		replies: make(map[string]interface{}),
		errs:    make(map[string]error),
	}
}

func (f *fakeCaller) Call(ctx context.Context, method string, params []interface{}) (interface{}, error) {
	n := atomic.AddInt32(&f.inflight, 1)
	defer atomic.AddInt32(&f.inflight, -1)
	for {
		m := atomic.LoadInt32(&f.maxInflight)
		if n <= m || atomic.CompareAndSwapInt32(&f.maxInflight, m, n) {
			break
		}
	}

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{method: method, params: params})
	f.log = append(f.log, describeCall(method, params))
	respond := f.respond
	reply, err := f.replies[method], f.errs[method]
	f.mu.Unlock()

	if respond != nil {
		return respond(method, params)
	}
	if err != nil {
		return nil, err
	}
	return reply, nil
}

func (f *fakeCaller) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeCaller) setReply(method string, v interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[method] = v
}

func (f *fakeCaller) setErr(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errs, method)
		return
	}
	f.errs[method] = err
}

// note appends a marker to the call log, e.g. to place a wait between calls.
func (f *fakeCaller) note(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log = append(f.log, s)
}

func (f *fakeCaller) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.log...)
}

func (f *fakeCaller) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.method == method {
			n++
		}
	}
	return n
}

func (f *fakeCaller) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeCaller) lastCall() recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return recordedCall{}
	}
	return f.calls[len(f.calls)-1]
}

func describeCall(method string, params []interface{}) string {
	if len(params) == 0 {
		return method
	}
	return fmt.Sprintf("%s%v", method, params)
}

func newTestEngine(fc *fakeCaller) *Engine {
	return NewEngine(NewSessionWithCaller("http://fldigi.test/RPC2", fc), nil, nil)
}

// rxBuffer simulates fldigi's receive window.
type rxBuffer struct {
	mu   sync.Mutex
	text string
}

func (b *rxBuffer) set(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = s
}

func (b *rxBuffer) respond(method string, params []interface{}) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch method {
	case MethodGetRXLength:
		return int64(len(b.text)), nil
	case MethodGetRX:
		start, end := params[0].(int), params[1].(int)
		if end > len(b.text) {
			end = len(b.text)
		}
		return []byte(b.text[start:end]), nil
	}
	return nil, nil
}
