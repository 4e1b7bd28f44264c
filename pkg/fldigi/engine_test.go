package fldigi

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tlf-contrib/fldigilink/internal/domain"
)

func TestEngine_Query_DecodesResults(t *testing.T) {
	fc := newFakeCaller()
	fc.setReply(MethodGetRXLength, int64(42))
	fc.setReply(MethodGetTRXState, "RX")
	fc.setReply(MethodGetRX, []byte("CQ TEST"))
	fc.setReply(MethodRX, nil)
	e := newTestEngine(fc)
	ctx := context.Background()

	tests := []struct {
		method string
		want   domain.Result
	}{
		{MethodGetRXLength, domain.IntResult(42)},
		{MethodGetTRXState, domain.TextResult("RX")},
		{MethodGetRX, domain.BytesResult([]byte("CQ TEST"))},
		{MethodRX, domain.Result{Kind: domain.ResultNone}},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got, err := e.Query(ctx, tt.method)
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			if got.Kind != tt.want.Kind || got.Int != tt.want.Int || got.Text != tt.want.Text ||
				string(got.Bytes) != string(tt.want.Bytes) {
				t.Errorf("Query() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEngine_Query_PreservesArgumentOrder(t *testing.T) {
	fc := newFakeCaller()
	e := newTestEngine(fc)

	if _, err := e.Query(context.Background(), MethodGetRX, domain.Int(3), domain.Int(7)); err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	got := fc.lastCall().params
	if len(got) != 2 || got[0] != 3 || got[1] != 7 {
		t.Errorf("params = %v, want [3 7]", got)
	}

	if _, err := e.Query(context.Background(), MethodAddTX, domain.Text("CQ")); err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if got := fc.lastCall().params; len(got) != 1 || got[0] != "CQ" {
		t.Errorf("params = %v, want [CQ]", got)
	}
}

func TestEngine_Query_FaultOpensCircuit(t *testing.T) {
	fc := newFakeCaller()
	fc.setErr(MethodRX, errPeerDown)
	e := newTestEngine(fc)
	ctx := context.Background()

	_, err := e.Query(ctx, MethodRX)
	if !errors.Is(err, domain.ErrFault) {
		t.Fatalf("first call error = %v, want ErrFault", err)
	}
	if !errors.Is(err, errPeerDown) {
		t.Errorf("fault should wrap transport error, got %v", err)
	}
	if !e.BreakerTripped() {
		t.Error("breaker not tripped after fault")
	}

	for i := 1; i <= DefaultBreakerThreshold; i++ {
		_, err := e.Query(ctx, MethodRX)
		if !errors.Is(err, domain.ErrCircuitOpen) {
			t.Fatalf("call %d after fault error = %v, want ErrCircuitOpen", i, err)
		}
	}
	if n := fc.total(); n != 1 {
		t.Fatalf("transport called %d times while open, want 1", n)
	}

	// The 11th call reaches the peer again. It is still down.
	if _, err := e.Query(ctx, MethodRX); !errors.Is(err, domain.ErrFault) {
		t.Fatalf("retry error = %v, want ErrFault", err)
	}
	if n := fc.total(); n != 2 {
		t.Fatalf("transport called %d times, want 2", n)
	}

	// Peer comes back; the breaker still skips its 10 calls first.
	fc.setErr(MethodRX, nil)
	for i := 0; i < DefaultBreakerThreshold; i++ {
		if _, err := e.Query(ctx, MethodRX); !errors.Is(err, domain.ErrCircuitOpen) {
			t.Fatalf("skip %d error = %v, want ErrCircuitOpen", i, err)
		}
	}
	if _, err := e.Query(ctx, MethodRX); err != nil {
		t.Fatalf("call after recovery error = %v", err)
	}
	if e.BreakerTripped() {
		t.Error("breaker still tripped after successful call")
	}
}

func TestEngine_Query_ArgMarshalError(t *testing.T) {
	type marshalCase struct {
		name string
		arg  domain.Argument
	}
	tests := []marshalCase{
		{"zero argument", domain.Argument{}},
		{"invalid utf-8", domain.Text("\xff\xfe")},
	}
	if strconv.IntSize == 64 {
		big := int64(math.MaxInt32) + 1
		tests = append(tests, marshalCase{"int overflows i4", domain.Int(int(big))})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := newFakeCaller()
			e := newTestEngine(fc)

			_, err := e.Query(context.Background(), MethodAddTX, tt.arg)
			if !errors.Is(err, domain.ErrArgMarshal) {
				t.Fatalf("Query() error = %v, want ErrArgMarshal", err)
			}
			if fc.total() != 0 {
				t.Error("transport called despite marshal error")
			}
			if e.BreakerTripped() {
				t.Error("marshal error must not trip the breaker")
			}
		})
	}
}

func TestEngine_Query_UnrecognizedResult(t *testing.T) {
	fc := newFakeCaller()
	fc.setReply(MethodGetCarrier, 1500.5)
	e := newTestEngine(fc)

	_, err := e.Query(context.Background(), MethodGetCarrier)
	if !errors.Is(err, domain.ErrDecodeTypeUnrecognized) {
		t.Fatalf("Query() error = %v, want ErrDecodeTypeUnrecognized", err)
	}
	if e.BreakerTripped() {
		t.Error("decode error must not trip the breaker")
	}
}

func TestEngine_Query_NotInitialized(t *testing.T) {
	s, err := OpenSession(TransportXMLRPC, "ftp://fldigi.test", dialOptions{})
	if err == nil {
		t.Fatal("OpenSession() accepted a non-http URL")
	}
	e := NewEngine(s, nil, nil)

	_, err = e.Query(context.Background(), MethodRX)
	if !errors.Is(err, domain.ErrNotInitialized) {
		t.Fatalf("Query() error = %v, want ErrNotInitialized", err)
	}

	fc := newFakeCaller()
	e = newTestEngine(fc)
	_ = e.Session().Close()
	if _, err := e.Query(context.Background(), MethodRX); !errors.Is(err, domain.ErrNotInitialized) {
		t.Fatalf("Query() after Close error = %v, want ErrNotInitialized", err)
	}
	if !fc.closed {
		t.Error("session Close did not close the caller")
	}
}

func TestEngine_Query_QueuedBehindClose(t *testing.T) {
	fc := newFakeCaller()
	fc.delay = 100 * time.Millisecond
	e := newTestEngine(fc)

	first := make(chan error, 1)
	go func() {
		_, err := e.Query(context.Background(), MethodRX)
		first <- err
	}()
	waitFor(t, "first call in flight", func() bool { return atomic.LoadInt32(&fc.inflight) == 1 })

	second := make(chan error, 1)
	go func() {
		_, err := e.Query(context.Background(), MethodTX)
		second <- err
	}()
	time.Sleep(20 * time.Millisecond)

	if err := e.Session().Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := <-first; err != nil {
		t.Fatalf("in-flight Query() error = %v", err)
	}
	if err := <-second; !errors.Is(err, domain.ErrNotInitialized) {
		t.Fatalf("queued Query() error = %v, want ErrNotInitialized", err)
	}
	if got, want := fc.callLog(), []string{MethodRX}; !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestEngine_Query_CanceledContext(t *testing.T) {
	fc := newFakeCaller()
	e := newTestEngine(fc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Query(ctx, MethodRX)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Query() error = %v, want context.Canceled", err)
	}
	if fc.total() != 0 {
		t.Error("transport called with canceled context")
	}
	if e.BreakerTripped() {
		t.Error("cancellation must not trip the breaker")
	}
}

func TestEngine_Query_SerializesCalls(t *testing.T) {
	fc := newFakeCaller()
	fc.delay = 2 * time.Millisecond
	fc.setReply(MethodGetRXLength, int64(1))
	e := newTestEngine(fc)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 4; j++ {
				if _, err := e.Query(context.Background(), MethodGetRXLength); err != nil {
					t.Errorf("Query() error = %v", err)
				}
			}
		}()
	}
	wg.Wait()

	if m := atomic.LoadInt32(&fc.maxInflight); m != 1 {
		t.Errorf("max concurrent calls = %d, want 1", m)
	}
	if n := fc.total(); n != 64 {
		t.Errorf("calls = %d, want 64", n)
	}
}

func TestDisabled_Query(t *testing.T) {
	var r Remote = Disabled{}
	if r.Enabled() {
		t.Error("Disabled.Enabled() = true")
	}
	if _, err := r.Query(context.Background(), MethodRX); !errors.Is(err, domain.ErrNotInitialized) {
		t.Errorf("Disabled.Query() error = %v, want ErrNotInitialized", err)
	}
}
