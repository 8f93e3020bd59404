package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/jsonizer/pkg/observability"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func captureStatus(t *testing.T) *syncBuffer {
	t.Helper()
	old := statusOut
	buf := &syncBuffer{}
	statusOut = buf
	t.Cleanup(func() { statusOut = old })
	return buf
}

func TestStatusSpinnerLine(t *testing.T) {
	ctx := context.Background()
	h := &runHooks{}
	for i := 1; i <= 1240; i++ {
		h.OnProduct(ctx, "INT", i)
	}
	h.OnDocumentComplete(ctx, "a", 10, time.Millisecond, nil)
	h.OnDocumentComplete(ctx, "b", 10, time.Millisecond, nil)
	h.OnDocumentComplete(ctx, "c", 0, time.Millisecond, context.Canceled)

	s := &statusSpinner{total: 6, hooks: h}
	if got, want := s.line(), "Generating 6 documents... 2/6 done, 1,240 products"; got != want {
		t.Errorf("line() = %q, want %q", got, want)
	}

	h.OnStall(ctx, 7, true)
	if got := s.line(); !strings.HasSuffix(got, ", 1 not consumed") {
		t.Errorf("line() = %q, want the not-consumed count", got)
	}
}

func TestStatusSpinnerDrawsLiveCounts(t *testing.T) {
	out := captureStatus(t)
	h := &runHooks{}

	s := startStatusSpinner(context.Background(), 3, h)
	h.OnProduct(context.Background(), "ARRAY", 1)
	h.OnDocumentComplete(context.Background(), "a", 2, time.Millisecond, nil)
	time.Sleep(250 * time.Millisecond)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Generating 3 documents... 1/3 done, 1 products") {
		t.Errorf("spinner output = %q", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("Stop should clear the line, output ends with %q", got[max(0, len(got)-10):])
	}
}

func TestStatusSpinnerStopsWithContext(t *testing.T) {
	captureStatus(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := startStatusSpinner(ctx, 1, &runHooks{})
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after the context was cancelled")
	}
	s.Stop()
}

func TestStatusSpinnerStopIsIdempotent(t *testing.T) {
	captureStatus(t)

	s := startStatusSpinner(context.Background(), 1, &runHooks{})
	s.Stop()
	s.Stop()
}

func TestRunHooksRegister(t *testing.T) {
	h := &runHooks{}
	restore := h.register()
	observability.Producer().OnProduct(context.Background(), "INT", 1)
	observability.Assembly().OnDocumentComplete(context.Background(), "a", 2, time.Millisecond, nil)
	restore()
	observability.Producer().OnProduct(context.Background(), "INT", 2)

	got := h.snapshot()
	if got.products != 1 || got.documents != 1 {
		t.Errorf("snapshot() = %+v, want one product and one document while registered", got)
	}
}
