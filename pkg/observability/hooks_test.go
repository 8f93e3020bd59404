package observability

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Producer hooks
	p := NoopProducerHooks{}
	p.OnProduct(ctx, "ARRAY", 100)
	p.OnRecirculate(ctx, "INT")
	p.OnStall(ctx, 42, true)

	// Assembly hooks
	a := NoopAssemblyHooks{}
	a.OnDocumentStart(ctx, "doc", 70, 70, 70)
	a.OnDocumentComplete(ctx, "doc", 1024, time.Second, nil)
	a.OnReject(ctx, "doc", "zoomer_ab")
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Producer().(NoopProducerHooks); !ok {
		t.Error("Producer() should return NoopProducerHooks by default")
	}
	if _, ok := Assembly().(NoopAssemblyHooks); !ok {
		t.Error("Assembly() should return NoopAssemblyHooks by default")
	}

	// Set custom hooks
	customProducer := &testProducerHooks{}
	SetProducerHooks(customProducer)
	if Producer() != customProducer {
		t.Error("SetProducerHooks should set custom hooks")
	}

	customAssembly := &testAssemblyHooks{}
	SetAssemblyHooks(customAssembly)
	if Assembly() != customAssembly {
		t.Error("SetAssemblyHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Producer().(NoopProducerHooks); !ok {
		t.Error("Reset() should restore NoopProducerHooks")
	}
	if _, ok := Assembly().(NoopAssemblyHooks); !ok {
		t.Error("Reset() should restore NoopAssemblyHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testProducerHooks{}
	SetProducerHooks(custom)

	// Setting nil should be ignored
	SetProducerHooks(nil)

	if Producer() != custom {
		t.Error("SetProducerHooks(nil) should be ignored")
	}

	Reset()
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testProducerHooks{}
	SetProducerHooks(h)
	Producer().OnProduct(context.Background(), "INT", 1)
	Producer().OnProduct(context.Background(), "INT", 2)

	if got := h.products.Load(); got != 2 {
		t.Errorf("products = %d, want 2", got)
	}
}

// Test implementations
type testProducerHooks struct {
	NoopProducerHooks
	products atomic.Int64
}

func (h *testProducerHooks) OnProduct(context.Context, string, int) { h.products.Add(1) }

type testAssemblyHooks struct{ NoopAssemblyHooks }
