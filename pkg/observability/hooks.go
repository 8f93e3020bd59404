// Package observability provides hooks for metrics, progress and logging.
//
// The producer and the assemblies call the registered hooks as they work.
// Nothing in this package depends on a particular backend: the CLI registers
// a hook that feeds its terminal progress view, tests register counters, and
// everything else gets the no-op defaults.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetProducerHooks(&myProducerHooks{})
//	    observability.SetAssemblyHooks(&myAssemblyHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Assembly().OnDocumentStart(ctx, id, ints, doubles, strings)
//	// ... assemble ...
//	observability.Assembly().OnDocumentComplete(ctx, id, size, elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Producer Hooks
// =============================================================================

// ProducerHooks receives events from the producer loop.
type ProducerHooks interface {
	// OnProduct records a part promoted to the products queue. total is the
	// number of products created so far.
	OnProduct(ctx context.Context, kind string, total int)

	// OnRecirculate records a part sent back to the work queue.
	OnRecirculate(ctx context.Context, kind string)

	// OnStall records a pass that left the work queue head unconsumed.
	// promoted is true when the head was moved to the products queue.
	OnStall(ctx context.Context, serial uint64, promoted bool)
}

// =============================================================================
// Assembly Hooks
// =============================================================================

// AssemblyHooks receives events from document assemblies.
type AssemblyHooks interface {
	// OnDocumentStart records the start of an assembly and its target.
	OnDocumentStart(ctx context.Context, id string, ints, doubles, strings int)

	// OnDocumentComplete records a finished (or cancelled) assembly.
	OnDocumentComplete(ctx context.Context, id string, size int, duration time.Duration, err error)

	// OnReject records a product sent back because its key was missing or
	// already present in the document.
	OnReject(ctx context.Context, id, key string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopProducerHooks is a no-op implementation of ProducerHooks.
type NoopProducerHooks struct{}

func (NoopProducerHooks) OnProduct(context.Context, string, int) {}
func (NoopProducerHooks) OnRecirculate(context.Context, string)  {}
func (NoopProducerHooks) OnStall(context.Context, uint64, bool)  {}

// NoopAssemblyHooks is a no-op implementation of AssemblyHooks.
type NoopAssemblyHooks struct{}

func (NoopAssemblyHooks) OnDocumentStart(context.Context, string, int, int, int) {}
func (NoopAssemblyHooks) OnDocumentComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopAssemblyHooks) OnReject(context.Context, string, string) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	producerHooks ProducerHooks = NoopProducerHooks{}
	assemblyHooks AssemblyHooks = NoopAssemblyHooks{}
	hooksMu       sync.RWMutex
)

// SetProducerHooks registers custom producer hooks.
// This should be called once at application startup before any run.
func SetProducerHooks(h ProducerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		producerHooks = h
	}
}

// SetAssemblyHooks registers custom assembly hooks.
// This should be called once at application startup before any run.
func SetAssemblyHooks(h AssemblyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		assemblyHooks = h
	}
}

// Producer returns the registered producer hooks.
func Producer() ProducerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return producerHooks
}

// Assembly returns the registered assembly hooks.
func Assembly() AssemblyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return assemblyHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	producerHooks = NoopProducerHooks{}
	assemblyHooks = NoopAssemblyHooks{}
}
