// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about conversion scheduling and pipeline execution.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetSchedulerHooks(&mySchedulerHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnConversionStart(ctx, phase, converter, src, dst)
//	// ... run converter ...
//	observability.Pipeline().OnConversionComplete(ctx, phase, converter, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the pipeline runner.
type PipelineHooks interface {
	// Conversion events, for both pre and post phases
	OnConversionStart(ctx context.Context, phase, converter, src, dst string)
	OnConversionComplete(ctx context.Context, phase, converter string, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, renderer string, commandCount int)
	OnRenderComplete(ctx context.Context, renderer string, exitCode int, duration time.Duration, err error)
}

// =============================================================================
// Scheduler Hooks
// =============================================================================

// SchedulerHooks receives events from conversion scheduling.
type SchedulerHooks interface {
	// OnJobScheduled records a conversion job added to a phase.
	OnJobScheduled(ctx context.Context, phase, converter string)

	// OnUnsupportedFormat records a resource passed through unconverted.
	OnUnsupportedFormat(ctx context.Context, role, ext string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnConversionStart(context.Context, string, string, string, string) {}
func (NoopPipelineHooks) OnConversionComplete(context.Context, string, string, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, int)                           {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopSchedulerHooks is a no-op implementation of SchedulerHooks.
type NoopSchedulerHooks struct{}

func (NoopSchedulerHooks) OnJobScheduled(context.Context, string, string)      {}
func (NoopSchedulerHooks) OnUnsupportedFormat(context.Context, string, string) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks  PipelineHooks  = NoopPipelineHooks{}
	schedulerHooks SchedulerHooks = NoopSchedulerHooks{}
	hooksMu        sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetSchedulerHooks registers custom scheduler hooks.
func SetSchedulerHooks(h SchedulerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		schedulerHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Scheduler returns the registered scheduler hooks.
func Scheduler() SchedulerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return schedulerHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	schedulerHooks = NoopSchedulerHooks{}
}
