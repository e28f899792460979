package cli

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/fjscene/pkg/observability"
)

// runStats collects conversion and render timings through the pipeline
// hooks for the run summary.
type runStats struct {
	observability.NoopPipelineHooks

	mu          sync.Mutex
	conversions int
	convTime    time.Duration
	renderTime  time.Duration
}

func newRunStats() *runStats {
	return &runStats{}
}

func (s *runStats) OnConversionComplete(_ context.Context, _, _ string, d time.Duration, _ error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversions++
	s.convTime += d
}

func (s *runStats) OnRenderComplete(_ context.Context, _ string, _ int, d time.Duration, _ error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderTime += d
}

// snapshot returns the collected values.
func (s *runStats) snapshot() (conversions int, convTime, renderTime time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversions, s.convTime, s.renderTime
}
