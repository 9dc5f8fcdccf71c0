package scheduler

import (
	"context"
	"sync"
	"time"

	"NewsDesk/internal/clock"
	"NewsDesk/internal/ports"
)

// TickerScheduler runs a job every interval until stopped. The first run
// happens one interval after Start.
type TickerScheduler struct {
	clk      clock.Clock
	interval time.Duration

	mu      sync.Mutex
	running bool
	timer   *clock.Timer
}

var _ ports.Scheduler = (*TickerScheduler)(nil)

// NewTickerScheduler builds a scheduler; a non-positive interval disables it.
func NewTickerScheduler(clk clock.Clock, interval time.Duration) *TickerScheduler {
	if clk == nil {
		clk = clock.Real()
	}
	return &TickerScheduler{clk: clk, interval: interval}
}

// Start begins ticking. Calling Start on a running scheduler is a no-op.
func (s *TickerScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil || s.interval <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	s.running = true
	s.scheduleLocked(ctx, job)

	return nil
}

// Stop cancels the pending tick. A job already running finishes.
func (s *TickerScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	return nil
}

func (s *TickerScheduler) scheduleLocked(ctx context.Context, job func(time.Time)) {
	s.timer = s.clk.AfterFunc(s.interval, func() {
		if !s.active(ctx) {
			return
		}

		job(s.clk.Now())

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.running && ctx.Err() == nil {
			s.scheduleLocked(ctx, job)
		}
	})
}

func (s *TickerScheduler) active(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running && ctx.Err() == nil
}
