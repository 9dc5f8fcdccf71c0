package scheduler

import (
	"context"
	"testing"
	"time"

	"NewsDesk/internal/clock"
)

func TestTickerSchedulerRunsEveryInterval(t *testing.T) {
	t.Parallel()

	clk := clock.Fake(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	s := NewTickerScheduler(clk, time.Minute)

	var runs []time.Time
	if err := s.Start(context.Background(), func(at time.Time) { runs = append(runs, at) }); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if err := s.Start(context.Background(), func(time.Time) { t.Fatalf("second Start must not register a job") }); err != nil {
		t.Fatalf("second Start returned error: %v", err)
	}

	clk.Advance(30 * time.Second)
	if len(runs) != 0 {
		t.Fatalf("job must not run before the first interval")
	}

	clk.Advance(30 * time.Second)
	clk.Advance(time.Minute)
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if !runs[1].Equal(time.Date(2024, 1, 1, 9, 2, 0, 0, time.UTC)) {
		t.Fatalf("unexpected tick time: %s", runs[1])
	}

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
	clk.Advance(5 * time.Minute)
	if len(runs) != 2 {
		t.Fatalf("job ran after Stop")
	}
	if clk.Pending() != 0 {
		t.Fatalf("Stop should cancel the pending tick")
	}
}

func TestTickerSchedulerHonoursContext(t *testing.T) {
	t.Parallel()

	clk := clock.Fake(time.Now())
	s := NewTickerScheduler(clk, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	runs := 0
	s.Start(ctx, func(time.Time) { runs++ })

	cancel()
	clk.Advance(time.Second)
	if runs != 0 {
		t.Fatalf("job must not run once the context is done")
	}
}

func TestTickerSchedulerDisabled(t *testing.T) {
	t.Parallel()

	clk := clock.Fake(time.Now())
	s := NewTickerScheduler(clk, 0)
	s.Start(context.Background(), func(time.Time) { t.Fatalf("disabled scheduler ran a job") })

	if clk.Pending() != 0 {
		t.Fatalf("disabled scheduler must not arm a timer")
	}
}
