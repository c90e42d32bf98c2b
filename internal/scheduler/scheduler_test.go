package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestRegister(t *testing.T) {
	noop := func(ctx context.Context) error { return nil }

	t.Run("requires ID and handler", func(t *testing.T) {
		s := New("UTC")
		if err := s.Register(&Job{Name: "no id", Handler: noop}); err == nil {
			t.Error("expected error for missing ID")
		}
		if err := s.Register(&Job{ID: "no-handler", Name: "no handler"}); err == nil {
			t.Error("expected error for missing handler")
		}
	})

	t.Run("rejects duplicate IDs", func(t *testing.T) {
		s := New("UTC")
		if err := s.Register(IntervalJob("job", "first", time.Hour, noop)); err != nil {
			t.Fatalf("first register: %v", err)
		}
		if err := s.Register(IntervalJob("job", "second", time.Hour, noop)); err == nil {
			t.Error("expected error for duplicate ID")
		}
	})

	t.Run("applies default timeout and next run", func(t *testing.T) {
		s := New("UTC")
		job := IntervalJob("job", "job", time.Hour, noop)
		if err := s.Register(job); err != nil {
			t.Fatalf("register: %v", err)
		}
		if job.Timeout != 5*time.Minute {
			t.Errorf("got timeout %s, want 5m", job.Timeout)
		}
		if job.NextRun == nil {
			t.Error("expected next run to be computed")
		}
	})
}

func TestNextRun(t *testing.T) {
	s := New("UTC")
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	t.Run("interval", func(t *testing.T) {
		next := s.nextRun(Schedule{Type: ScheduleInterval, Interval: 5 * time.Minute}, now)
		want := now.Add(5 * time.Minute)
		if !next.Equal(want) {
			t.Errorf("got %s, want %s", next, want)
		}
	})

	t.Run("daily before the mark runs today", func(t *testing.T) {
		next := s.nextRun(Schedule{Type: ScheduleDaily, At: "23:00"}, now)
		want := time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC)
		if !next.Equal(want) {
			t.Errorf("got %s, want %s", next, want)
		}
	})

	t.Run("daily after the mark rolls to tomorrow", func(t *testing.T) {
		next := s.nextRun(Schedule{Type: ScheduleDaily, At: "00:00"}, now)
		want := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
		if !next.Equal(want) {
			t.Errorf("got %s, want %s", next, want)
		}
	})
}

func TestRunNowAndStats(t *testing.T) {
	s := New("UTC")

	var runs atomic.Int64
	ok := IntervalJob("ok", "succeeds", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	bad := IntervalJob("bad", "fails", time.Hour, func(ctx context.Context) error {
		return fmt.Errorf("boom")
	})

	if err := s.Register(ok); err != nil {
		t.Fatalf("register ok: %v", err)
	}
	if err := s.Register(bad); err != nil {
		t.Fatalf("register bad: %v", err)
	}

	if err := s.RunNow("missing"); err == nil {
		t.Error("expected error for unknown job")
	}
	if err := s.RunNow("ok"); err != nil {
		t.Fatalf("run ok: %v", err)
	}
	if err := s.RunNow("bad"); err != nil {
		t.Fatalf("run bad: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		stats := s.GetStats()
		if stats.TotalRuns >= 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if runs.Load() != 1 {
		t.Errorf("handler ran %d times, want 1", runs.Load())
	}

	stats := s.GetStats()
	if stats.TotalRuns != 2 {
		t.Errorf("got %d total runs, want 2", stats.TotalRuns)
	}
	if stats.TotalErrors != 1 {
		t.Errorf("got %d total errors, want 1", stats.TotalErrors)
	}
	for _, job := range stats.Jobs {
		if job.ID == "bad" && job.LastError != "boom" {
			t.Errorf("got last error %q, want boom", job.LastError)
		}
	}
}

func TestStartStop(t *testing.T) {
	s := New("UTC")

	var runs atomic.Int64
	fast := IntervalJob("fast", "fast", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	if err := s.Register(fast); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Start(); err == nil {
		t.Error("expected error for double start")
	}

	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if runs.Load() == 0 {
		t.Fatal("job never ran")
	}

	s.Stop()
	after := runs.Load()
	time.Sleep(50 * time.Millisecond)
	if runs.Load() != after {
		t.Error("job ran after Stop")
	}
}
