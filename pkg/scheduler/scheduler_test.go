package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduler_Start(t *testing.T) {
	tests := []struct {
		name        string
		schedule    string
		wantRunning bool
		wantError   bool
	}{
		{name: "every five minutes", schedule: "*/5 * * * *", wantRunning: true},
		{name: "hourly", schedule: "0 * * * *", wantRunning: true},
		{name: "empty", schedule: "", wantError: true},
		{name: "invalid", schedule: "invalid cron", wantError: true},
		{name: "seconds field rejected", schedule: "*/5 * * * * *", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.schedule, func(context.Context) error { return nil })

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			err := s.Start(ctx)
			if (err != nil) != tt.wantError {
				t.Errorf("Start() error = %v, wantError %v", err, tt.wantError)
			}
			if s.IsRunning() != tt.wantRunning {
				t.Errorf("IsRunning() = %v, want %v", s.IsRunning(), tt.wantRunning)
			}

			if tt.wantRunning {
				next := s.NextRun()
				if next == nil {
					t.Fatal("NextRun() returned nil for running scheduler")
				}
				if !next.After(time.Now()) {
					t.Errorf("expected next run in the future, got %v", next)
				}
				s.Stop()
				if s.IsRunning() {
					t.Error("expected scheduler stopped")
				}
				if s.NextRun() != nil {
					t.Error("expected no next run after stop")
				}
			}
		})
	}
}

func TestScheduler_StartTwice(t *testing.T) {
	s := New("*/5 * * * *", func(context.Context) error { return nil })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()
	if err := s.Start(ctx); err == nil {
		t.Error("expected error starting twice")
	}
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	s := New("*/5 * * * *", func(context.Context) error { return nil })
	ctx, cancel := context.WithCancel(context.Background())

	if err := s.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()

	deadline := time.Now().Add(time.Second)
	for s.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if s.IsRunning() {
		t.Error("expected scheduler to stop after context cancel")
	}
}

func TestScheduler_Trigger(t *testing.T) {
	var calls atomic.Int32
	fail := errors.New("store unavailable")
	s := New("*/5 * * * *", func(context.Context) error {
		if calls.Add(1) == 2 {
			return fail
		}
		return nil
	})

	if s.Last() != nil {
		t.Fatal("expected no last run before trigger")
	}

	s.Trigger(context.Background())
	last := s.Last()
	if last == nil || last.Err != nil {
		t.Fatalf("expected successful last run, got %+v", last)
	}

	s.Trigger(context.Background())
	if last := s.Last(); !errors.Is(last.Err, fail) {
		t.Errorf("expected last error %v, got %v", fail, last.Err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestScheduler_Interval(t *testing.T) {
	tests := []struct {
		spec string
		want time.Duration
	}{
		{"*/5 * * * *", 5 * time.Minute},
		{"0 * * * *", time.Hour},
		{"bogus", 0},
	}
	for _, tt := range tests {
		if got := New(tt.spec, nil).Interval(); got != tt.want {
			t.Errorf("Interval(%q) = %v, want %v", tt.spec, got, tt.want)
		}
	}
}
