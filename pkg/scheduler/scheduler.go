package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// RunFunc performs one scheduled run.
type RunFunc func(ctx context.Context) error

// LastRun describes the most recent completed run.
type LastRun struct {
	Started  time.Time
	Duration time.Duration
	Err      error
}

// Scheduler invokes a RunFunc on a cron schedule.
type Scheduler struct {
	spec   string
	run    RunFunc
	cron   *cron.Cron
	logger *slog.Logger

	mu      sync.Mutex
	running bool
	last    *LastRun
}

// New creates a scheduler for the cron expression spec.
func New(spec string, run RunFunc) *Scheduler {
	logger := slog.Default().With("component", "scheduler")
	return &Scheduler{
		spec:   spec,
		run:    run,
		logger: logger,
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{logger}),
			cron.SkipIfStillRunning(cronLogger{logger}),
		)),
	}
}

// Start schedules runs until ctx is done or Stop is called.
//
// Common expressions:
//   - "*/5 * * * *"  - every 5 minutes
//   - "0 * * * *"    - hourly
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}
	if _, err := cron.ParseStandard(s.spec); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.spec, err)
	}
	if _, err := s.cron.AddFunc(s.spec, func() { s.Trigger(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule runs: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("scheduler started", "schedule", s.spec)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Trigger runs once synchronously and records the outcome.
func (s *Scheduler) Trigger(ctx context.Context) {
	started := time.Now()
	err := s.run(ctx)
	last := &LastRun{Started: started, Duration: time.Since(started), Err: err}

	s.mu.Lock()
	s.last = last
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("scheduled run failed", "error", err, "duration", last.Duration)
		return
	}
	s.logger.Debug("scheduled run completed", "duration", last.Duration)
}

// Stop stops the scheduler and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// IsRunning reports whether the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled time, or nil when nothing is scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}

// Interval returns the gap between the next two scheduled times, or zero
// for an invalid expression.
func (s *Scheduler) Interval() time.Duration {
	sched, err := cron.ParseStandard(s.spec)
	if err != nil {
		return 0
	}
	first := sched.Next(time.Now())
	return sched.Next(first).Sub(first)
}

// Last returns the most recent completed run, or nil before the first one.
func (s *Scheduler) Last() *LastRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	last := *s.last
	return &last
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
