// Package scheduler runs named jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner whose jobs share a parent context and a
// per-run timeout.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	timeout time.Duration
}

// New creates a Scheduler. Specs use the standard five-field format plus
// descriptors such as "@daily" or "@every 6h".
func New(ctx context.Context, timeout time.Duration) *Scheduler {
	return &Scheduler{cron: cron.New(), ctx: ctx, timeout: timeout}
}

// Register adds job under spec. Overlapping runs of the same job are skipped.
func (s *Scheduler) Register(spec, name string, job Job) error {
	wrapped := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
		s.run(name, job)
	}))
	if _, err := s.cron.AddJob(spec, wrapped); err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	return nil
}

// RunNow executes job once in the caller's goroutine.
func (s *Scheduler) RunNow(name string, job Job) error {
	return s.run(name, job)
}

func (s *Scheduler) run(name string, job Job) error {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	start := time.Now()
	if err := job(ctx); err != nil {
		slog.Error("scheduled job failed", "job", name, "error", err)
		return err
	}
	slog.Info("scheduled job finished", "job", name, "elapsed", time.Since(start))
	return nil
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "jobs", s.Len())
}

// Stop halts the scheduler and waits for running jobs to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("scheduler stopped")
}
