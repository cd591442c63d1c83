package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler wraps a gocron scheduler for the periodic audit.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(opts ...gocron.SchedulerOption) (*Scheduler, error) {
	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start(_ context.Context) {
	slog.Info("Starting audit scheduler")
	s.scheduler.Start()
}

// Stop waits for running jobs and shuts the scheduler down.
func (s *Scheduler) Stop(_ context.Context) error {
	slog.Info("Stopping audit scheduler")
	return s.scheduler.Shutdown()
}

// ScheduleCoverage runs the auditor every interval, starting immediately.
// A non-positive interval disables the job and returns an empty id.
func (s *Scheduler) ScheduleCoverage(interval time.Duration, a *Auditor) (string, error) {
	if interval <= 0 {
		return "", nil
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { a.Run() }),
		gocron.WithName("translation-coverage"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create coverage audit job: %w", err)
	}
	return job.ID().String(), nil
}

// ScheduleCoverageCron runs the auditor on a standard five-field cron schedule.
func (s *Scheduler) ScheduleCoverageCron(expr string, a *Auditor) (string, error) {
	job, err := s.scheduler.NewJob(
		gocron.CronJob(expr, false),
		gocron.NewTask(func() { a.Run() }),
		gocron.WithName("translation-coverage"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create coverage audit job: %w", err)
	}
	return job.ID().String(), nil
}

// Jobs reports the number of scheduled jobs.
func (s *Scheduler) Jobs() int {
	return len(s.scheduler.Jobs())
}
