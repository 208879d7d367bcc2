package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ScheduleExecutor runs every scheduled transaction that has come due.
type ScheduleExecutor interface {
	RunDue(ctx context.Context, now time.Time) (int, error)
}

// ScheduleRunner polls for due scheduled transactions and executes them.
type ScheduleRunner struct {
	executor ScheduleExecutor
	logger   zerolog.Logger
	interval time.Duration
}

// Config for ScheduleRunner.
type Config struct {
	Executor ScheduleExecutor
	Logger   zerolog.Logger
	Interval time.Duration // Polling interval
}

// NewScheduleRunner creates a new ScheduleRunner.
func NewScheduleRunner(cfg Config) *ScheduleRunner {
	if cfg.Interval == 0 {
		cfg.Interval = time.Minute
	}

	return &ScheduleRunner{
		executor: cfg.Executor,
		logger:   cfg.Logger,
		interval: cfg.Interval,
	}
}

// Start begins the schedule runner.
// It runs continuously until the context is cancelled.
func (r *ScheduleRunner) Start(ctx context.Context) error {
	r.logger.Info().
		Dur("interval", r.interval).
		Msg("schedule runner started")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// Process immediately on start
	r.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("schedule runner shutting down")
			return ctx.Err()
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *ScheduleRunner) runOnce(ctx context.Context) {
	executed, err := r.executor.RunDue(ctx, time.Now().UTC())
	if err != nil {
		r.logger.Error().Err(err).Msg("schedule run failed")
		return
	}

	if executed > 0 {
		r.logger.Info().Int("executed", executed).Msg("schedules executed")
	}
}
