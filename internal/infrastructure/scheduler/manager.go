// Package scheduler runs periodic maintenance jobs using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/gohub-app/gohub/internal/shared/biztime"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

// SessionSweeper deactivates sessions whose refresh window has passed and
// returns how many were closed.
type SessionSweeper interface {
	SweepExpiredSessions(ctx context.Context) (int64, error)
}

// SchedulerManager owns the single gocron scheduler of the process.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterSessionSweepJob runs sweeper every interval, starting immediately.
// Runs never overlap; each one is bounded by the interval.
func (m *SchedulerManager) RegisterSessionSweepJob(sweeper SessionSweeper, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			m.sweepSessions(ctx, sweeper)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("session", "expire"),
		gocron.WithName("session-sweeper"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered session sweep job", "interval", interval.String())
	return nil
}

func (m *SchedulerManager) sweepSessions(ctx context.Context, sweeper SessionSweeper) {
	startTime := biztime.NowUTC()

	closed, err := sweeper.SweepExpiredSessions(ctx)
	if err != nil {
		m.logger.Errorw("failed to sweep expired sessions",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if closed > 0 {
		m.logger.Infow("expired sessions deactivated",
			"count", closed,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("no expired sessions to deactivate",
			"duration", time.Since(startTime),
		)
	}
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
