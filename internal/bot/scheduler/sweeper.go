package scheduler

import (
	"context"
	"time"

	"jobboard-bot/internal/config"
	"jobboard-bot/internal/notify"
	"jobboard-bot/internal/storage/cached"
	"jobboard-bot/internal/storage/postgres"

	"go.uber.org/zap"
)

// DeadlineSweeper periodically closes approved jobs whose deadline has
// passed, so expired postings disappear from the browse list without any
// user action.
type DeadlineSweeper struct {
	store    *postgres.Store
	jobs     *cached.Jobs
	notifier *notify.Notifier
	config   *config.Config
	logger   *zap.Logger
}

func New(
	store *postgres.Store,
	jobs *cached.Jobs,
	notifier *notify.Notifier,
	cfg *config.Config,
	logger *zap.Logger,
) *DeadlineSweeper {
	return &DeadlineSweeper{
		store:    store,
		jobs:     jobs,
		notifier: notifier,
		config:   cfg,
		logger:   logger,
	}
}

func (ds *DeadlineSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(ds.config.SweepInterval)
	defer ticker.Stop()

	ds.logger.Info("deadline sweeper started",
		zap.Duration("interval", ds.config.SweepInterval),
	)

	ds.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			ds.logger.Info("deadline sweeper stopped")
			return
		case <-ticker.C:
			ds.sweep(ctx)
		}
	}
}

func (ds *DeadlineSweeper) sweep(ctx context.Context) {
	dbCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	closed, err := ds.store.CloseExpiredJobs(dbCtx)
	if err != nil {
		ds.logger.Error("deadline sweep failed", zap.Error(err))
		return
	}

	for i := range closed {
		job := &closed[i]

		// The cached card still shows the job as open.
		if err := ds.jobs.Invalidate(dbCtx, job.ID); err != nil {
			ds.logger.Warn("job cache invalidation failed",
				zap.Int64("job_id", job.ID),
				zap.Error(err),
			)
		}

		ds.notifier.JobClosed(job)
	}

	if len(closed) > 0 {
		ds.logger.Info("deadline sweep done", zap.Int("closed", len(closed)))
	}
}
