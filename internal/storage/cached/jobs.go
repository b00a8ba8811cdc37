package cached

import (
	"context"
	"errors"

	"jobboard-bot/internal/models"
	"jobboard-bot/internal/storage/redis"

	"go.uber.org/zap"
)

type jobStore interface {
	GetJob(ctx context.Context, id int64) (*models.Job, error)
}

// Jobs caches job detail lookups under entity:job:{id}.
type Jobs struct {
	store  jobStore
	cache  kv
	logger *zap.Logger
}

func NewJobs(store jobStore, cache kv, logger *zap.Logger) *Jobs {
	return &Jobs{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

func (j *Jobs) Get(ctx context.Context, id int64) (*models.Job, error) {
	key := redis.JobKey(id)

	var cachedJob models.Job
	err := j.cache.Get(ctx, key, &cachedJob)
	if err == nil {
		return &cachedJob, nil
	}
	if !errors.Is(err, redis.ErrNotFound) {
		j.logger.Warn("job cache read failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	job, err := j.store.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}

	if err := j.cache.Set(ctx, key, job, redis.JobCacheTTL); err != nil {
		j.logger.Warn("job cache write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	return job, nil
}

// Invalidate deletes the detail entry; called whenever a job's status or
// flags change.
func (j *Jobs) Invalidate(ctx context.Context, id int64) error {
	return j.cache.Delete(ctx, redis.JobKey(id))
}
