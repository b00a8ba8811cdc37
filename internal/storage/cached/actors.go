// Package cached puts a read-through redis layer in front of the point
// lookups hit on every update: the current actor's profile and job details.
// Mutations must call Invalidate; the TTL only bounds staleness when an
// invalidation is missed.
package cached

import (
	"context"
	"errors"
	"time"

	"jobboard-bot/internal/models"
	"jobboard-bot/internal/storage/redis"

	"go.uber.org/zap"
)

type actorStore interface {
	GetActorByChat(ctx context.Context, chatID int64, role string) (*models.Actor, error)
}

type kv interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Actors struct {
	store  actorStore
	cache  kv
	logger *zap.Logger
}

func NewActors(store actorStore, cache kv, logger *zap.Logger) *Actors {
	return &Actors{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// Get returns the actor for a chat identity, serving from cache when
// possible. Not-found is (nil, nil) and is never cached.
func (a *Actors) Get(ctx context.Context, chatID int64, role string) (*models.Actor, error) {
	key := redis.ActorKey(role, chatID)

	var cachedActor models.Actor
	err := a.cache.Get(ctx, key, &cachedActor)
	if err == nil {
		return &cachedActor, nil
	}
	if !errors.Is(err, redis.ErrNotFound) {
		// degraded cache must not take lookups down with it
		a.logger.Warn("actor cache read failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	actor, err := a.store.GetActorByChat(ctx, chatID, role)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, nil
	}

	if err := a.cache.Set(ctx, key, actor, redis.ActorCacheTTL); err != nil {
		a.logger.Warn("actor cache write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	return actor, nil
}

// Invalidate deletes the snapshot; called by every actor mutation path.
func (a *Actors) Invalidate(ctx context.Context, chatID int64, role string) error {
	return a.cache.Delete(ctx, redis.ActorKey(role, chatID))
}
