package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobboard-bot/internal/storage/redis"

	"go.uber.org/zap"
)

type kv interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Store loads and persists sessions in redis, keyed by chat identity.
type Store struct {
	cache  kv
	ttl    time.Duration
	logger *zap.Logger
}

func NewStore(cache kv, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the session for a chat, or a fresh one if none is stored.
func (st *Store) Get(ctx context.Context, chatID int64) (*Session, error) {
	var s Session

	err := st.cache.Get(ctx, redis.SessionKey(chatID), &s)
	if errors.Is(err, redis.ErrNotFound) {
		return &Session{ChatID: chatID}, nil
	}
	if err != nil {
		st.logger.Error("failed to load session",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("load session: %w", err)
	}

	return &s, nil
}

// Save writes the session back, refreshing the idle TTL.
func (st *Store) Save(ctx context.Context, s *Session) error {
	if err := st.cache.Set(ctx, redis.SessionKey(s.ChatID), s, st.ttl); err != nil {
		st.logger.Error("failed to save session",
			zap.Int64("chat_id", s.ChatID),
			zap.Error(err),
		)
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (st *Store) Clear(ctx context.Context, chatID int64) error {
	if err := st.cache.Delete(ctx, redis.SessionKey(chatID)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
