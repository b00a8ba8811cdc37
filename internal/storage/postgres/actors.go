package postgres

import (
	"context"
	"fmt"
	"time"

	"jobboard-bot/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// updatableActorColumns is the whitelist for single-field profile edits.
var updatableActorColumns = map[string]bool{
	"first_name": true,
	"last_name":  true,
	"email":      true,
	"phone":      true,
	"gender":     true,
	"age":        true,
	"country":    true,
	"city":       true,
	"skills":     true,
	"portfolio":  true,
}

func (s *Store) CreateActor(ctx context.Context, actor *models.Actor) error {
	query := `
		INSERT INTO users (
			chat_id, role, first_name, last_name, email, phone,
			gender, age, country, city, skills, portfolio,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := s.sess.
		SelectBySql(query,
			actor.ChatID,
			actor.Role,
			actor.FirstName,
			actor.LastName,
			actor.Email,
			actor.Phone,
			actor.Gender,
			actor.Age,
			actor.Country,
			actor.City,
			actor.Skills,
			actor.Portfolio,
		).
		LoadOneContext(ctx, &id)

	if err != nil {
		s.logger.Error("failed to create actor",
			zap.Int64("chat_id", actor.ChatID),
			zap.String("role", actor.Role),
			zap.Error(err),
		)
		return fmt.Errorf("create actor: %w", err)
	}

	actor.ID = id

	s.logger.Info("actor created",
		zap.Int64("chat_id", actor.ChatID),
		zap.String("role", actor.Role),
	)

	return nil
}

// GetActorByChat is the point lookup behind the read-through cache.
// Returns (nil, nil) when the actor is not registered.
func (s *Store) GetActorByChat(ctx context.Context, chatID int64, role string) (*models.Actor, error) {
	var actor models.Actor

	err := s.sess.
		Select("*").
		From("users").
		Where("chat_id = ? AND role = ?", chatID, role).
		LoadOneContext(ctx, &actor)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get actor",
			zap.Int64("chat_id", chatID),
			zap.String("role", role),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get actor: %w", err)
	}

	return &actor, nil
}

// GetActorByID resolves an applicant referenced from an application row.
func (s *Store) GetActorByID(ctx context.Context, id int64) (*models.Actor, error) {
	var actor models.Actor

	err := s.sess.
		Select("*").
		From("users").
		Where("id = ?", id).
		LoadOneContext(ctx, &actor)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get actor by id",
			zap.Int64("actor_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get actor by id: %w", err)
	}

	return &actor, nil
}

// UpdateActorField writes a single profile field. Callers must invalidate
// the actor cache right after.
func (s *Store) UpdateActorField(ctx context.Context, chatID int64, role, column string, value interface{}) error {
	if !updatableActorColumns[column] {
		return fmt.Errorf("update actor field: column %q is not updatable", column)
	}

	_, err := s.sess.
		Update("users").
		Set(column, value).
		Set("updated_at", time.Now()).
		Where("chat_id = ? AND role = ?", chatID, role).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update actor field",
			zap.Int64("chat_id", chatID),
			zap.String("role", role),
			zap.String("column", column),
			zap.Error(err),
		)
		return fmt.Errorf("update actor field: %w", err)
	}

	s.logger.Info("actor field updated",
		zap.Int64("chat_id", chatID),
		zap.String("role", role),
		zap.String("column", column),
	)

	return nil
}
