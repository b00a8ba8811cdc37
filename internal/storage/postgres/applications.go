package postgres

import (
	"context"
	"fmt"

	"jobboard-bot/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// HasApplication is the friendly pre-check for the "already applied" notice.
// The real idempotence guard is the unique insert below.
func (s *Store) HasApplication(ctx context.Context, jobID, actorID int64) (bool, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("applications").
		Where("job_id = ? AND actor_id = ?", jobID, actorID).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to check application existence",
			zap.Int64("job_id", jobID),
			zap.Int64("actor_id", actorID),
			zap.Error(err),
		)
		return false, fmt.Errorf("has application: %w", err)
	}

	return count > 0, nil
}

// CreateApplication inserts at most one row per (job, actor). The unique
// constraint plus ON CONFLICT closes the check-then-insert race; the bool
// reports whether this call actually inserted.
func (s *Store) CreateApplication(ctx context.Context, app *models.Application) (bool, error) {
	query := `
		INSERT INTO applications (
			job_id, actor_id, cover_letter, cv_ref, portfolio, note,
			status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (job_id, actor_id) DO NOTHING
	`

	result, err := s.sess.
		InsertBySql(query,
			app.JobID,
			app.ActorID,
			app.CoverLetter,
			app.CVRef,
			app.Portfolio,
			app.Note,
			models.ApplicationStatusApplied,
		).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to create application",
			zap.Int64("job_id", app.JobID),
			zap.Int64("actor_id", app.ActorID),
			zap.Error(err),
		)
		return false, fmt.Errorf("create application: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return false, nil
	}

	s.logger.Info("application created",
		zap.Int64("job_id", app.JobID),
		zap.Int64("actor_id", app.ActorID),
	)

	return true, nil
}

func (s *Store) GetApplication(ctx context.Context, id int64) (*models.Application, error) {
	var app models.Application

	err := s.sess.
		Select("*").
		From("applications").
		Where("id = ?", id).
		LoadOneContext(ctx, &app)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}

	return &app, nil
}

func (s *Store) CountApplicationsByActor(ctx context.Context, actorID int64) (int, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("applications").
		Where("actor_id = ?", actorID).
		LoadOneContext(ctx, &count)

	if err != nil {
		return 0, fmt.Errorf("count applications by actor: %w", err)
	}

	return count, nil
}

func (s *Store) GetApplicationByActorAt(ctx context.Context, actorID int64, index int) (*models.Application, error) {
	var app models.Application

	err := s.sess.
		Select("*").
		From("applications").
		Where("actor_id = ?", actorID).
		OrderBy("created_at DESC").
		Limit(1).
		Offset(uint64(index)).
		LoadOneContext(ctx, &app)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("get application by actor at: %w", err)
	}

	return &app, nil
}

func (s *Store) CountApplicationsByJob(ctx context.Context, jobID int64) (int, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("applications").
		Where("job_id = ?", jobID).
		LoadOneContext(ctx, &count)

	if err != nil {
		return 0, fmt.Errorf("count applications by job: %w", err)
	}

	return count, nil
}

func (s *Store) GetApplicationByJobAt(ctx context.Context, jobID int64, index int) (*models.Application, error) {
	var app models.Application

	err := s.sess.
		Select("*").
		From("applications").
		Where("job_id = ?", jobID).
		OrderBy("created_at").
		Limit(1).
		Offset(uint64(index)).
		LoadOneContext(ctx, &app)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("get application by job at: %w", err)
	}

	return &app, nil
}

func (s *Store) SetApplicationStatus(ctx context.Context, id int64, status string) error {
	_, err := s.sess.
		Update("applications").
		Set("status", status).
		Where("id = ?", id).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to set application status",
			zap.Int64("application_id", id),
			zap.String("status", status),
			zap.Error(err),
		)
		return fmt.Errorf("set application status: %w", err)
	}

	return nil
}

// SaveJob bookmarks a job for an actor, once.
func (s *Store) SaveJob(ctx context.Context, jobID, actorID int64) (bool, error) {
	query := `
		INSERT INTO saved_jobs (job_id, actor_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (job_id, actor_id) DO NOTHING
	`

	result, err := s.sess.
		InsertBySql(query, jobID, actorID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to save job",
			zap.Int64("job_id", jobID),
			zap.Int64("actor_id", actorID),
			zap.Error(err),
		)
		return false, fmt.Errorf("save job: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (s *Store) CountSavedJobs(ctx context.Context, actorID int64) (int, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("saved_jobs").
		Where("actor_id = ?", actorID).
		LoadOneContext(ctx, &count)

	if err != nil {
		return 0, fmt.Errorf("count saved jobs: %w", err)
	}

	return count, nil
}

// GetSavedJobAt returns the job itself, joined through the bookmark table.
func (s *Store) GetSavedJobAt(ctx context.Context, actorID int64, index int) (*models.Job, error) {
	var job models.Job

	query := `
		SELECT j.* FROM jobs j
		JOIN saved_jobs sj ON sj.job_id = j.id
		WHERE sj.actor_id = ?
		ORDER BY sj.created_at DESC
		LIMIT 1 OFFSET ?
	`

	err := s.sess.
		SelectBySql(query, actorID, index).
		LoadOneContext(ctx, &job)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("get saved job at: %w", err)
	}

	return &job, nil
}
