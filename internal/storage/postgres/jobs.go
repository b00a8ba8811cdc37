package postgres

import (
	"context"
	"fmt"
	"time"

	"jobboard-bot/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

const openJobsCond = "status = 'approved' AND NOT closed"

func (s *Store) CreateJob(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (
			company_id, posted_by, title, category, site, employment_type,
			sector, education, experience, gender_pref, description,
			city, country, salary_type, salary_amount, salary_currency,
			deadline, vacancies, status, promoted, closed,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, false, false, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := s.sess.
		SelectBySql(query,
			job.CompanyID,
			job.PostedBy,
			job.Title,
			job.Category,
			job.Site,
			job.EmploymentType,
			job.Sector,
			job.Education,
			job.Experience,
			job.GenderPref,
			job.Description,
			job.City,
			job.Country,
			job.SalaryType,
			job.SalaryAmount,
			job.SalaryCurrency,
			job.Deadline,
			job.Vacancies,
			models.JobStatusPending,
		).
		LoadOneContext(ctx, &id)

	if err != nil {
		s.logger.Error("failed to create job",
			zap.Int64("company_id", job.CompanyID),
			zap.String("title", job.Title),
			zap.Error(err),
		)
		return fmt.Errorf("create job: %w", err)
	}

	job.ID = id
	job.Status = models.JobStatusPending

	s.logger.Info("job created",
		zap.Int64("job_id", id),
		zap.Int64("company_id", job.CompanyID),
	)

	return nil
}

// GetJob is the point lookup behind the entity cache.
func (s *Store) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	var job models.Job

	err := s.sess.
		Select("*").
		From("jobs").
		Where("id = ?", id).
		LoadOneContext(ctx, &job)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get job",
			zap.Int64("job_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get job: %w", err)
	}

	return &job, nil
}

// CountOpenJobs and GetOpenJobAt back the browse cursor: count first, clamp,
// then select the element at the clamped index.
func (s *Store) CountOpenJobs(ctx context.Context) (int, error) {
	var count int

	err := s.sess.
		SelectBySql("SELECT COUNT(*) FROM jobs WHERE " + openJobsCond).
		LoadOneContext(ctx, &count)

	if err != nil {
		return 0, fmt.Errorf("count open jobs: %w", err)
	}

	return count, nil
}

func (s *Store) GetOpenJobAt(ctx context.Context, index int) (*models.Job, error) {
	var job models.Job

	err := s.sess.
		SelectBySql(
			"SELECT * FROM jobs WHERE "+openJobsCond+" ORDER BY promoted DESC, created_at DESC LIMIT 1 OFFSET ?",
			index,
		).
		LoadOneContext(ctx, &job)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("get open job at: %w", err)
	}

	return &job, nil
}

func (s *Store) CountJobsByPoster(ctx context.Context, chatID int64) (int, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("jobs").
		Where("posted_by = ?", chatID).
		LoadOneContext(ctx, &count)

	if err != nil {
		return 0, fmt.Errorf("count jobs by poster: %w", err)
	}

	return count, nil
}

func (s *Store) GetJobByPosterAt(ctx context.Context, chatID int64, index int) (*models.Job, error) {
	var job models.Job

	err := s.sess.
		Select("*").
		From("jobs").
		Where("posted_by = ?", chatID).
		OrderBy("created_at DESC").
		Limit(1).
		Offset(uint64(index)).
		LoadOneContext(ctx, &job)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("get job by poster at: %w", err)
	}

	return &job, nil
}

// SetJobStatus records a moderation decision.
func (s *Store) SetJobStatus(ctx context.Context, id int64, status string) error {
	_, err := s.sess.
		Update("jobs").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where("id = ?", id).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to set job status",
			zap.Int64("job_id", id),
			zap.String("status", status),
			zap.Error(err),
		)
		return fmt.Errorf("set job status: %w", err)
	}

	s.logger.Info("job status updated",
		zap.Int64("job_id", id),
		zap.String("status", status),
	)

	return nil
}

// CloseExpiredJobs flips the closed flag on approved jobs whose deadline has
// passed and returns the affected rows so callers can invalidate caches and
// notify owners.
func (s *Store) CloseExpiredJobs(ctx context.Context) ([]models.Job, error) {
	query := `
		UPDATE jobs
		SET closed = true, updated_at = NOW()
		WHERE status = 'approved' AND NOT closed AND deadline < CURRENT_DATE
		RETURNING *
	`

	var jobs []models.Job
	_, err := s.sess.
		SelectBySql(query).
		LoadContext(ctx, &jobs)

	if err != nil {
		s.logger.Error("failed to close expired jobs", zap.Error(err))
		return nil, fmt.Errorf("close expired jobs: %w", err)
	}

	if len(jobs) > 0 {
		s.logger.Info("expired jobs closed", zap.Int("count", len(jobs)))
	}

	return jobs, nil
}
