package postgres

import (
	"context"
	"fmt"
	"time"

	"jobboard-bot/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

func (s *Store) CreateCompany(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (
			owner_chat_id, kind, subtype, name, trade_license_ref,
			authorized_person_ref, authorization_letter_ref,
			status, verified, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := s.sess.
		SelectBySql(query,
			company.OwnerChatID,
			company.Kind,
			company.Subtype,
			company.Name,
			company.TradeLicenseRef,
			company.AuthorizedPersonRef,
			company.AuthorizationLetterRef,
			models.CompanyStatusPending,
			false,
		).
		LoadOneContext(ctx, &id)

	if err != nil {
		s.logger.Error("failed to create company",
			zap.Int64("owner_chat_id", company.OwnerChatID),
			zap.String("name", company.Name),
			zap.Error(err),
		)
		return fmt.Errorf("create company: %w", err)
	}

	company.ID = id
	company.Status = models.CompanyStatusPending

	s.logger.Info("company created",
		zap.Int64("company_id", id),
		zap.Int64("owner_chat_id", company.OwnerChatID),
	)

	return nil
}

func (s *Store) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	var company models.Company

	err := s.sess.
		Select("*").
		From("companies").
		Where("id = ?", id).
		LoadOneContext(ctx, &company)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get company",
			zap.Int64("company_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get company: %w", err)
	}

	return &company, nil
}

func (s *Store) GetCompaniesByOwner(ctx context.Context, ownerChatID int64) ([]models.Company, error) {
	var companies []models.Company

	_, err := s.sess.
		Select("*").
		From("companies").
		Where("owner_chat_id = ?", ownerChatID).
		OrderBy("created_at").
		LoadContext(ctx, &companies)

	if err != nil {
		s.logger.Error("failed to get companies by owner",
			zap.Int64("owner_chat_id", ownerChatID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get companies by owner: %w", err)
	}

	return companies, nil
}

// ApprovedCompaniesByOwner returns only companies that may post jobs.
func (s *Store) ApprovedCompaniesByOwner(ctx context.Context, ownerChatID int64) ([]models.Company, error) {
	var companies []models.Company

	_, err := s.sess.
		Select("*").
		From("companies").
		Where("owner_chat_id = ? AND status = ?", ownerChatID, models.CompanyStatusApproved).
		OrderBy("created_at").
		LoadContext(ctx, &companies)

	if err != nil {
		s.logger.Error("failed to get approved companies",
			zap.Int64("owner_chat_id", ownerChatID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("approved companies by owner: %w", err)
	}

	return companies, nil
}

func (s *Store) CountCompaniesByOwner(ctx context.Context, ownerChatID int64) (int, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("companies").
		Where("owner_chat_id = ?", ownerChatID).
		LoadOneContext(ctx, &count)

	if err != nil {
		return 0, fmt.Errorf("count companies by owner: %w", err)
	}

	return count, nil
}

func (s *Store) GetCompanyByOwnerAt(ctx context.Context, ownerChatID int64, index int) (*models.Company, error) {
	var company models.Company

	err := s.sess.
		Select("*").
		From("companies").
		Where("owner_chat_id = ?", ownerChatID).
		OrderBy("created_at").
		Limit(1).
		Offset(uint64(index)).
		LoadOneContext(ctx, &company)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("get company by owner at: %w", err)
	}

	return &company, nil
}

// SetCompanyStatus records a moderation decision. Approval also sets the
// verified flag.
func (s *Store) SetCompanyStatus(ctx context.Context, id int64, status string) error {
	verified := status == models.CompanyStatusApproved

	_, err := s.sess.
		Update("companies").
		Set("status", status).
		Set("verified", verified).
		Set("updated_at", time.Now()).
		Where("id = ?", id).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to set company status",
			zap.Int64("company_id", id),
			zap.String("status", status),
			zap.Error(err),
		)
		return fmt.Errorf("set company status: %w", err)
	}

	s.logger.Info("company status updated",
		zap.Int64("company_id", id),
		zap.String("status", status),
	)

	return nil
}
