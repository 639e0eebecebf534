package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "revenue-reconciliation-backend/internal/errors"
	"revenue-reconciliation-backend/internal/models"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) GetOrganizationSettings(ctx context.Context, orgID uuid.UUID) (*models.OrganizationSettings, error) {
	var s models.OrganizationSettings
	err := r.db.WithContext(ctx).First(&s, "organization_id = ?", orgID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("organization settings", orgID.String())
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveOrganizationSettings upserts on organization_id.
func (r *SettingsRepository) SaveOrganizationSettings(ctx context.Context, s *models.OrganizationSettings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "organization_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"preset", "overrides", "updated_at"}),
		}).
		Create(s).Error
}
