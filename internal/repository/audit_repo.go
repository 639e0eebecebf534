package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "revenue-reconciliation-backend/internal/errors"
	"revenue-reconciliation-backend/internal/models"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Expose DB if needed
func (r *AuditRepository) DB() *gorm.DB {
	return r.db
}

func (r *AuditRepository) CreateAudit(ctx context.Context, audit *models.Audit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

func (r *AuditRepository) GetAudit(ctx context.Context, id uuid.UUID) (*models.Audit, error) {
	var audit models.Audit
	err := r.db.WithContext(ctx).First(&audit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("audit", id.String())
	}
	if err != nil {
		return nil, err
	}
	return &audit, nil
}

func (r *AuditRepository) UpdateProgress(ctx context.Context, id uuid.UUID, completed int, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Audit{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"chunks_completed": completed,
			"updated_at":       at,
		}).Error
}

// MarkError only touches audits that are still processing.
func (r *AuditRepository) MarkError(ctx context.Context, id uuid.UUID, message string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Audit{}).
		Where("id = ? AND status = ?", id, models.AuditProcessing).
		Updates(map[string]interface{}{
			"status":        models.AuditError,
			"error_message": message,
			"updated_at":    at,
		}).Error
}

// Finalize is a conditional processing -> review update; exactly one caller wins.
func (r *AuditRepository) Finalize(ctx context.Context, id uuid.UUID, result models.AuditResult) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Audit{}).
		Where("id = ? AND status = ?", id, models.AuditProcessing).
		Updates(map[string]interface{}{
			"status":                 models.AuditReview,
			"total_anomalies":        result.TotalAnomalies,
			"annual_revenue_at_risk": result.AnnualRevenueAtRisk,
			"findings_truncated":     result.FindingsTruncated,
			"summary":                result.Summary,
			"completed_at":           result.CompletedAt,
			"updated_at":             result.CompletedAt,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *AuditRepository) Publish(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Audit{}).
		Where("id = ? AND status = ?", id, models.AuditReview).
		Updates(map[string]interface{}{
			"status":       models.AuditPublished,
			"published_at": at,
			"updated_at":   at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetAudit(ctx, id); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func (r *AuditRepository) DeleteAudit(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Audit{}, "id = ?", id).Error
}
