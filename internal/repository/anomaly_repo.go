package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "revenue-reconciliation-backend/internal/errors"
	"revenue-reconciliation-backend/internal/models"
)

type AnomalyRepository struct {
	db *gorm.DB
}

func NewAnomalyRepository(db *gorm.DB) *AnomalyRepository {
	return &AnomalyRepository{db: db}
}

// InsertFindings ignores rows that collide on (audit_id, fingerprint).
func (r *AnomalyRepository) InsertFindings(ctx context.Context, findings []models.Anomaly) (int64, error) {
	if len(findings) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&findings, 200)
	return res.RowsAffected, res.Error
}

type categoryStatRow struct {
	Category models.Category
	Count    int64
	Sum      decimal.Decimal
}

func (r *AnomalyRepository) Totals(ctx context.Context, auditID uuid.UUID) (models.FindingTotals, error) {
	totals := models.FindingTotals{
		AnnualAtRisk: decimal.Zero,
		ByCategory:   make(map[models.Category]int64),
	}

	var rows []categoryStatRow
	err := r.db.WithContext(ctx).Model(&models.Anomaly{}).
		Where("audit_id = ?", auditID).
		Select("category, COUNT(*) as count, COALESCE(SUM(annual_impact),0) as sum").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return totals, err
	}

	for _, row := range rows {
		totals.Count += row.Count
		totals.AnnualAtRisk = totals.AnnualAtRisk.Add(row.Sum)
		totals.ByCategory[row.Category] = row.Count
	}
	return totals, nil
}

func (r *AnomalyRepository) ListFindings(ctx context.Context, auditID uuid.UUID, filter models.AnomalyFilter) ([]models.Anomaly, string, bool, error) {
	var items []models.Anomaly
	query := r.db.WithContext(ctx).
		Where("audit_id = ?", auditID).
		Order("id ASC").
		Limit(filter.Limit + 1)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Cursor != "" {
		query = query.Where("id > ?", filter.Cursor)
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, "", false, err
	}

	hasMore := false
	var nextCursor string
	if len(items) > filter.Limit {
		hasMore = true
		nextCursor = items[filter.Limit-1].ID.String()
		items = items[:filter.Limit]
	}
	return items, nextCursor, hasMore, nil
}

func (r *AnomalyRepository) GetFinding(ctx context.Context, id uuid.UUID) (*models.Anomaly, error) {
	var anomaly models.Anomaly
	err := r.db.WithContext(ctx).First(&anomaly, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("anomaly", id.String())
	}
	if err != nil {
		return nil, err
	}
	return &anomaly, nil
}

// UpdateFindingStatus changes the status and writes the review log in one
// transaction.
func (r *AnomalyRepository) UpdateFindingStatus(ctx context.Context, id uuid.UUID, status models.AnomalyStatus, performedBy, reason string, at time.Time) (*models.Anomaly, error) {
	var anomaly models.Anomaly
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&anomaly, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFoundError("anomaly", id.String())
		}
		if err != nil {
			return err
		}

		entry := models.AnomalyReviewLog{
			ID:             uuid.New(),
			AnomalyID:      id,
			PreviousStatus: anomaly.Status,
			NewStatus:      status,
			PerformedBy:    performedBy,
			Reason:         reason,
			CreatedAt:      at,
		}
		if err := tx.Model(&anomaly).Update("status", status).Error; err != nil {
			return err
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	anomaly.Status = status
	return &anomaly, nil
}

func (r *AnomalyRepository) DeleteFindings(ctx context.Context, auditID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := tx.Model(&models.Anomaly{}).Select("id").Where("audit_id = ?", auditID)
		if err := tx.Where("anomaly_id IN (?)", ids).Delete(&models.AnomalyReviewLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Anomaly{}, "audit_id = ?", auditID).Error
	})
}
