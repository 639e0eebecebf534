package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"revenue-reconciliation-backend/internal/models"
)

// ChunkTaskRepository is the postgres-backed chunk work queue.
type ChunkTaskRepository struct {
	db *gorm.DB
}

func NewChunkTaskRepository(db *gorm.DB) *ChunkTaskRepository {
	return &ChunkTaskRepository{db: db}
}

func (r *ChunkTaskRepository) Enqueue(ctx context.Context, tasks []models.ChunkTask) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&tasks, 500).Error
}

func (r *ChunkTaskRepository) ResetStale(ctx context.Context, auditID uuid.UUID, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.ChunkTask{}).
		Where("audit_id = ? AND status = ? AND started_at < ?", auditID, models.ChunkProcessing, cutoff).
		Updates(map[string]interface{}{
			"status":      models.ChunkPending,
			"claim_token": nil,
		})
	return res.RowsAffected, res.Error
}

// ClaimNext locks the oldest pending row with SKIP LOCKED so concurrent
// pollers never claim the same task.
func (r *ChunkTaskRepository) ClaimNext(ctx context.Context, auditID uuid.UUID, now time.Time) (*models.ChunkTask, error) {
	var claimed *models.ChunkTask

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.ChunkTask
		err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("audit_id = ? AND status = ?", auditID, models.ChunkPending).
			Order("created_at ASC, chunk_index ASC").
			Take(&task).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		token := uuid.New()
		res := tx.Model(&models.ChunkTask{}).
			Where("id = ? AND status = ?", task.ID, models.ChunkPending).
			Updates(map[string]interface{}{
				"status":      models.ChunkProcessing,
				"claim_token": token,
				"started_at":  now,
				"attempts":    gorm.Expr("attempts + 1"),
			})
		if res.Error != nil || res.RowsAffected == 0 {
			return res.Error
		}

		task.Status = models.ChunkProcessing
		task.ClaimToken = &token
		task.StartedAt = &now
		task.Attempts++
		claimed = &task
		return nil
	})
	return claimed, err
}

func (r *ChunkTaskRepository) Complete(ctx context.Context, task *models.ChunkTask, result models.ChunkResult, now time.Time) (bool, error) {
	if task.ClaimToken == nil {
		return false, nil
	}
	res := r.db.WithContext(ctx).Model(&models.ChunkTask{}).
		Where("id = ? AND status = ? AND claim_token = ?", task.ID, models.ChunkProcessing, *task.ClaimToken).
		Updates(map[string]interface{}{
			"status":          models.ChunkCompleted,
			"claim_token":     nil,
			"anomalies_found": result.AnomaliesFound,
			"truncated":       result.Truncated,
			"completed_at":    now,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *ChunkTaskRepository) Fail(ctx context.Context, task *models.ChunkTask, message string, now time.Time) error {
	if task.ClaimToken == nil {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.ChunkTask{}).
		Where("id = ? AND status = ? AND claim_token = ?", task.ID, models.ChunkProcessing, *task.ClaimToken).
		Updates(map[string]interface{}{
			"status":        models.ChunkError,
			"claim_token":   nil,
			"error_message": message,
			"completed_at":  now,
		}).Error
}

type chunkStatRow struct {
	Status models.ChunkStatus
	Count  int
}

func (r *ChunkTaskRepository) Counts(ctx context.Context, auditID uuid.UUID) (models.ChunkCounts, error) {
	var rows []chunkStatRow
	err := r.db.WithContext(ctx).Model(&models.ChunkTask{}).
		Where("audit_id = ?", auditID).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(models.ChunkCounts, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *ChunkTaskRepository) Truncated(ctx context.Context, auditID uuid.UUID) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Model(&models.ChunkTask{}).
		Where("audit_id = ? AND status = ?", auditID, models.ChunkCompleted).
		Select("COALESCE(SUM(truncated), 0)").
		Scan(&total).Error
	return total, err
}

func (r *ChunkTaskRepository) FirstFailure(ctx context.Context, auditID uuid.UUID) (*models.ChunkTask, error) {
	var tasks []models.ChunkTask
	err := r.db.WithContext(ctx).
		Where("audit_id = ? AND status = ?", auditID, models.ChunkError).
		Order("chunk_index ASC").
		Limit(1).
		Find(&tasks).Error
	if err != nil || len(tasks) == 0 {
		return nil, err
	}
	return &tasks[0], nil
}

func (r *ChunkTaskRepository) DeleteTasks(ctx context.Context, auditID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ChunkTask{}, "audit_id = ?", auditID).Error
}
