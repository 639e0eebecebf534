package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "revenue-reconciliation-backend/internal/errors"
	"revenue-reconciliation-backend/internal/models"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func tasks(auditID uuid.UUID, n int) []models.ChunkTask {
	out := make([]models.ChunkTask, n)
	for i := range out {
		out[i] = models.ChunkTask{
			ID:          uuid.New(),
			AuditID:     auditID,
			ChunkIndex:  i,
			TotalChunks: n,
			Status:      models.ChunkPending,
			CreatedAt:   t0.Add(time.Duration(i) * time.Second),
		}
	}
	return out
}

func TestStore_ClaimOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	auditID := uuid.New()
	other := uuid.New()
	require.NoError(t, s.Enqueue(ctx, tasks(other, 1)))
	require.NoError(t, s.Enqueue(ctx, tasks(auditID, 3)))

	for want := 0; want < 3; want++ {
		task, err := s.ClaimNext(ctx, auditID, t0)
		require.NoError(t, err)
		require.NotNil(t, task)
		assert.Equal(t, want, task.ChunkIndex)
		assert.Equal(t, models.ChunkProcessing, task.Status)
		assert.NotNil(t, task.ClaimToken)
		assert.Equal(t, 1, task.Attempts)
	}

	task, err := s.ClaimNext(ctx, auditID, t0)
	require.NoError(t, err)
	assert.Nil(t, task)

	counts, err := s.Counts(ctx, auditID)
	require.NoError(t, err)
	assert.Equal(t, 3, counts[models.ChunkProcessing])
	assert.Equal(t, 3, counts.Total())
}

func TestStore_StaleClaimLosesCompletion(t *testing.T) {
	ctx := context.Background()
	s := New()
	auditID := uuid.New()
	require.NoError(t, s.Enqueue(ctx, tasks(auditID, 1)))

	first, err := s.ClaimNext(ctx, auditID, t0)
	require.NoError(t, err)

	n, err := s.ResetStale(ctx, auditID, t0.Add(time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	second, err := s.ClaimNext(ctx, auditID, t0.Add(3*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, 2, second.Attempts)

	ok, err := s.Complete(ctx, first, models.ChunkResult{AnomaliesFound: 1}, t0.Add(4*time.Minute))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Complete(ctx, second, models.ChunkResult{AnomaliesFound: 2, Truncated: 5}, t0.Add(4*time.Minute))
	require.NoError(t, err)
	assert.True(t, ok)

	truncated, err := s.Truncated(ctx, auditID)
	require.NoError(t, err)
	assert.Equal(t, 5, truncated)
	stored := s.Tasks(auditID)
	require.Len(t, stored, 1)
	assert.Equal(t, models.ChunkCompleted, stored[0].Status)
	assert.Equal(t, 2, stored[0].AnomaliesFound)
}

func TestStore_ResetStaleKeepsFreshClaims(t *testing.T) {
	ctx := context.Background()
	s := New()
	auditID := uuid.New()
	require.NoError(t, s.Enqueue(ctx, tasks(auditID, 1)))
	_, err := s.ClaimNext(ctx, auditID, t0)
	require.NoError(t, err)

	n, err := s.ResetStale(ctx, auditID, t0.Add(-time.Second))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_AuditTransitions(t *testing.T) {
	ctx := context.Background()
	s := New()
	audit := &models.Audit{ID: uuid.New(), Status: models.AuditProcessing, CreatedAt: t0, UpdatedAt: t0}
	require.NoError(t, s.CreateAudit(ctx, audit))

	ok, err := s.Publish(ctx, audit.ID, t0)
	require.NoError(t, err)
	assert.False(t, ok, "processing audits cannot be published")

	result := models.AuditResult{TotalAnomalies: 2, AnnualRevenueAtRisk: decimal.NewFromInt(120), CompletedAt: t0}
	ok, err = s.Finalize(ctx, audit.ID, result)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Finalize(ctx, audit.ID, result)
	require.NoError(t, err)
	assert.False(t, ok, "finalize happens once")

	require.NoError(t, s.MarkError(ctx, audit.ID, "late failure", t0))
	got, err := s.GetAudit(ctx, audit.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AuditReview, got.Status)
	assert.Empty(t, got.ErrorMessage)

	ok, err = s.Publish(ctx, audit.ID, t0)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.GetAudit(ctx, uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func finding(auditID uuid.UUID, fp string, category models.Category, annual int64) models.Anomaly {
	return models.Anomaly{
		ID:           uuid.NewSHA1(auditID, []byte(fp)),
		AuditID:      auditID,
		Fingerprint:  fp,
		Category:     category,
		Status:       models.AnomalyDetected,
		AnnualImpact: decimal.NewFromInt(annual),
	}
}

func TestStore_InsertFindingsDeduplicates(t *testing.T) {
	ctx := context.Background()
	s := New()
	auditID := uuid.New()

	batch := []models.Anomaly{
		finding(auditID, "a", models.CategoryDuplicateCharge, 100),
		finding(auditID, "b", models.CategoryUnbilledUsage, 50),
	}
	n, err := s.InsertFindings(ctx, batch)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = s.InsertFindings(ctx, batch)
	require.NoError(t, err)
	assert.Zero(t, n)

	totals, err := s.Totals(ctx, auditID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, totals.Count)
	assert.Equal(t, "150", totals.AnnualAtRisk.String())
	assert.EqualValues(t, 1, totals.ByCategory[models.CategoryUnbilledUsage])
}

func TestStore_ListFindingsPaginates(t *testing.T) {
	ctx := context.Background()
	s := New()
	auditID := uuid.New()
	var batch []models.Anomaly
	for _, fp := range []string{"a", "b", "c", "d", "e"} {
		batch = append(batch, finding(auditID, fp, models.CategoryFailedPayment, 1))
	}
	batch = append(batch, finding(auditID, "f", models.CategoryOther, 1))
	_, err := s.InsertFindings(ctx, batch)
	require.NoError(t, err)

	filter := models.AnomalyFilter{Category: models.CategoryFailedPayment, Limit: 2}
	var seen []uuid.UUID
	for {
		items, next, more, err := s.ListFindings(ctx, auditID, filter)
		require.NoError(t, err)
		for _, it := range items {
			seen = append(seen, it.ID)
		}
		if !more {
			break
		}
		filter.Cursor = next
	}
	assert.Len(t, seen, 5)
}

func TestStore_UpdateFindingStatusLogsReview(t *testing.T) {
	ctx := context.Background()
	s := New()
	f := finding(uuid.New(), "a", models.CategoryOther, 1)
	_, err := s.InsertFindings(ctx, []models.Anomaly{f})
	require.NoError(t, err)

	updated, err := s.UpdateFindingStatus(ctx, f.ID, models.AnomalyResolved, "ops@example.com", "refunded", t0)
	require.NoError(t, err)
	assert.Equal(t, models.AnomalyResolved, updated.Status)

	logs := s.ReviewLogs(f.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, models.AnomalyDetected, logs[0].PreviousStatus)
	assert.Equal(t, models.AnomalyResolved, logs[0].NewStatus)

	_, err = s.UpdateFindingStatus(ctx, uuid.New(), models.AnomalyResolved, "", "", t0)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestStore_DeleteCascade(t *testing.T) {
	ctx := context.Background()
	s := New()
	auditID := uuid.New()
	require.NoError(t, s.Enqueue(ctx, tasks(auditID, 2)))
	_, err := s.InsertFindings(ctx, []models.Anomaly{finding(auditID, "a", models.CategoryOther, 1)})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTasks(ctx, auditID))
	require.NoError(t, s.DeleteFindings(ctx, auditID))

	counts, err := s.Counts(ctx, auditID)
	require.NoError(t, err)
	assert.Zero(t, counts.Total())
	totals, err := s.Totals(ctx, auditID)
	require.NoError(t, err)
	assert.Zero(t, totals.Count)

	task, err := s.ClaimNext(ctx, auditID, t0)
	require.NoError(t, err)
	assert.Nil(t, task)
}
