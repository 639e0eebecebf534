package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"revenue-reconciliation-backend/internal/config"
	"revenue-reconciliation-backend/internal/models"
)

// openTestDB connects to TEST_DATABASE_URL; the tests skip without it.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := config.InitDB(&config.Settings{DatabaseURL: dsn})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func TestRepositories_ChunkLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	audits := NewAuditRepository(db)
	chunks := NewChunkTaskRepository(db)
	anomalies := NewAnomalyRepository(db)

	audit := &models.Audit{ID: uuid.New(), Status: models.AuditProcessing, ChunksTotal: 2, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, audits.CreateAudit(ctx, audit))
	t.Cleanup(func() {
		_ = anomalies.DeleteFindings(ctx, audit.ID)
		_ = chunks.DeleteTasks(ctx, audit.ID)
		_ = audits.DeleteAudit(ctx, audit.ID)
	})

	tasks := []models.ChunkTask{
		{ID: uuid.New(), AuditID: audit.ID, ChunkIndex: 0, TotalChunks: 2, Status: models.ChunkPending, CreatedAt: now},
		{ID: uuid.New(), AuditID: audit.ID, ChunkIndex: 1, TotalChunks: 2, Status: models.ChunkPending, CreatedAt: now.Add(time.Millisecond)},
	}
	require.NoError(t, chunks.Enqueue(ctx, tasks))

	first, err := chunks.ClaimNext(ctx, audit.ID, now)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 0, first.ChunkIndex)

	reset, err := chunks.ResetStale(ctx, audit.ID, now.Add(time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 1, reset)

	again, err := chunks.ClaimNext(ctx, audit.ID, now.Add(3*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, 0, again.ChunkIndex)

	ok, err := chunks.Complete(ctx, first, models.ChunkResult{}, now)
	require.NoError(t, err)
	assert.False(t, ok, "stale claim token must not complete")

	ok, err = chunks.Complete(ctx, again, models.ChunkResult{AnomaliesFound: 1}, now)
	require.NoError(t, err)
	assert.True(t, ok)

	finding := models.Anomaly{
		ID:           uuid.New(),
		AuditID:      audit.ID,
		Fingerprint:  "fp-1",
		Category:     models.CategoryDuplicateCharge,
		Status:       models.AnomalyDetected,
		AnnualImpact: decimal.RequireFromString("299.00"),
		DetectedAt:   now,
	}
	n, err := anomalies.InsertFindings(ctx, []models.Anomaly{finding})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	finding.ID = uuid.New()
	n, err = anomalies.InsertFindings(ctx, []models.Anomaly{finding})
	require.NoError(t, err)
	assert.Zero(t, n, "fingerprint conflict is ignored")

	counts, err := chunks.Counts(ctx, audit.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[models.ChunkCompleted])
	assert.Equal(t, 1, counts[models.ChunkPending])

	totals, err := anomalies.Totals(ctx, audit.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, totals.Count)
	assert.Equal(t, "299.00", totals.AnnualAtRisk.StringFixed(2))

	ok, err = audits.Finalize(ctx, audit.ID, models.AuditResult{TotalAnomalies: 1, CompletedAt: now})
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = audits.Finalize(ctx, audit.ID, models.AuditResult{TotalAnomalies: 1, CompletedAt: now})
	require.NoError(t, err)
	assert.False(t, ok)
}
