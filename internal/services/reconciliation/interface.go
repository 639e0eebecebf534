package reconciliation

//go:generate mockgen -destination=mocks/mock_interface.go -source=interface.go

import (
	"context"
	"time"

	"github.com/google/uuid"

	"revenue-reconciliation-backend/internal/models"
	"revenue-reconciliation-backend/internal/services/ingest"
)

// AuditStore persists audit run state.
type AuditStore interface {
	CreateAudit(ctx context.Context, audit *models.Audit) error
	GetAudit(ctx context.Context, id uuid.UUID) (*models.Audit, error)
	// UpdateProgress records the number of completed chunks.
	UpdateProgress(ctx context.Context, id uuid.UUID, completed int, at time.Time) error
	// MarkError moves a processing audit to error.
	MarkError(ctx context.Context, id uuid.UUID, message string, at time.Time) error
	// Finalize moves a processing audit to review. It reports false when the
	// audit was no longer processing.
	Finalize(ctx context.Context, id uuid.UUID, result models.AuditResult) (bool, error)
	// Publish moves a review audit to published. It reports false when the
	// audit was not in review.
	Publish(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	DeleteAudit(ctx context.Context, id uuid.UUID) error
}

// ChunkQueue is the persisted chunk work queue.
type ChunkQueue interface {
	Enqueue(ctx context.Context, tasks []models.ChunkTask) error
	// ResetStale returns tasks processing since before cutoff to pending.
	ResetStale(ctx context.Context, auditID uuid.UUID, cutoff time.Time) (int64, error)
	// ClaimNext moves the oldest pending task to processing under a fresh
	// claim token. It returns nil when nothing is pending.
	ClaimNext(ctx context.Context, auditID uuid.UUID, now time.Time) (*models.ChunkTask, error)
	// Complete finishes a task only if it still holds task.ClaimToken.
	Complete(ctx context.Context, task *models.ChunkTask, result models.ChunkResult, now time.Time) (bool, error)
	Fail(ctx context.Context, task *models.ChunkTask, message string, now time.Time) error
	Counts(ctx context.Context, auditID uuid.UUID) (models.ChunkCounts, error)
	// Truncated sums the findings dropped by emission caps across completed tasks.
	Truncated(ctx context.Context, auditID uuid.UUID) (int, error)
	// FirstFailure returns the failed task with the lowest chunk index, or nil.
	FirstFailure(ctx context.Context, auditID uuid.UUID) (*models.ChunkTask, error)
	DeleteTasks(ctx context.Context, auditID uuid.UUID) error
}

// FindingStore persists anomalies.
type FindingStore interface {
	// InsertFindings skips findings whose fingerprint already exists for the
	// audit and returns the number inserted.
	InsertFindings(ctx context.Context, findings []models.Anomaly) (int64, error)
	Totals(ctx context.Context, auditID uuid.UUID) (models.FindingTotals, error)
	ListFindings(ctx context.Context, auditID uuid.UUID, filter models.AnomalyFilter) ([]models.Anomaly, string, bool, error)
	GetFinding(ctx context.Context, id uuid.UUID) (*models.Anomaly, error)
	// UpdateFindingStatus changes the status and appends a review log entry.
	UpdateFindingStatus(ctx context.Context, id uuid.UUID, status models.AnomalyStatus, performedBy, reason string, at time.Time) (*models.Anomaly, error)
	DeleteFindings(ctx context.Context, auditID uuid.UUID) error
}

// SettingsStore persists organization reconciliation settings.
type SettingsStore interface {
	GetOrganizationSettings(ctx context.Context, orgID uuid.UUID) (*models.OrganizationSettings, error)
	SaveOrganizationSettings(ctx context.Context, s *models.OrganizationSettings) error
}

// DatasetSource loads a tabular input by path.
type DatasetSource interface {
	Load(ctx context.Context, path string) (*ingest.Dataset, error)
}

// Trigger schedules another ProcessNext step for an audit.
type Trigger interface {
	Enqueue(auditID uuid.UUID)
}
