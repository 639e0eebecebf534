package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type AuditStatus string

const (
	AuditProcessing AuditStatus = "processing"
	AuditReview     AuditStatus = "review"
	AuditPublished  AuditStatus = "published"
	AuditError      AuditStatus = "error"
)

// Audit is the run state of one reconciliation between a ledger and a
// processor export.
type Audit struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID      uuid.UUID       `gorm:"type:uuid;index" json:"organization_id"`
	LedgerPath          string          `json:"ledger_path"`
	ProcessorPath       string          `json:"processor_path"`
	Status              AuditStatus     `gorm:"size:16;index" json:"status"`
	ChunksCompleted     int             `json:"chunks_completed"`
	ChunksTotal         int             `json:"chunks_total"`
	TotalAnomalies      int64           `json:"total_anomalies"`
	FindingsTruncated   int             `json:"findings_truncated"`
	AnnualRevenueAtRisk decimal.Decimal `gorm:"type:numeric(16,2)" json:"annual_revenue_at_risk"`
	Summary             string          `json:"summary"`
	ErrorMessage        string          `json:"error_message"`
	Config              datatypes.JSON  `json:"config"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	CompletedAt         *time.Time      `json:"completed_at"`
	PublishedAt         *time.Time      `json:"published_at"`
}

// Progress returns completion as a percentage in [0, 100].
func (a *Audit) Progress() float64 {
	if a.ChunksTotal == 0 {
		if a.Status == AuditReview || a.Status == AuditPublished {
			return 100
		}
		return 0
	}
	return float64(a.ChunksCompleted) / float64(a.ChunksTotal) * 100
}

// AuditResult is what finalization writes onto an audit.
type AuditResult struct {
	TotalAnomalies      int64
	AnnualRevenueAtRisk decimal.Decimal
	FindingsTruncated   int
	Summary             string
	CompletedAt         time.Time
}
