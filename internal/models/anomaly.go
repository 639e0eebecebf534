package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Category string

const (
	CategoryMissingInProcessor Category = "missing_in_processor"
	CategoryMissingInLedger    Category = "missing_in_ledger"
	CategoryAmountMismatch     Category = "amount_mismatch"
	CategoryDuplicateCharge    Category = "duplicate_charge"
	CategoryZombieSubscription Category = "zombie_subscription"
	CategoryUnbilledUsage      Category = "unbilled_usage"
	CategoryPricingMismatch    Category = "pricing_mismatch"
	CategoryFailedPayment      Category = "failed_payment"
	CategoryDisputedCharge     Category = "disputed_charge"
	CategoryFeeDiscrepancy     Category = "fee_discrepancy"
	CategoryOther              Category = "other"
)

// Categories lists the closed category set in reporting order.
var Categories = []Category{
	CategoryMissingInProcessor,
	CategoryMissingInLedger,
	CategoryAmountMismatch,
	CategoryDuplicateCharge,
	CategoryZombieSubscription,
	CategoryUnbilledUsage,
	CategoryPricingMismatch,
	CategoryFailedPayment,
	CategoryDisputedCharge,
	CategoryFeeDiscrepancy,
	CategoryOther,
}

// Recurring reports whether the category describes a periodic revenue pattern
// whose impact is annualized.
func (c Category) Recurring() bool {
	switch c {
	case CategoryZombieSubscription, CategoryUnbilledUsage, CategoryPricingMismatch:
		return true
	}
	return false
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Rank returns an integer rank for comparison (low=1, high=3).
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceLow:
		return 1
	case ConfidenceMedium:
		return 2
	case ConfidenceHigh:
		return 3
	}
	return 0
}

type AnomalyStatus string

const (
	AnomalyOpen      AnomalyStatus = "open"
	AnomalyDetected  AnomalyStatus = "detected"
	AnomalyResolved  AnomalyStatus = "resolved"
	AnomalyDismissed AnomalyStatus = "dismissed"
)

// Valid reports whether s is a known anomaly status.
func (s AnomalyStatus) Valid() bool {
	switch s {
	case AnomalyOpen, AnomalyDetected, AnomalyResolved, AnomalyDismissed:
		return true
	}
	return false
}

// Anomaly is one finding produced by the engine. Everything except Status is
// fixed at creation.
type Anomaly struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	AuditID        uuid.UUID         `gorm:"type:uuid;uniqueIndex:idx_anomaly_fingerprint,priority:1;index" json:"audit_id"`
	Fingerprint    string            `gorm:"size:64;uniqueIndex:idx_anomaly_fingerprint,priority:2" json:"-"`
	ChunkIndex     int               `json:"chunk_index"`
	Category       Category          `gorm:"size:32;index" json:"category"`
	CustomerID     *string           `gorm:"index" json:"customer_id"`
	Status         AnomalyStatus     `gorm:"size:16;index" json:"status"`
	Confidence     Confidence        `gorm:"size:8" json:"confidence"`
	MonthlyImpact  decimal.Decimal   `gorm:"type:numeric(16,2)" json:"monthly_impact"`
	AnnualImpact   decimal.Decimal   `gorm:"type:numeric(16,2)" json:"annual_impact"`
	Description    string            `json:"description"`
	RootCause      string            `json:"root_cause"`
	Recommendation string            `json:"recommendation"`
	Metadata       datatypes.JSONMap `json:"metadata"`
	DetectedAt     time.Time         `json:"detected_at"`
}

// AnomalyFilter narrows a cursor-paginated anomaly listing.
type AnomalyFilter struct {
	Category Category
	Status   AnomalyStatus
	Cursor   string
	Limit    int
}

// FindingTotals aggregates the findings of one audit.
type FindingTotals struct {
	Count        int64
	AnnualAtRisk decimal.Decimal
	ByCategory   map[Category]int64
}
