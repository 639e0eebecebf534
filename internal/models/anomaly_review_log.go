package models

import (
	"time"

	"github.com/google/uuid"
)

// AnomalyReviewLog records a reviewer's status change on an anomaly.
type AnomalyReviewLog struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	AnomalyID      uuid.UUID     `gorm:"type:uuid;index" json:"anomaly_id"`
	PreviousStatus AnomalyStatus `json:"previous_status"`
	NewStatus      AnomalyStatus `json:"new_status"`
	PerformedBy    string        `json:"performed_by"`
	Reason         string        `json:"reason"`
	CreatedAt      time.Time     `json:"created_at"`
}
