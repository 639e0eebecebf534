package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrganizationSettings stores an organization's preset choice and its
// reconciliation overrides.
type OrganizationSettings struct {
	OrganizationID uuid.UUID         `gorm:"type:uuid;primaryKey" json:"organization_id"`
	Preset         string            `json:"preset"`
	Overrides      datatypes.JSONMap `json:"overrides"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
