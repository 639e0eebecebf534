package config

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"revenue-reconciliation-backend/internal/models"
)

// InitDB opens the postgres connection used by the repositories.
func InitDB(s *Settings) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(s.DatabaseURL), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the tables owned by the engine.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Audit{},
		&models.ChunkTask{},
		&models.Anomaly{},
		&models.AnomalyReviewLog{},
		&models.OrganizationSettings{},
	)
}
