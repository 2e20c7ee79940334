package config

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bingolive/backend/models"
	"github.com/bingolive/backend/utils/logger"
)

// SetupDatabase connects to Postgres and migrates the round history schema.
// Returns nil when no DATABASE_URL is configured; the server then runs with
// history disabled.
func SetupDatabase(cfg *Config) *gorm.DB {
	if cfg.DatabaseURL == "" {
		logger.Infof("DATABASE_URL not set, round history disabled")
		return nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.Errorf("failed to connect to DB: %v", err)
		return nil
	}

	if err := db.AutoMigrate(&models.Round{}); err != nil {
		logger.Errorf("migration failed: %v", err)
		return nil
	}

	logger.Infof("database migration completed")
	return db
}
