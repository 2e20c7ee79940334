package main

import (
	"github.com/bingolive/backend/config"
	"github.com/bingolive/backend/utils/logger"
)

// Standalone migration runner for deployments that migrate before rollout.
func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		logger.Log.Fatalf("DATABASE_URL is required to migrate")
	}
	if config.SetupDatabase(cfg) == nil {
		logger.Log.Fatalf("migration failed")
	}
	logger.Infof("database migration completed successfully")
}
