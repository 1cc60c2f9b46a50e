package infra

import (
	"fmt"

	"datecourse/internal/config"
	"datecourse/internal/models/db_models"
	"datecourse/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitPostgresql opens the pool, enables pgvector and migrates the schema.
func InitPostgresql(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	if cfg.PostgresURL == "" {
		return nil, fmt.Errorf("POSTGRES_URL is empty")
	}

	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("enable pgvector: %w", err)
	}

	if err := db.AutoMigrate(
		&db_models.Venue{},
		&db_models.UserPreference{},
		&db_models.Feedback{},
		&db_models.Itinerary{},
		&db_models.ItineraryStep{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("PostgreSQL connected and migrated")
	return db, nil
}

func ClosePostgresql(db *gorm.DB, log *logger.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("Error getting database instance", "error", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error("Error closing database connection", "error", err)
	} else {
		log.Info("PostgreSQL database connection closed successfully")
	}
}
