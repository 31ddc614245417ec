package database

import (
	"fmt"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/config"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: gormLogger(cfg.LogSQL),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("connected to PostgreSQL")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for the quote store tables
func AutoMigrate(db *gorm.DB, log zerolog.Logger) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		&entity.Agency{},
		&entity.Quote{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}

func gormLogger(logSQL bool) logger.Interface {
	if logSQL {
		return logger.Default.LogMode(logger.Info)
	}
	return logger.Default.LogMode(logger.Warn)
}
