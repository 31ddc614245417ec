package database

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB opens a single-file database, used for local runs without PostgreSQL
func NewSQLiteDB(path string, logSQL bool, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger(logSQL),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// sqlite serializes writers; one connection avoids SQLITE_BUSY
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	log.Info().Str("path", path).Msg("opened SQLite database")
	return db, nil
}
