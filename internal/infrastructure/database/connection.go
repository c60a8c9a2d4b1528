// Package database opens the catalog database and keeps its schema current.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrescamacho/starroute-go/internal/adapters/persistence"
	"github.com/andrescamacho/starroute-go/internal/infrastructure/config"
)

// NewConnection opens the catalog database described by cfg without
// touching its schema
func NewConnection(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Type {
	case config.DatabasePostgres:
		dialector = postgres.Open(cfg.DSN())
	case config.DatabaseSQLite:
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s catalog database: %w", cfg.Type, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying db: %w", err)
	}
	if cfg.Type == config.DatabaseSQLite {
		// A second connection to :memory: would see an empty database, and
		// file databases allow one writer anyway
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Pool.MaxOpen)
		sqlDB.SetMaxIdleConns(cfg.Pool.MaxIdle)
		sqlDB.SetConnMaxLifetime(cfg.Pool.MaxLifetime)
	}

	return db, nil
}

// Open connects to the catalog database and migrates its tables
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := NewConnection(cfg)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		_ = Close(db)
		return nil, fmt.Errorf("failed to migrate catalog tables: %w", err)
	}
	return db, nil
}

// OpenMemory returns a migrated, empty in-memory SQLite catalog
func OpenMemory() (*gorm.DB, error) {
	return Open(&config.DatabaseConfig{Type: config.DatabaseSQLite, Path: ":memory:"})
}

// AutoMigrate creates or updates the bodies and distances tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&persistence.BodyModel{},
		&persistence.DistanceModel{},
	)
}

// Close releases the connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
