package database

import (
	"fmt"

	"binance-order-ledger/internal/config"
	"binance-order-ledger/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDatabase opens the configured database and migrates the ledger schema.
// Unlike a scratch trading database, existing rows are kept: reports are never deleted.
func NewDatabase(cfg *config.Database) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == "" || cfg.Driver == "sqlite" {
		// SQLite allows a single writer; a shared connection avoids "database is locked".
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func dialectorFor(cfg *config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return sqlite.Open(cfg.DSN), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// AutoMigrate creates or updates the tables backing users and their reports.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.OrderReport{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}
