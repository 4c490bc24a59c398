package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	isSQLite := strings.HasPrefix(databaseURL, "sqlite://")
	if isSQLite {
		// SQLite for development
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		})
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create tables manually with raw SQL
	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS bulk_jobs (
		id UUID PRIMARY KEY,
		status TEXT NOT NULL DEFAULT 'pending',
		requested_by TEXT,
		payload TEXT,
		format TEXT,
		unit_count INTEGER DEFAULT 0,
		row_count INTEGER DEFAULT 0,
		output_path TEXT,
		error TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW(),
		completed_at TIMESTAMPTZ
	);

	CREATE TABLE IF NOT EXISTS bid_override_sets (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		created_by TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS bid_overrides (
		id UUID PRIMARY KEY,
		set_id UUID NOT NULL,
		keyword TEXT NOT NULL,
		bid DECIMAL(10,2) NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_bulk_jobs_status ON bulk_jobs(status);
	CREATE INDEX IF NOT EXISTS idx_bid_overrides_set_id ON bid_overrides(set_id);
	`

	if isSQLite {
		// sqlite has no UUID type, TIMESTAMPTZ or NOW()
		createTablesSQL = `
	CREATE TABLE IF NOT EXISTS bulk_jobs (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL DEFAULT 'pending',
		requested_by TEXT,
		payload TEXT,
		format TEXT,
		unit_count INTEGER DEFAULT 0,
		row_count INTEGER DEFAULT 0,
		output_path TEXT,
		error TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		completed_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS bid_override_sets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_by TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS bid_overrides (
		id TEXT PRIMARY KEY,
		set_id TEXT NOT NULL,
		keyword TEXT NOT NULL,
		bid DECIMAL(10,2) NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_bulk_jobs_status ON bulk_jobs(status);
	CREATE INDEX IF NOT EXISTS idx_bid_overrides_set_id ON bid_overrides(set_id);
	`
	}

	err = db.Exec(createTablesSQL).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
