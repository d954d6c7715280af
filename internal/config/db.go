package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryDB selects an in-process SQLite database.
const MemoryDB = ":memory:"

// InitDB opens the configured store. The handle is meant to be opened once
// at startup and closed at shutdown.
func InitDB(cfg DatabaseConfig) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.LogMode {
		gormLogger = logger.Default.LogMode(logger.Info)
	}
	gormCfg := &gorm.Config{Logger: gormLogger}

	var (
		dialector gorm.Dialector
		inMemory  bool
	)
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.PostgresURL)
	case DriverSQLite:
		if cfg.SQLitePath == MemoryDB {
			inMemory = true
			dialector = sqlite.Open("file::memory:?_foreign_keys=on")
			break
		}
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		dialector = sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on&_journal_mode=WAL")
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// every connection to :memory: is a separate database
	if inMemory {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		return db, nil
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// CloseDB releases the underlying connection pool.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
