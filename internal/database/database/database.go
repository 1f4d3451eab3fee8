// Package database opens and manages the gorm connection.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/festy23/contribution_points/internal/database/config"
	"github.com/festy23/contribution_points/internal/database/pool"
	"github.com/festy23/contribution_points/pkg/retry"
)

const connectTimeout = 2 * time.Minute

// New creates a new database connection using environment variables.
func New() (*gorm.DB, error) {
	return NewWithConfig(config.LoadConfigFromEnv(), pool.LoadConfigFromEnv())
}

// NewWithConfig opens a connection for the configured driver, retrying transient
// failures, and applies the pool settings.
func NewWithConfig(cfg config.Config, poolCfg pool.Config) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("database config validation failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := retry.DoWithResult(ctx, config.LoadRetryConfigFromEnv(), func() (*gorm.DB, error) {
		db, err := gorm.Open(config.Dialector(cfg), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, err
		}
		if err := HealthCheck(ctx, db); err != nil {
			_ = Close(db)
			return nil, err
		}
		return db, nil
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if cfg.Driver == config.DriverSQLite {
		// sqlite serialises writers; a single connection avoids SQLITE_BUSY.
		poolCfg.MaxOpenConns = 1
		poolCfg.MaxIdleConns = 1
	}
	if err := pool.SetupConnectionPool(db, poolCfg); err != nil {
		_ = Close(db)
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	return db, nil
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the underlying sql.DB. A nil db is a no-op.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns database connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
