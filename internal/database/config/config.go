// Package config provides database configuration management.
package config

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appConfig "github.com/festy23/contribution_points/internal/config"
	"github.com/festy23/contribution_points/pkg/retry"
)

const (
	// DriverPostgres is the production driver.
	DriverPostgres = "postgres"
	// DriverSQLite is meant for local runs; the schema is created with AutoMigrate.
	DriverSQLite = "sqlite"
)

// Config holds database connection configuration.
type Config struct {
	Driver   string
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
	TimeZone string
	// Path is the sqlite database file, used only by DriverSQLite.
	Path string
}

// GetEnv reads an environment variable with a default fallback.
func GetEnv(key, defaultValue string) string {
	return appConfig.GetEnv(key, defaultValue)
}

// LoadConfigFromEnv loads database configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		Driver:   GetEnv("DB_DRIVER", DriverPostgres),
		Host:     GetEnv("DB_HOST", "localhost"),
		User:     GetEnv("DB_USER", "postgres"),
		Password: GetEnv("DB_PASSWORD", "postgres"),
		DBName:   GetEnv("DB_NAME", "contribution_points"),
		Port:     GetEnv("DB_PORT", "5432"),
		SSLMode:  GetEnv("DB_SSLMODE", "disable"),
		TimeZone: GetEnv("DB_TIMEZONE", "UTC"),
		Path:     GetEnv("DB_PATH", "contribution_points.db"),
	}
}

// Validate checks the driver and the fields it needs.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.Host == "" || c.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for the %s driver", c.Driver)
		}
	case DriverSQLite:
		if c.Path == "" {
			return fmt.Errorf("DB_PATH is required for the %s driver", c.Driver)
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER: %s (must be: postgres, sqlite)", c.Driver)
	}
	return nil
}

// BuildDSN constructs PostgreSQL DSN string from configuration.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)
}

// Dialector returns the gorm dialector for the configured driver.
func Dialector(cfg Config) gorm.Dialector {
	if cfg.Driver == DriverSQLite {
		// Foreign keys are off by default in sqlite; cascades rely on them.
		return sqlite.Open(cfg.Path + "?_foreign_keys=on")
	}
	return postgres.Open(BuildDSN(cfg))
}

// SanitizeError removes the password and full DSN from connection errors.
func SanitizeError(err error, cfg Config) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if cfg.Password != "" {
		msg = strings.ReplaceAll(msg, BuildDSN(cfg), BuildDSN(withMaskedPassword(cfg)))
		msg = strings.ReplaceAll(msg, cfg.Password, "***")
	}
	return fmt.Errorf("failed to connect to database: %s", msg)
}

func withMaskedPassword(cfg Config) Config {
	cfg.Password = "***"
	return cfg
}

// LoadRetryConfigFromEnv loads connection retry configuration from environment variables.
func LoadRetryConfigFromEnv() retry.Config {
	cfg := retry.PostgresConfig()
	cfg.MaxAttempts = appConfig.GetEnvInt("DB_RETRY_MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.InitialDelay = appConfig.GetEnvDuration("DB_RETRY_INITIAL_DELAY", cfg.InitialDelay)
	cfg.MaxDelay = appConfig.GetEnvDuration("DB_RETRY_MAX_DELAY", cfg.MaxDelay)
	return cfg
}
