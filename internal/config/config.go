// Package config holds the environment-driven application configuration.
package config

import "fmt"

// Config holds application configuration.
type Config struct {
	// Server holds HTTP server configuration.
	Server ServerConfig
	// Logger holds logger configuration.
	Logger LoggerConfig
	// GitHub holds configuration of the review comment source.
	GitHub GitHubConfig
	// GinMode is the Gin framework mode (debug, release, test).
	GinMode string
	// IdentityCacheSize is the number of resolved handles kept in memory.
	IdentityCacheSize int
}

var validGinModes = map[string]bool{
	"debug":   true,
	"release": true,
	"test":    true,
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() Config {
	return Config{
		Server:            LoadServerConfigFromEnv(),
		Logger:            LoadLoggerConfigFromEnv(),
		GitHub:            LoadGitHubConfigFromEnv(),
		GinMode:           GetEnv("GIN_MODE", "release"),
		IdentityCacheSize: GetEnvInt("IDENTITY_CACHE_SIZE", 1024),
	}
}

// Validate validates all configuration.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger config validation failed: %w", err)
	}
	if err := c.GitHub.Validate(); err != nil {
		return fmt.Errorf("github config validation failed: %w", err)
	}
	if !validGinModes[c.GinMode] {
		return fmt.Errorf("invalid GIN_MODE: %s (must be: debug, release, test)", c.GinMode)
	}
	if c.IdentityCacheSize <= 0 {
		return fmt.Errorf("IDENTITY_CACHE_SIZE must be greater than 0")
	}
	return nil
}
