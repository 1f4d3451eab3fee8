package config

import (
	"errors"
	"net"
	"strings"
	"time"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	// Host is the bind host; empty means all interfaces.
	Host string
	// Port is the bind port, with or without a leading colon.
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LoadServerConfigFromEnv loads server configuration from environment variables.
func LoadServerConfigFromEnv() ServerConfig {
	return ServerConfig{
		Host:            GetEnv("SERVER_HOST", ""),
		Port:            GetEnv("SERVER_PORT", ":8080"),
		ReadTimeout:     GetEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    GetEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:     GetEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout: GetEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

// GetAddress returns the listen address for http.Server.
func (c ServerConfig) GetAddress() string {
	if c.Host == "" {
		if strings.HasPrefix(c.Port, ":") {
			return c.Port
		}
		return ":" + c.Port
	}
	return net.JoinHostPort(c.Host, strings.TrimPrefix(c.Port, ":"))
}

// Validate validates server configuration.
func (c ServerConfig) Validate() error {
	switch {
	case c.ReadTimeout <= 0:
		return errors.New("ReadTimeout must be greater than 0")
	case c.WriteTimeout <= 0:
		return errors.New("WriteTimeout must be greater than 0")
	case c.IdleTimeout <= 0:
		return errors.New("IdleTimeout must be greater than 0")
	case c.ShutdownTimeout <= 0:
		return errors.New("ShutdownTimeout must be greater than 0")
	}
	return nil
}
