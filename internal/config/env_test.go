package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Run("value set", func(t *testing.T) {
		t.Setenv("POINTS_TEST_KEY", "value")
		assert.Equal(t, "value", GetEnv("POINTS_TEST_KEY", "default"))
	})

	t.Run("empty value falls back", func(t *testing.T) {
		t.Setenv("POINTS_TEST_KEY", "")
		assert.Equal(t, "default", GetEnv("POINTS_TEST_KEY", "default"))
	})
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback int
		expected int
	}{
		{name: "valid", value: "42", fallback: 0, expected: 42},
		{name: "negative", value: "-3", fallback: 0, expected: -3},
		{name: "not a number", value: "forty", fallback: 7, expected: 7},
		{name: "unset", value: "", fallback: 5, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("POINTS_TEST_INT", tt.value)
			assert.Equal(t, tt.expected, GetEnvInt("POINTS_TEST_INT", tt.fallback))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback time.Duration
		expected time.Duration
	}{
		{name: "seconds", value: "30s", fallback: time.Second, expected: 30 * time.Second},
		{name: "compound", value: "1h30m", fallback: time.Second, expected: 90 * time.Minute},
		{name: "invalid", value: "soon", fallback: 5 * time.Second, expected: 5 * time.Second},
		{name: "unset", value: "", fallback: time.Minute, expected: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("POINTS_TEST_DURATION", tt.value)
			assert.Equal(t, tt.expected, GetEnvDuration("POINTS_TEST_DURATION", tt.fallback))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback bool
		expected bool
	}{
		{name: "true", value: "true", fallback: false, expected: true},
		{name: "false", value: "false", fallback: true, expected: false},
		{name: "1", value: "1", fallback: false, expected: true},
		{name: "0", value: "0", fallback: true, expected: false},
		{name: "invalid", value: "yes please", fallback: true, expected: true},
		{name: "unset", value: "", fallback: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("POINTS_TEST_BOOL", tt.value)
			assert.Equal(t, tt.expected, GetEnvBool("POINTS_TEST_BOOL", tt.fallback))
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		err := LoadDotEnv(filepath.Join(t.TempDir(), ".env"))
		assert.NoError(t, err)
	})

	t.Run("loads variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("POINTS_DOTENV_KEY=from-file\n"), 0o600))
		t.Setenv("POINTS_DOTENV_KEY", "")
		require.NoError(t, os.Unsetenv("POINTS_DOTENV_KEY"))

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "from-file", os.Getenv("POINTS_DOTENV_KEY"))
	})

	t.Run("does not override existing variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("POINTS_DOTENV_SET=from-file\n"), 0o600))
		t.Setenv("POINTS_DOTENV_SET", "from-env")

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "from-env", os.Getenv("POINTS_DOTENV_SET"))
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("'unterminated\n"), 0o600))

		err := LoadDotEnv(path)
		assert.Error(t, err)
	})
}
