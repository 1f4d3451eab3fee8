package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appConfig "github.com/festy23/contribution_points/internal/config"
)

func TestNew(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("LOG_OUTPUT", "stderr")

	logger, err := New()
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.False(t, logger.Desugar().Core().Enabled(-1))
}

func TestNewWithConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  appConfig.LoggerConfig
	}{
		{name: "production json", cfg: appConfig.LoggerConfig{Level: "info", Format: "json", Output: "stdout"}},
		{name: "development console", cfg: appConfig.LoggerConfig{Level: "debug", Format: "console", Output: "stderr"}},
		{name: "unknown level defaults to info", cfg: appConfig.LoggerConfig{Level: "chatty", Format: "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewWithConfig(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, logger)
			logger.Infow("logger ready", "case", tt.name)
		})
	}

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "points.log")
		logger, err := NewWithConfig(appConfig.LoggerConfig{Level: "info", Format: "json", Output: path})
		require.NoError(t, err)

		logger.Infow("score given", "user_id", "u1", "points", 10)
		require.NoError(t, logger.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"user_id":"u1"`)
	})
}
