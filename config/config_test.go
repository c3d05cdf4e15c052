package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitConfig(t *testing.T) {
	require.NoError(t, os.Setenv("SERVER_PORT", "3001"))
	require.NoError(t, os.Setenv("LOG_LEVEL", "debug"))
	require.NoError(t, os.Setenv("ENVIRONMENT", "staging"))
	defer func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("ENVIRONMENT")
	}()

	cfg, err := InitConfig()
	require.NoError(t, err)
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "staging", cfg.Environment)
}

func TestInitConfig_Defaults(t *testing.T) {
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("ENVIRONMENT")
	os.Unsetenv("K_SERVICE")

	cfg, err := InitConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "resaletracker", cfg.ServiceName)
}

func TestInitLogLevel_Invalid(t *testing.T) {
	require.NoError(t, os.Setenv("LOG_LEVEL", "loud"))
	defer os.Unsetenv("LOG_LEVEL")

	assert.Equal(t, zapcore.InfoLevel, initLogLevel())
}
