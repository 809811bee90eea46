package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/zgs/booking-client/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := config.NewConfig()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.Backend.BaseURL)
	require.Equal(t, 10, cfg.PageSize)
	require.Zero(t, cfg.Backend.Timeout)
	require.True(t, cfg.Breaker.Enabled)
}

func TestNewConfig_EnvOverridesOptions(t *testing.T) {
	t.Setenv("BOOKING_BASE_URL", "http://backend:9000")
	t.Setenv("BOOKING_CB_WINDOW", "20")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := config.NewConfig(
		config.WithBaseURL("http://ignored:1"),
		config.WithPageSize(25),
		config.WithTimeout(time.Second),
		config.WithLogLevel(zapcore.DebugLevel),
	)
	require.NoError(t, err)
	require.Equal(t, "http://backend:9000", cfg.Backend.BaseURL)
	require.Equal(t, 25, cfg.PageSize)
	require.Equal(t, time.Second, cfg.Backend.Timeout)
	require.Equal(t, 20, cfg.Breaker.Window)
	require.Equal(t, zapcore.WarnLevel, cfg.Log.LogLevel)
}

func TestNewConfig_InvalidPageSize(t *testing.T) {
	t.Setenv("BOOKING_PAGE_SIZE", "0")
	_, err := config.NewConfig()
	require.Error(t, err)
}
