package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.App.Port)
	assert.Equal(t, "http://localhost:8080/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 8*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 5*time.Second, cfg.Notification.TTL)
	assert.Equal(t, 2000, cfg.Payroll.MinYear)
	assert.Equal(t, 2100, cfg.Payroll.MaxYear)
	assert.Equal(t, "10-M", cfg.App.LoginRateLimit)
	assert.Len(t, cfg.CORS.AllowedOrigins, 2)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("HRIS_API_BASE_URL", "https://hris.example.com/api/v1/")
	t.Setenv("HRIS_API_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://hris.example.com/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	_, err := Load()
	assert.ErrorContains(t, err, "SESSION_SECRET")
}

func TestValidate_RejectsInvertedYears(t *testing.T) {
	cfg := &Config{
		API:     APIConfig{BaseURL: "http://x", Timeout: time.Second},
		Session: SessionConfig{Secret: "s", TTL: time.Hour},
		Payroll: PayrollConfig{MinYear: 2050, MaxYear: 2020},
	}
	assert.ErrorContains(t, cfg.Validate(), "PAYROLL_MIN_YEAR")
}
