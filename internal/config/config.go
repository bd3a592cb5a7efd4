package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	API          APIConfig
	Session      SessionConfig
	Payroll      PayrollConfig
	Notification NotificationConfig
	CORS         CORSConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	LoginRateLimit string
}

// APIConfig points at the HRIS backend
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type PayrollConfig struct {
	MinYear int
	MaxYear int
}

type NotificationConfig struct {
	TTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Port:           v.GetInt("APP_PORT"),
			Env:            v.GetString("APP_ENV"),
			LogLevel:       v.GetString("LOG_LEVEL"),
			LoginRateLimit: v.GetString("LOGIN_RATE_LIMIT"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(v.GetString("HRIS_API_BASE_URL"), "/"),
			Timeout: v.GetDuration("HRIS_API_TIMEOUT"),
		},
		Session: SessionConfig{
			Secret: v.GetString("SESSION_SECRET"),
			TTL:    v.GetDuration("SESSION_TTL"),
		},
		Payroll: PayrollConfig{
			MinYear: v.GetInt("PAYROLL_MIN_YEAR"),
			MaxYear: v.GetInt("PAYROLL_MAX_YEAR"),
		},
		Notification: NotificationConfig{
			TTL: v.GetDuration("NOTIFICATION_TTL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", 8090)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	v.SetDefault("HRIS_API_BASE_URL", "http://localhost:8080/api/v1")
	v.SetDefault("HRIS_API_TIMEOUT", "10s")
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL", "8h")
	v.SetDefault("NOTIFICATION_TTL", "5s")
	v.SetDefault("PAYROLL_MIN_YEAR", 2000)
	v.SetDefault("PAYROLL_MAX_YEAR", 2100)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("HRIS_API_BASE_URL is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("HRIS_API_TIMEOUT must be positive")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Payroll.MinYear > c.Payroll.MaxYear {
		return fmt.Errorf("PAYROLL_MIN_YEAR (%d) must not exceed PAYROLL_MAX_YEAR (%d)", c.Payroll.MinYear, c.Payroll.MaxYear)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// LogLevel maps LOG_LEVEL onto slog; unknown values fall back to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func splitList(value string) []string {
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
