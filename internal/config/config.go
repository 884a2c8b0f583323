package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap/zapcore"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the process-level configuration for long-running commands.
// Per-database settings live in the app_config table instead.
type Config struct {
	Environment    string
	IsProduction   bool
	DBPath         string
	HTTPAddr       string
	LogLevel       string
	DoctorSchedule string
}

// Load reads .env from the working directory when present and then the
// environment. Variables already set in the environment win over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Environment:    strings.ToLower(getEnv("A3_ENV", EnvDevelopment)),
		DBPath:         getEnv("A3_DB_PATH", ""),
		HTTPAddr:       getEnv("A3_HTTP_ADDR", ":8080"),
		LogLevel:       strings.ToLower(getEnv("A3_LOG_LEVEL", "info")),
		DoctorSchedule: lookupEnv("A3_DOCTOR_SCHEDULE", "0 3 * * *"),
	}
	cfg.IsProduction = cfg.Environment == EnvProduction

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		return fmt.Errorf("A3_ENV must be %s or %s, got %q", EnvDevelopment, EnvProduction, c.Environment)
	}
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("A3_HTTP_ADDR must not be empty")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("A3_LOG_LEVEL: %w", err)
	}
	if c.DoctorSchedule != "" {
		if _, err := cron.ParseStandard(c.DoctorSchedule); err != nil {
			return fmt.Errorf("A3_DOCTOR_SCHEDULE: %w", err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// lookupEnv distinguishes an explicitly empty value, which disables the
// feature, from an unset one.
func lookupEnv(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return strings.TrimSpace(value)
}
