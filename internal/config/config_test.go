package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"A3_ENV", "A3_DB_PATH", "A3_HTTP_ADDR", "A3_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	unsetForTest(t, "A3_DOCTOR_SCHEDULE")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.Environment != EnvDevelopment || cfg.IsProduction {
		t.Fatalf("expected development, got %+v", cfg)
	}
	if cfg.HTTPAddr != ":8080" || cfg.LogLevel != "info" || cfg.DoctorSchedule != "0 3 * * *" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestFromEnvOverridesAndDisable(t *testing.T) {
	t.Setenv("A3_ENV", "Production")
	t.Setenv("A3_DB_PATH", "/var/lib/a3diet.db")
	t.Setenv("A3_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("A3_LOG_LEVEL", "DEBUG")
	t.Setenv("A3_DOCTOR_SCHEDULE", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if !cfg.IsProduction || cfg.DBPath != "/var/lib/a3diet.db" || cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected lowercased level, got %s", cfg.LogLevel)
	}
	if cfg.DoctorSchedule != "" {
		t.Fatalf("expected empty schedule to disable doctor job, got %q", cfg.DoctorSchedule)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()
	base := Config{Environment: EnvDevelopment, HTTPAddr: ":8080", LogLevel: "info"}

	cases := map[string]func(c *Config){
		"environment": func(c *Config) { c.Environment = "staging" },
		"address":     func(c *Config) { c.HTTPAddr = " " },
		"level":       func(c *Config) { c.LogLevel = "verbose" },
		"schedule":    func(c *Config) { c.DoctorSchedule = "every night" },
	}
	for name, mutate := range cases {
		c := base
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected base config to be valid: %v", err)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("A3_HTTP_ADDR=:7070\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	unsetForTest(t, "A3_HTTP_ADDR")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Fatalf("expected address from .env, got %s", cfg.HTTPAddr)
	}
	_ = os.Unsetenv("A3_HTTP_ADDR")
}

func unsetForTest(t *testing.T, key string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}
