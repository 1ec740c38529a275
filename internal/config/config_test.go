package config

import (
	"os"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/mentorconnect_test")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	for _, key := range []string{"PORT", "ENV", "EMAIL_WORKERS", "SMTP_PORT", "SMTP_FROM", "FRONTEND_URL"} {
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.EmailWorkers != 3 {
		t.Errorf("EmailWorkers = %d, want 3", cfg.EmailWorkers)
	}
	if cfg.SMTPPort != "587" {
		t.Errorf("SMTPPort = %q, want 587", cfg.SMTPPort)
	}
	if cfg.SMTPFrom != "noreply@mentorconnect.app" {
		t.Errorf("SMTPFrom = %q, want noreply@mentorconnect.app", cfg.SMTPFrom)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("EMAIL_WORKERS", "8")
	t.Setenv("FRONTEND_URL", "https://app.mentorconnect.example")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.EmailWorkers != 8 {
		t.Errorf("EmailWorkers = %d, want 8", cfg.EmailWorkers)
	}
	if cfg.FrontendURL != "https://app.mentorconnect.example" {
		t.Errorf("FrontendURL = %q, want override", cfg.FrontendURL)
	}
}

func TestLoadBadWorkerCountFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMAIL_WORKERS", "lots")

	cfg := Load()

	if cfg.EmailWorkers != 3 {
		t.Errorf("EmailWorkers = %d, want default 3 for a non-numeric value", cfg.EmailWorkers)
	}
}

func TestLoadPanicsWithoutJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv("JWT_SECRET")

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected Load to panic when JWT_SECRET is missing")
		}
	}()

	Load()
}
