package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/movies?sslmode=disable")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.SessionDuration != 168*time.Hour {
		t.Errorf("session duration = %v, want 168h", cfg.Auth.SessionDuration)
	}
	if cfg.SMTP.Port != 465 {
		t.Errorf("smtp port = %d, want 465", cfg.SMTP.Port)
	}
	if cfg.Upload.Dir != "uploads" {
		t.Errorf("upload dir = %q, want uploads", cfg.Upload.Dir)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SESSION_DURATION", "24h")
	t.Setenv("SMTP_USER", "mailer@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Auth.SessionDuration != 24*time.Hour {
		t.Errorf("session duration = %v, want 24h", cfg.Auth.SessionDuration)
	}
	// From falls back to the SMTP user when unset.
	if cfg.SMTP.From != "mailer@example.com" {
		t.Errorf("smtp from = %q, want mailer@example.com", cfg.SMTP.From)
	}
}

func TestLoadCollectsAllErrors(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SMTP_PORT", "not-a-number")

	_, err := Load()
	if err == nil {
		t.Fatal("Load succeeded with missing required variables")
	}
	msg := err.Error()
	for _, want := range []string{"DATABASE_URL", "JWT_SECRET", "SMTP_PORT"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error does not mention %s: %s", want, msg)
		}
	}
}
