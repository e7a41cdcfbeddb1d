package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.CookieSecure {
		t.Error("CookieSecure should default to off")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("COOKIE_SECURE", "true")

	cfg := Load()
	if cfg.DBHost != "db.internal" {
		t.Errorf("DBHost = %q", cfg.DBHost)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.SessionTTL)
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure should be on")
	}
}

func TestDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "tracker")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("DB_NAME", "work_tracker")

	got := Load().DSN()
	want := "host=db.internal user=tracker password=hunter2 dbname=work_tracker port=5432 sslmode=disable TimeZone=UTC"
	if got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestBadDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	if got := Load().SessionTTL; got != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h fallback", got)
	}
}
