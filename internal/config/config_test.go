package config

import (
	"strings"
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"DB_DRIVER", "DB_DSN", "AUTH_MODE", "NOTIFY_MODE", "PORT", "SCHEDULE_TIMEZONE", "CORS_ORIGINS", "TRUST_PROXY"} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBDriver != "memory" || cfg.AuthMode != "dev" || cfg.NotifyMode != "log" || cfg.TrustProxy {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Addr() != ":8080" || cfg.Location() != time.UTC || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected defaults: addr=%s loc=%s cors=%v", cfg.Addr(), cfg.Location(), cfg.CORSOrigins)
	}
}

func TestFromEnv_DSNImpliesPostgres(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_DSN", "postgres://localhost/vet")
	t.Setenv("AUTH_MODE", "dev")
	t.Setenv("NOTIFY_MODE", "none")

	cfg, err := FromEnv()
	if err != nil || cfg.DBDriver != "postgres" {
		t.Fatalf("expected postgres, got %q err=%v", cfg.DBDriver, err)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("AUTH_MODE", "jwt")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("NOTIFY_MODE", "webhook")
	t.Setenv("NOTIFY_WEBHOOK_URL", "http://hook")
	t.Setenv("CORS_ORIGINS", "http://a, http://b ,")
	t.Setenv("LOGIN_RATE_LIMIT", "3")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBDriver != "sqlite" || cfg.SQLitePath != "/tmp/x.db" || cfg.JWTTTL != 30*time.Minute || cfg.LoginRateLimit != 3 || !cfg.TrustProxy {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg := Config{
		DBDriver:         "mongo",
		AuthMode:         "jwt",
		NotifyMode:       "webhook",
		ScheduleTimezone: "Nowhere/Nope",
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"DB_DRIVER", "JWT_SECRET", "NOTIFY_WEBHOOK_URL", "SCHEDULE_TIMEZONE"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s in %q", want, err.Error())
		}
	}
}
