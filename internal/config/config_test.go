package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"STORE_DRIVER", "STORE_NOTIFIER", "TOKEN_TTL_MINUTES", "MIN_PASSWORD_LENGTH", "SERVER_PORT", "APP_ENV"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StoreDriver != StorePostgres || cfg.TokenTTL != 24*time.Hour || cfg.MinPasswordLen != 6 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("Addr() = %q", cfg.Addr())
	}
}

func TestLoadRejectsNotifierWithoutDatabase(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("STORE_NOTIFIER", "redis")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for redis notifier on memory store")
	}
}

func TestLoadRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("STORE_NOTIFIER", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for default secret in production")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" https://a.example , ,https://b.example")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("splitList = %v", got)
	}
}
