package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("Cache.TTL = %v, want 10m", cfg.Cache.TTL)
	}
	if cfg.Engine.Weights.Genre != 3.0 {
		t.Errorf("Engine.Weights.Genre = %f, want 3.0", cfg.Engine.Weights.Genre)
	}
	if cfg.Engine.CatalogLimit != 500 {
		t.Errorf("Engine.CatalogLimit = %d, want 500", cfg.Engine.CatalogLimit)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STREAMCAST_SERVER__PORT", "9090")
	t.Setenv("STREAMCAST_DATABASE__URL", "postgresql://test:test@db:5432/test")
	t.Setenv("STREAMCAST_ENGINE__WEIGHTS__GENRE", "5.5")
	t.Setenv("STREAMCAST_LOG__LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 from env", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgresql://test:test@db:5432/test" {
		t.Errorf("Database.URL = %q, want env override", cfg.Database.URL)
	}
	if cfg.Engine.Weights.Genre != 5.5 {
		t.Errorf("Engine.Weights.Genre = %f, want 5.5 from env", cfg.Engine.Weights.Genre)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_ValidationRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "STREAMCAST_SERVER__PORT", "70000"},
		{"empty database url", "STREAMCAST_DATABASE__URL", ""},
		{"unknown log level", "STREAMCAST_LOG__LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load accepted %s=%q, want validation error", tt.key, tt.value)
			} else if !strings.Contains(err.Error(), "validate") {
				t.Errorf("error = %v, want validation failure", err)
			}
		})
	}
}

func TestAddr(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.Addr(); got != ":8080" {
		t.Errorf("Addr() = %q, want :8080", got)
	}
}
