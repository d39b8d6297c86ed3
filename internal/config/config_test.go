package config

import (
	"log/slog"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Store != StoreMemory {
		t.Errorf("Store = %q, want %q", cfg.Store, StoreMemory)
	}
	if cfg.DefaultFill != "lightgray" {
		t.Errorf("DefaultFill = %q, want lightgray", cfg.DefaultFill)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE", "file")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.Store != StoreFile {
		t.Errorf("Store = %q, want %q", cfg.Store, StoreFile)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("STORE", "redis")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted unknown store")
	}
}

func TestOrigins(t *testing.T) {
	cfg := &Config{AllowedOrigins: " a.example , ,b.example"}
	got := cfg.Origins()
	if len(got) != 2 || got[0] != "a.example" || got[1] != "b.example" {
		t.Errorf("Origins() = %v", got)
	}
}

func TestLevelFallback(t *testing.T) {
	cfg := &Config{LogLevel: "loud"}
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("Level() = %v, want info", cfg.Level())
	}
}
