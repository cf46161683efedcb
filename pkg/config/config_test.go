package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "https://api.sockshop.test" {
		t.Fatalf("unexpected API base URL: %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Fatalf("expected 15s timeout, got %v", cfg.API.Timeout)
	}
	if cfg.Storage.Backend != StorageBackendFile {
		t.Fatalf("expected file backend default, got %q", cfg.Storage.Backend)
	}
	if cfg.Cache.MaxAge != 0 {
		t.Fatalf("expected no cache max age by default, got %v", cfg.Cache.MaxAge)
	}
}

func TestLoad_RedisBackend(t *testing.T) {
	t.Setenv("SOCKSHOP_STORAGE_BACKEND", "redis")
	t.Setenv("SOCKSHOP_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !cfg.Storage.IsRedis() {
		t.Fatalf("expected redis backend")
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected redis URL %q", cfg.Redis.URL)
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("SOCKSHOP_STORAGE_BACKEND", "carrier-pigeon")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown storage backend to return an error")
	}
}
