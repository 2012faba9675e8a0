package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SESSION_BACKEND", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("want default port 8080, got %q", cfg.Port)
	}
	if cfg.SessionBackend != "sqlite" {
		t.Fatalf("want sqlite backend, got %q", cfg.SessionBackend)
	}
	if cfg.ProductPageSize != 50 || cfg.ColorPageSize != 20 {
		t.Fatalf("unexpected page sizes: %d/%d", cfg.ProductPageSize, cfg.ColorPageSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_API_URL", "http://127.0.0.1:9091")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("PRODUCT_PAGE_SIZE", "10")
	t.Setenv("TRACE_STDOUT", "true")
	cfg := Load()
	if cfg.APIBaseURL != "http://127.0.0.1:9091" {
		t.Fatalf("api url not applied: %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 5*time.Second {
		t.Fatalf("timeout not applied: %v", cfg.APITimeout)
	}
	if cfg.SessionBackend != "redis" || cfg.ProductPageSize != 10 || !cfg.TraceStdout {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestUnknownBackendFallsBack(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "memcached")
	if cfg := Load(); cfg.SessionBackend != "sqlite" {
		t.Fatalf("want sqlite fallback, got %q", cfg.SessionBackend)
	}
}
