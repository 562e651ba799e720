package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr())
	}
	if cfg.APIURL != "http://localhost:5000/api" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.APITimeout != 30*time.Second {
		t.Errorf("APITimeout = %v, want 30s", cfg.APITimeout)
	}
	if cfg.Locale != "es" {
		t.Errorf("Locale = %q, want es", cfg.Locale)
	}
	if cfg.LoginRateLimit != 10 {
		t.Errorf("LoginRateLimit = %d, want 10", cfg.LoginRateLimit)
	}
	if cfg.Sealed() {
		t.Error("expected unsealed state without a key")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LISTKEEPER_PORT", "9090")
	t.Setenv("LISTKEEPER_API_URL", "https://lists.example.com/api/")
	t.Setenv("LISTKEEPER_API_TIMEOUT", "5s")
	t.Setenv("LISTKEEPER_STATE_KEY", "hunter2")
	t.Setenv("LISTKEEPER_WS_ORIGINS", "localhost:5173,kiosk.local")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.APIURL != "https://lists.example.com/api" {
		t.Errorf("APIURL = %q, want trailing slash trimmed", cfg.APIURL)
	}
	if cfg.APITimeout != 5*time.Second {
		t.Errorf("APITimeout = %v", cfg.APITimeout)
	}
	if !cfg.Sealed() {
		t.Error("expected sealed state with a key")
	}
	if len(cfg.OriginPatterns) != 2 || cfg.OriginPatterns[1] != "kiosk.local" {
		t.Errorf("OriginPatterns = %v", cfg.OriginPatterns)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"LISTKEEPER_API_URL":          "ftp://example.com",
		"LISTKEEPER_API_TIMEOUT":      "0s",
		"LISTKEEPER_LOGIN_RATE_LIMIT": "0",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoadObjectStorage(t *testing.T) {
	t.Setenv("LISTKEEPER_S3_BUCKET", "listkeeper-images")
	t.Setenv("LISTKEEPER_S3_ENDPOINT", "https://s3.example.com")
	t.Setenv("LISTKEEPER_S3_ACCESS_KEY", "key")
	t.Setenv("LISTKEEPER_S3_SECRET_KEY", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.S3Bucket != "listkeeper-images" || cfg.S3Endpoint != "https://s3.example.com" {
		t.Errorf("S3 = %q at %q", cfg.S3Bucket, cfg.S3Endpoint)
	}
	if cfg.S3Region != "us-east-1" {
		t.Errorf("S3Region = %q, want us-east-1", cfg.S3Region)
	}
}
