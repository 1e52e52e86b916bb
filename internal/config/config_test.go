package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "SESSION_TTL", "FACE_SKIP"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.HTTPPort != "8081" {
		t.Errorf("HTTPPort = %q, want 8081", cfg.HTTPPort)
	}
	if cfg.SessionTTL != 8*time.Hour {
		t.Errorf("SessionTTL = %v, want 8h", cfg.SessionTTL)
	}
	if cfg.FaceSkip {
		t.Error("FaceSkip must default to false")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("FACE_SKIP", "true")
	t.Setenv("RATE_LIMIT_PER_MIN", "7")

	cfg := Load()
	if cfg.HTTPPort != "9999" {
		t.Errorf("HTTPPort = %q, want 9999", cfg.HTTPPort)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.SessionTTL)
	}
	if !cfg.FaceSkip {
		t.Error("FaceSkip override not applied")
	}
	if cfg.RateLimitPerMin != 7 {
		t.Errorf("RateLimitPerMin = %d, want 7", cfg.RateLimitPerMin)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("FACE_SKIP", "maybe")
	t.Setenv("RATE_LIMIT_PER_MIN", "lots")

	cfg := Load()
	if cfg.SessionTTL != 8*time.Hour {
		t.Errorf("SessionTTL = %v, want fallback 8h", cfg.SessionTTL)
	}
	if cfg.FaceSkip {
		t.Error("invalid FACE_SKIP must fall back to false")
	}
	if cfg.RateLimitPerMin != 120 {
		t.Errorf("RateLimitPerMin = %d, want fallback 120", cfg.RateLimitPerMin)
	}
}
