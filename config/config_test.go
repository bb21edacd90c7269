package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"TARGET_URL", "CSV_OUTPUT_PATH", "PROBE_TIMEOUT_MS", "FETCH_MODE",
		"SKIP_INCOMPLETE", "POSTGRES_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.TargetURL != DefaultTargetURL {
		t.Errorf("TargetURL: got %q, want %q", cfg.TargetURL, DefaultTargetURL)
	}
	if cfg.ProbeTimeout() != 5*time.Second {
		t.Errorf("ProbeTimeout: got %v, want 5s", cfg.ProbeTimeout())
	}
	if cfg.FetchMode != FetchModeHTTP {
		t.Errorf("FetchMode: got %q, want %q", cfg.FetchMode, FetchModeHTTP)
	}
	if cfg.SkipIncomplete {
		t.Error("SkipIncomplete should default to false")
	}
	if cfg.PostgresEnabled {
		t.Error("PostgresEnabled should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TARGET_URL", "https://example.com/cars")
	t.Setenv("PROBE_TIMEOUT_MS", "250")
	t.Setenv("FETCH_MODE", "Chrome")
	t.Setenv("SKIP_INCOMPLETE", "true")
	t.Setenv("MAX_RETRIES", "not-a-number")

	cfg := Load()
	if cfg.TargetURL != "https://example.com/cars" {
		t.Errorf("TargetURL: got %q", cfg.TargetURL)
	}
	if cfg.ProbeTimeout() != 250*time.Millisecond {
		t.Errorf("ProbeTimeout: got %v, want 250ms", cfg.ProbeTimeout())
	}
	if cfg.FetchMode != FetchModeChrome {
		t.Errorf("FetchMode: got %q, want %q", cfg.FetchMode, FetchModeChrome)
	}
	if !cfg.SkipIncomplete {
		t.Error("SkipIncomplete: got false, want true")
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries: got %d, want fallback 3", cfg.MaxRetries)
	}
}
