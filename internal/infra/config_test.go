package infra

import (
	"testing"
	"time"
)

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for missing DATABASE_URL")
	}
}

func TestLoadConfigWorkerDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("WORKER_CONCURRENCY", "")
	t.Setenv("WORKER_RATE_LIMIT_PER_MINUTE", "")
	t.Setenv("JOB_MAX_ATTEMPTS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.WorkerConcurrency != 2 {
		t.Fatalf("WorkerConcurrency default mismatch: %d", cfg.WorkerConcurrency)
	}
	if cfg.WorkerRatePerMin != 10 {
		t.Fatalf("WorkerRatePerMin default mismatch: %d", cfg.WorkerRatePerMin)
	}
	if cfg.JobMaxAttempts != 3 {
		t.Fatalf("JobMaxAttempts default mismatch: %d", cfg.JobMaxAttempts)
	}
	if cfg.JobBackoffBase != time.Second {
		t.Fatalf("JobBackoffBase default mismatch: %v", cfg.JobBackoffBase)
	}
}

func TestLoadConfigHTTPTimeoutDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("HTTP_READ_TIMEOUT_SECONDS", "")
	t.Setenv("HTTP_READ_HEADER_TIMEOUT_SECONDS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.HTTPReadTimeout != 15*time.Second {
		t.Fatalf("HTTPReadTimeout default mismatch: %v", cfg.HTTPReadTimeout)
	}
	if cfg.HTTPReadHeaderTimeout != 5*time.Second {
		t.Fatalf("HTTPReadHeaderTimeout default mismatch: %v", cfg.HTTPReadHeaderTimeout)
	}
}

func TestLoadConfigClampsInvalidValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("WORKER_CONCURRENCY", "0")
	t.Setenv("JOB_MAX_ATTEMPTS", "-1")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.WorkerConcurrency != 1 {
		t.Fatalf("WorkerConcurrency should clamp to 1, got %d", cfg.WorkerConcurrency)
	}
	if cfg.JobMaxAttempts != 1 {
		t.Fatalf("JobMaxAttempts should clamp to 1, got %d", cfg.JobMaxAttempts)
	}
}
