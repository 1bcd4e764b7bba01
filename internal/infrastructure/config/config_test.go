package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/iho/gamewallet/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ADMIN_TOKEN", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.AdminToken != "" {
		t.Fatalf("expected admin token default to be empty, got %q", cfg.AdminToken)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.BalanceCurrency != "CNY" || cfg.ResponseCurrency != "CNY" {
		t.Fatalf("expected CNY currencies, got balance=%s response=%s", cfg.BalanceCurrency, cfg.ResponseCurrency)
	}

	if len(cfg.SupportedCurrencies) != 7 || cfg.SupportedCurrencies[0] != "CNY" {
		t.Fatalf("unexpected supported currencies %v", cfg.SupportedCurrencies)
	}

	if cfg.RateLimitEnabled() {
		t.Fatalf("expected rate limiting to be disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("SUPPORTED_CURRENCIES", "CNY,USD")
	t.Setenv("RATE_LIMIT_RPS", "50")
	t.Setenv("RATE_LIMIT_BURST", "100")
	t.Setenv("KAFKA_BROKERS", "kafka:9092")
	t.Setenv("ADMIN_TOKEN", "top-secret")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if len(cfg.SupportedCurrencies) != 2 || cfg.SupportedCurrencies[1] != "USD" {
		t.Fatalf("expected currency override, got %v", cfg.SupportedCurrencies)
	}

	if !cfg.RateLimitEnabled() {
		t.Fatalf("expected rate limiting to be enabled")
	}

	if cfg.KafkaBrokers != "kafka:9092" || cfg.AdminToken != "top-secret" {
		t.Fatalf("expected kafka and admin settings, got brokers=%s token=%s", cfg.KafkaBrokers, cfg.AdminToken)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	original := os.Getenv("HTTP_READ_TIMEOUT")
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")
	t.Cleanup(func() {
		t.Setenv("HTTP_READ_TIMEOUT", original)
	})

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestRedisClientConfig(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("REDIS_POOL_SIZE", "64")
	t.Setenv("REDIS_TIMEOUT", "250ms")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	rc := cfg.RedisClientConfig()
	if rc.URL != "redis://cache:6379/1" {
		t.Fatalf("expected redis URL to carry over, got %s", rc.URL)
	}
	if rc.PoolSize != 64 {
		t.Fatalf("expected pool size 64, got %d", rc.PoolSize)
	}
	if rc.ReadTimeout != 250*time.Millisecond {
		t.Fatalf("expected 250ms timeout, got %s", rc.ReadTimeout)
	}
	if rc.MinIdleConns != 2 || rc.DialTimeout != 2*time.Second {
		t.Fatalf("expected idle/dial defaults, got %d/%s", rc.MinIdleConns, rc.DialTimeout)
	}
}
