package main

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/iho/gamewallet/internal/infrastructure/config"
	"github.com/iho/gamewallet/internal/infrastructure/eventpublisher"
)

type nopRateObserver struct{}

func (nopRateObserver) RateLimited() {}

func TestNewPublisherFallsBackToLog(t *testing.T) {
	cfg := &config.Config{KafkaTopic: "wallet.events"}

	publisher, closeFn, err := newPublisher(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := publisher.(*eventpublisher.LogPublisher); !ok {
		t.Fatalf("expected log publisher, got %T", publisher)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestNewPublisherUsesKafka(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: "localhost:9092, localhost:9093", KafkaTopic: "wallet.events"}

	publisher, closeFn, err := newPublisher(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()

	if _, ok := publisher.(*eventpublisher.KafkaPublisher); !ok {
		t.Fatalf("expected kafka publisher, got %T", publisher)
	}
}

func TestNewPublisherRequiresTopic(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: "localhost:9092"}

	if _, _, err := newPublisher(cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error for missing topic")
	}
}

func TestNewRateLimiter(t *testing.T) {
	if rl := newRateLimiter(&config.Config{}, nopRateObserver{}); rl != nil {
		t.Fatal("expected rate limiter to be disabled")
	}

	if rl := newRateLimiter(&config.Config{RateLimitRPS: 10, RateLimitBurst: 20}, nopRateObserver{}); rl == nil {
		t.Fatal("expected rate limiter to be enabled")
	}
}

func TestNewRegistryCollectsRuntimeMetrics(t *testing.T) {
	families, err := newRegistry().Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	found := false
	for _, family := range families {
		if family.GetName() == "go_goroutines" {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected go_goroutines to be registered")
	}
}
