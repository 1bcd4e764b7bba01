package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/gamewallet/internal/domain"
	"github.com/iho/gamewallet/internal/usecase"
)

// DefaultPartnerTTL is how long a resolved partner stays cached.
const DefaultPartnerTTL = 5 * time.Minute

// PartnerCache implements usecase.PartnerRepository by caching the partner
// resolved for a host in Redis in front of another repository.
type PartnerCache struct {
	client *redis.Client
	next   usecase.PartnerRepository
	logger zerolog.Logger
	prefix string
	ttl    time.Duration
}

// NewPartnerCache creates a new PartnerCache.
func NewPartnerCache(client *redis.Client, next usecase.PartnerRepository, ttl time.Duration, logger zerolog.Logger) *PartnerCache {
	if ttl <= 0 {
		ttl = DefaultPartnerTTL
	}

	return &PartnerCache{
		client: client,
		next:   next,
		logger: logger,
		prefix: "partner:",
		ttl:    ttl,
	}
}

// GetByHost returns the cached partner or loads and caches it.
// Redis failures fall through to the underlying repository.
func (c *PartnerCache) GetByHost(ctx context.Context, host string) (*domain.Partner, error) {
	key := c.prefix + host

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var partner domain.Partner
		if err := json.Unmarshal(raw, &partner); err == nil {
			return &partner, nil
		}
		c.logger.Warn().Str("host", host).Msg("discarding malformed cached partner")
	case !errors.Is(err, redis.Nil):
		c.logger.Warn().Err(err).Str("host", host).Msg("partner cache read failed")
	}

	partner, err := c.next.GetByHost(ctx, host)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(partner); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn().Err(err).Str("host", host).Msg("partner cache write failed")
		}
	}

	return partner, nil
}

// Invalidate drops the cached partner for host.
func (c *PartnerCache) Invalidate(ctx context.Context, host string) error {
	return c.client.Del(ctx, c.prefix+host).Err()
}
