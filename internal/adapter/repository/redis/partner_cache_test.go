package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gamewallet/internal/domain"
)

type countingPartners struct {
	partners map[string]*domain.Partner
	calls    int
}

func (c *countingPartners) GetByHost(_ context.Context, host string) (*domain.Partner, error) {
	c.calls++
	p, ok := c.partners[host]
	if !ok {
		return nil, domain.ErrPartnerNotFound
	}
	cp := *p
	return &cp, nil
}

func newPartners() *countingPartners {
	return &countingPartners{partners: map[string]*domain.Partner{
		"vendor.example.com": {
			ID:           "p-1",
			Host:         "vendor.example.com",
			ClientID:     "client",
			ClientSecret: "secret",
			Enabled:      true,
		},
	}}
}

func TestPartnerCacheServesSecondLookupFromRedis(t *testing.T) {
	f := newCacheFixture(t, time.Minute)
	ctx := context.Background()

	first, err := f.cache.GetByHost(ctx, "vendor.example.com")
	require.NoError(t, err)
	second, err := f.cache.GetByHost(ctx, "vendor.example.com")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "secret", second.ClientSecret)
	assert.Equal(t, 1, f.inner.calls)
	assert.True(t, f.mr.Exists("partner:vendor.example.com"))
}

func TestPartnerCacheExpires(t *testing.T) {
	f := newCacheFixture(t, time.Minute)
	ctx := context.Background()

	_, err := f.cache.GetByHost(ctx, "vendor.example.com")
	require.NoError(t, err)

	f.mr.FastForward(2 * time.Minute)

	_, err = f.cache.GetByHost(ctx, "vendor.example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, f.inner.calls)
}

func TestPartnerCacheDoesNotCacheMisses(t *testing.T) {
	f := newCacheFixture(t, time.Minute)

	_, err := f.cache.GetByHost(context.Background(), "unknown.example.com")
	assert.ErrorIs(t, err, domain.ErrPartnerNotFound)
	assert.False(t, f.mr.Exists("partner:unknown.example.com"))
}

func TestPartnerCacheInvalidate(t *testing.T) {
	f := newCacheFixture(t, time.Minute)
	ctx := context.Background()

	_, err := f.cache.GetByHost(ctx, "vendor.example.com")
	require.NoError(t, err)
	require.NoError(t, f.cache.Invalidate(ctx, "vendor.example.com"))

	_, err = f.cache.GetByHost(ctx, "vendor.example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, f.inner.calls)
}

func TestPartnerCacheFallsBackWhenRedisDown(t *testing.T) {
	f := newCacheFixture(t, time.Minute)
	f.mr.Close()

	partner, err := f.cache.GetByHost(context.Background(), "vendor.example.com")
	require.NoError(t, err)
	assert.Equal(t, "client", partner.ClientID)
}

func TestPartnerCacheDiscardsMalformedEntry(t *testing.T) {
	f := newCacheFixture(t, time.Minute)
	require.NoError(t, f.mr.Set("partner:vendor.example.com", "{not json"))

	partner, err := f.cache.GetByHost(context.Background(), "vendor.example.com")
	require.NoError(t, err)
	assert.Equal(t, "p-1", partner.ID)
	assert.Equal(t, 1, f.inner.calls)
}
