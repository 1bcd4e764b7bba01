package redis

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type cacheFixture struct {
	cache  *PartnerCache
	inner  *countingPartners
	mr     *miniredis.Miniredis
}

// newCacheFixture wires a PartnerCache over miniredis and the counting
// partner store. The server and client are closed on cleanup.
func newCacheFixture(t *testing.T, ttl time.Duration) *cacheFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{
		Addr:        mr.Addr(),
		MaxRetries:  -1,
		ReadTimeout: time.Second,
	})
	t.Cleanup(func() { _ = client.Close() })

	inner := newPartners()
	return &cacheFixture{
		cache:  NewPartnerCache(client, inner, ttl, zerolog.Nop()),
		inner:  inner,
		mr:     mr,
	}
}
