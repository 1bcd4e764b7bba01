package postgres

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID ids for transaction records, money log
// entries and outbox events. Ids are monotonic within a millisecond, so
// records sharing a created_at still sort in write order on the id
// tie-break of the latest-record lookups.
type ULIDGenerator struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy *ulid.MonotonicEntropy
}

// NewULIDGenerator creates a generator stamped with the wall clock.
func NewULIDGenerator() *ULIDGenerator {
	return NewULIDGeneratorWithClock(time.Now)
}

// NewULIDGeneratorWithClock stamps ids with now, typically the clock the
// wallet uses for created_at.
func NewULIDGeneratorWithClock(now func() time.Time) *ULIDGenerator {
	return &ULIDGenerator{
		now:     now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Generate returns the next id.
func (g *ULIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}
