package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gamewallet/internal/domain"
	"github.com/iho/gamewallet/internal/infrastructure/postgres/generated"
)

// PartnerRepository implements usecase.PartnerRepository.
type PartnerRepository struct {
	queries *generated.Queries
}

// NewPartnerRepository creates a new PartnerRepository.
func NewPartnerRepository(pool *pgxpool.Pool) *PartnerRepository {
	return newPartnerRepository(pool)
}

func newPartnerRepository(db generated.DBTX) *PartnerRepository {
	return &PartnerRepository{queries: generated.New(db)}
}

// GetByHost resolves the partner whose wallet host is host, falling back
// to the partner whose own API runs on host.
func (r *PartnerRepository) GetByHost(ctx context.Context, host string) (*domain.Partner, error) {
	row, err := r.queries.GetPartnerByHost(ctx, host)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPartnerNotFound
		}

		return nil, err
	}

	return &domain.Partner{
		ID:           row.ID,
		Host:         row.Host,
		VendorHost:   row.VendorHost,
		Name:         row.Name,
		ClientID:     row.ClientID,
		ClientSecret: row.ClientSecret,
		Enabled:      row.Enabled,
	}, nil
}

// Upsert creates the partner for its host or replaces its credentials.
func (r *PartnerRepository) Upsert(ctx context.Context, partner *domain.Partner) error {
	return r.queries.UpsertPartner(ctx, generated.UpsertPartnerParams{
		ID:           partner.ID,
		Host:         partner.Host,
		VendorHost:   partner.VendorHost,
		Name:         partner.Name,
		ClientID:     partner.ClientID,
		ClientSecret: partner.ClientSecret,
		Enabled:      partner.Enabled,
		CreatedAt:    timeToPgTimestamptz(time.Now().UTC()),
	})
}
