package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getPartnerByHost = `-- name: GetPartnerByHost :one
SELECT id, host, vendor_host, name, client_id, client_secret, enabled, created_at FROM partners
WHERE host = $1 OR (vendor_host <> '' AND vendor_host = $1)
ORDER BY (host = $1) DESC
LIMIT 1
`

func (q *Queries) GetPartnerByHost(ctx context.Context, host string) (Partner, error) {
	row := q.db.QueryRow(ctx, getPartnerByHost, host)
	var i Partner
	err := row.Scan(
		&i.ID,
		&i.Host,
		&i.VendorHost,
		&i.Name,
		&i.ClientID,
		&i.ClientSecret,
		&i.Enabled,
		&i.CreatedAt,
	)
	return i, err
}

const upsertPartner = `-- name: UpsertPartner :exec
INSERT INTO partners (id, host, vendor_host, name, client_id, client_secret, enabled, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (host) DO UPDATE
SET vendor_host = EXCLUDED.vendor_host,
    name = EXCLUDED.name,
    client_id = EXCLUDED.client_id,
    client_secret = EXCLUDED.client_secret,
    enabled = EXCLUDED.enabled
`

type UpsertPartnerParams struct {
	ID           string             `json:"id"`
	Host         string             `json:"host"`
	VendorHost   string             `json:"vendor_host"`
	Name         string             `json:"name"`
	ClientID     string             `json:"client_id"`
	ClientSecret string             `json:"client_secret"`
	Enabled      bool               `json:"enabled"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) UpsertPartner(ctx context.Context, arg UpsertPartnerParams) error {
	_, err := q.db.Exec(ctx, upsertPartner,
		arg.ID,
		arg.Host,
		arg.VendorHost,
		arg.Name,
		arg.ClientID,
		arg.ClientSecret,
		arg.Enabled,
		arg.CreatedAt,
	)
	return err
}
