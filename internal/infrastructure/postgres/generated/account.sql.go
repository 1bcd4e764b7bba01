package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const compareAndSwapBalance = `-- name: CompareAndSwapBalance :execrows
UPDATE accounts
SET balance = $3, updated_at = $4
WHERE id = $1 AND balance = $2
`

type CompareAndSwapBalanceParams struct {
	ID        string             `json:"id"`
	Expected  pgtype.Numeric     `json:"expected"`
	Balance   pgtype.Numeric     `json:"balance"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CompareAndSwapBalance(ctx context.Context, arg CompareAndSwapBalanceParams) (int64, error) {
	result, err := q.db.Exec(ctx, compareAndSwapBalance,
		arg.ID,
		arg.Expected,
		arg.Balance,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const countAccounts = `-- name: CountAccounts :one
SELECT COUNT(*) FROM accounts
`

func (q *Queries) CountAccounts(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countAccounts)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createAccount = `-- name: CreateAccount :exec
INSERT INTO accounts (id, name, balance, opening_balance, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type CreateAccountParams struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Balance        pgtype.Numeric     `json:"balance"`
	OpeningBalance pgtype.Numeric     `json:"opening_balance"`
	Status         int16              `json:"status"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) error {
	_, err := q.db.Exec(ctx, createAccount,
		arg.ID,
		arg.Name,
		arg.Balance,
		arg.OpeningBalance,
		arg.Status,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getAccountByName = `-- name: GetAccountByName :one
SELECT id, name, balance, opening_balance, status, created_at, updated_at FROM accounts WHERE name = $1
`

func (q *Queries) GetAccountByName(ctx context.Context, name string) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByName, name)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Balance,
		&i.OpeningBalance,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountByNameForUpdate = `-- name: GetAccountByNameForUpdate :one
SELECT id, name, balance, opening_balance, status, created_at, updated_at FROM accounts WHERE name = $1 FOR UPDATE
`

func (q *Queries) GetAccountByNameForUpdate(ctx context.Context, name string) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByNameForUpdate, name)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Balance,
		&i.OpeningBalance,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listAccounts = `-- name: ListAccounts :many
SELECT id, name, balance, opening_balance, status, created_at, updated_at FROM accounts
ORDER BY name
LIMIT $1 OFFSET $2
`

type ListAccountsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListAccounts(ctx context.Context, arg ListAccountsParams) ([]Account, error) {
	rows, err := q.db.Query(ctx, listAccounts, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Balance,
			&i.OpeningBalance,
			&i.Status,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
