package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createTransactionRecord = `-- name: CreateTransactionRecord :exec
INSERT INTO transaction_records (
    id, external_transaction_id, account_id, kind, amount, status, trace_id, bet_id,
    transaction_ref, game_code, round_id, money_log_id, metadata, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`

type CreateTransactionRecordParams struct {
	ID                    string             `json:"id"`
	ExternalTransactionID string             `json:"external_transaction_id"`
	AccountID             string             `json:"account_id"`
	Kind                  string             `json:"kind"`
	Amount                pgtype.Numeric     `json:"amount"`
	Status                string             `json:"status"`
	TraceID               string             `json:"trace_id"`
	BetID                 string             `json:"bet_id"`
	TransactionRef        string             `json:"transaction_ref"`
	GameCode              string             `json:"game_code"`
	RoundID               string             `json:"round_id"`
	MoneyLogID            pgtype.Text        `json:"money_log_id"`
	Metadata              []byte             `json:"metadata"`
	CreatedAt             pgtype.Timestamptz `json:"created_at"`
	UpdatedAt             pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateTransactionRecord(ctx context.Context, arg CreateTransactionRecordParams) error {
	_, err := q.db.Exec(ctx, createTransactionRecord,
		arg.ID,
		arg.ExternalTransactionID,
		arg.AccountID,
		arg.Kind,
		arg.Amount,
		arg.Status,
		arg.TraceID,
		arg.BetID,
		arg.TransactionRef,
		arg.GameCode,
		arg.RoundID,
		arg.MoneyLogID,
		arg.Metadata,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const existsTransactionByExternalID = `-- name: ExistsTransactionByExternalID :one
SELECT EXISTS (SELECT 1 FROM transaction_records WHERE external_transaction_id = $1)
`

func (q *Queries) ExistsTransactionByExternalID(ctx context.Context, externalTransactionID string) (bool, error) {
	row := q.db.QueryRow(ctx, existsTransactionByExternalID, externalTransactionID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const findDebitedBet = `-- name: FindDebitedBet :one
SELECT id, external_transaction_id, account_id, kind, amount, status, trace_id, bet_id, transaction_ref, game_code, round_id, money_log_id, metadata, created_at, updated_at FROM transaction_records
WHERE account_id = $1
  AND kind = 'bet'
  AND status = 'completed'
  AND bet_id = $2
  AND round_id = $3
  AND game_code = $4
  AND amount = $5
ORDER BY created_at DESC, id DESC
LIMIT 1
`

type FindDebitedBetParams struct {
	AccountID string         `json:"account_id"`
	BetID     string         `json:"bet_id"`
	RoundID   string         `json:"round_id"`
	GameCode  string         `json:"game_code"`
	Amount    pgtype.Numeric `json:"amount"`
}

func (q *Queries) FindDebitedBet(ctx context.Context, arg FindDebitedBetParams) (TransactionRecord, error) {
	row := q.db.QueryRow(ctx, findDebitedBet,
		arg.AccountID,
		arg.BetID,
		arg.RoundID,
		arg.GameCode,
		arg.Amount,
	)
	var i TransactionRecord
	err := scanTransactionRecord(row, &i)
	return i, err
}

const findLatestByBet = `-- name: FindLatestByBet :one
SELECT id, external_transaction_id, account_id, kind, amount, status, trace_id, bet_id, transaction_ref, game_code, round_id, money_log_id, metadata, created_at, updated_at FROM transaction_records
WHERE account_id = $1
  AND bet_id = $2
  AND game_code = $3
  AND kind = ANY($4::text[])
  AND status = 'completed'
ORDER BY created_at DESC, id DESC
LIMIT 1
`

type FindLatestByBetParams struct {
	AccountID string   `json:"account_id"`
	BetID     string   `json:"bet_id"`
	GameCode  string   `json:"game_code"`
	Kinds     []string `json:"kinds"`
}

func (q *Queries) FindLatestByBet(ctx context.Context, arg FindLatestByBetParams) (TransactionRecord, error) {
	row := q.db.QueryRow(ctx, findLatestByBet,
		arg.AccountID,
		arg.BetID,
		arg.GameCode,
		arg.Kinds,
	)
	var i TransactionRecord
	err := scanTransactionRecord(row, &i)
	return i, err
}

const findLatestByRound = `-- name: FindLatestByRound :one
SELECT id, external_transaction_id, account_id, kind, amount, status, trace_id, bet_id, transaction_ref, game_code, round_id, money_log_id, metadata, created_at, updated_at FROM transaction_records
WHERE account_id = $1
  AND round_id = $2
  AND game_code = $3
  AND kind = ANY($4::text[])
  AND status = 'completed'
ORDER BY created_at DESC, id DESC
LIMIT 1
`

type FindLatestByRoundParams struct {
	AccountID string   `json:"account_id"`
	RoundID   string   `json:"round_id"`
	GameCode  string   `json:"game_code"`
	Kinds     []string `json:"kinds"`
}

func (q *Queries) FindLatestByRound(ctx context.Context, arg FindLatestByRoundParams) (TransactionRecord, error) {
	row := q.db.QueryRow(ctx, findLatestByRound,
		arg.AccountID,
		arg.RoundID,
		arg.GameCode,
		arg.Kinds,
	)
	var i TransactionRecord
	err := scanTransactionRecord(row, &i)
	return i, err
}

const findLatestForRollback = `-- name: FindLatestForRollback :one
SELECT id, external_transaction_id, account_id, kind, amount, status, trace_id, bet_id, transaction_ref, game_code, round_id, money_log_id, metadata, created_at, updated_at FROM transaction_records
WHERE account_id = $1
  AND bet_id = $2
  AND round_id = $3
  AND game_code = $4
  AND kind IN ('bet', 'bet_result', 'bet_credit', 'bet_debit')
  AND status = 'completed'
ORDER BY created_at DESC, id DESC
LIMIT 1
FOR UPDATE
`

type FindLatestForRollbackParams struct {
	AccountID string `json:"account_id"`
	BetID     string `json:"bet_id"`
	RoundID   string `json:"round_id"`
	GameCode  string `json:"game_code"`
}

func (q *Queries) FindLatestForRollback(ctx context.Context, arg FindLatestForRollbackParams) (TransactionRecord, error) {
	row := q.db.QueryRow(ctx, findLatestForRollback,
		arg.AccountID,
		arg.BetID,
		arg.RoundID,
		arg.GameCode,
	)
	var i TransactionRecord
	err := scanTransactionRecord(row, &i)
	return i, err
}

const getTransactionByExternalID = `-- name: GetTransactionByExternalID :one
SELECT id, external_transaction_id, account_id, kind, amount, status, trace_id, bet_id, transaction_ref, game_code, round_id, money_log_id, metadata, created_at, updated_at FROM transaction_records
WHERE external_transaction_id = $1 AND kind = $2
LIMIT 1
`

type GetTransactionByExternalIDParams struct {
	ExternalTransactionID string `json:"external_transaction_id"`
	Kind                  string `json:"kind"`
}

func (q *Queries) GetTransactionByExternalID(ctx context.Context, arg GetTransactionByExternalIDParams) (TransactionRecord, error) {
	row := q.db.QueryRow(ctx, getTransactionByExternalID, arg.ExternalTransactionID, arg.Kind)
	var i TransactionRecord
	err := scanTransactionRecord(row, &i)
	return i, err
}

const markTransactionRolledBack = `-- name: MarkTransactionRolledBack :execrows
UPDATE transaction_records
SET status = 'rolled_back', updated_at = $2
WHERE id = $1 AND status = 'completed'
`

type MarkTransactionRolledBackParams struct {
	ID        string             `json:"id"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) MarkTransactionRolledBack(ctx context.Context, arg MarkTransactionRolledBackParams) (int64, error) {
	result, err := q.db.Exec(ctx, markTransactionRolledBack, arg.ID, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransactionRecord(row rowScanner, i *TransactionRecord) error {
	return row.Scan(
		&i.ID,
		&i.ExternalTransactionID,
		&i.AccountID,
		&i.Kind,
		&i.Amount,
		&i.Status,
		&i.TraceID,
		&i.BetID,
		&i.TransactionRef,
		&i.GameCode,
		&i.RoundID,
		&i.MoneyLogID,
		&i.Metadata,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
}
