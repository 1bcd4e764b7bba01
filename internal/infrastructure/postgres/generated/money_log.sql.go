package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createMoneyLogEntry = `-- name: CreateMoneyLogEntry :exec
INSERT INTO money_log_entries (
    id, account_id, amount, balance_before, balance_after, sign, operate_type,
    game_code, description, metadata, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

type CreateMoneyLogEntryParams struct {
	ID            string             `json:"id"`
	AccountID     string             `json:"account_id"`
	Amount        pgtype.Numeric     `json:"amount"`
	BalanceBefore pgtype.Numeric     `json:"balance_before"`
	BalanceAfter  pgtype.Numeric     `json:"balance_after"`
	Sign          int16              `json:"sign"`
	OperateType   int32              `json:"operate_type"`
	GameCode      string             `json:"game_code"`
	Description   string             `json:"description"`
	Metadata      []byte             `json:"metadata"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateMoneyLogEntry(ctx context.Context, arg CreateMoneyLogEntryParams) error {
	_, err := q.db.Exec(ctx, createMoneyLogEntry,
		arg.ID,
		arg.AccountID,
		arg.Amount,
		arg.BalanceBefore,
		arg.BalanceAfter,
		arg.Sign,
		arg.OperateType,
		arg.GameCode,
		arg.Description,
		arg.Metadata,
		arg.CreatedAt,
	)
	return err
}

const getMoneyLogEntry = `-- name: GetMoneyLogEntry :one
SELECT id, account_id, amount, balance_before, balance_after, sign, operate_type, game_code, description, metadata, created_at FROM money_log_entries WHERE id = $1
`

func (q *Queries) GetMoneyLogEntry(ctx context.Context, id string) (MoneyLogEntry, error) {
	row := q.db.QueryRow(ctx, getMoneyLogEntry, id)
	var i MoneyLogEntry
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.Amount,
		&i.BalanceBefore,
		&i.BalanceAfter,
		&i.Sign,
		&i.OperateType,
		&i.GameCode,
		&i.Description,
		&i.Metadata,
		&i.CreatedAt,
	)
	return i, err
}

const sumMoneyLogByAccount = `-- name: SumMoneyLogByAccount :one
SELECT
    COALESCE(SUM(sign * amount), 0)::numeric AS total,
    COUNT(*) AS entry_count
FROM money_log_entries
WHERE account_id = $1
`

type SumMoneyLogByAccountRow struct {
	Total      pgtype.Numeric `json:"total"`
	EntryCount int64          `json:"entry_count"`
}

func (q *Queries) SumMoneyLogByAccount(ctx context.Context, accountID string) (SumMoneyLogByAccountRow, error) {
	row := q.db.QueryRow(ctx, sumMoneyLogByAccount, accountID)
	var i SumMoneyLogByAccountRow
	err := row.Scan(&i.Total, &i.EntryCount)
	return i, err
}
