package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
	"github.com/iho/gamewallet/internal/infrastructure/postgres/generated"
	"github.com/iho/gamewallet/internal/usecase"
)

// MoneyLogRepository implements usecase.MoneyLogRepository.
type MoneyLogRepository struct {
	queries *generated.Queries
}

// NewMoneyLogRepository creates a new MoneyLogRepository.
func NewMoneyLogRepository(pool *pgxpool.Pool) *MoneyLogRepository {
	return newMoneyLogRepository(pool)
}

func newMoneyLogRepository(db generated.DBTX) *MoneyLogRepository {
	return &MoneyLogRepository{queries: generated.New(db)}
}

// Create inserts a money log entry inside tx.
func (r *MoneyLogRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.MoneyLogEntry) error {
	var metadata []byte
	if entry.Metadata != nil {
		var err error
		if metadata, err = json.Marshal(entry.Metadata); err != nil {
			return err
		}
	}

	return txQueries(tx).CreateMoneyLogEntry(ctx, generated.CreateMoneyLogEntryParams{
		ID:            entry.ID,
		AccountID:     entry.AccountID,
		Amount:        decimalToNumeric(entry.Amount),
		BalanceBefore: decimalToNumeric(entry.BalanceBefore),
		BalanceAfter:  decimalToNumeric(entry.BalanceAfter),
		Sign:          entry.Sign,
		OperateType:   int32(entry.OperateType),
		GameCode:      entry.GameCode,
		Description:   entry.Description,
		Metadata:      metadata,
		CreatedAt:     timeToPgTimestamptz(entry.CreatedAt),
	})
}

// GetByID retrieves a money log entry inside tx.
func (r *MoneyLogRepository) GetByID(ctx context.Context, tx usecase.Transaction, id string) (*domain.MoneyLogEntry, error) {
	row, err := txQueries(tx).GetMoneyLogEntry(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMoneyLogNotFound
		}

		return nil, err
	}

	return rowToMoneyLogEntry(row)
}

// SumByAccount returns the signed total and number of entries for an account.
func (r *MoneyLogRepository) SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, int64, error) {
	row, err := r.queries.SumMoneyLogByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, 0, err
	}

	total, err := toDecimal(row.Total)
	if err != nil {
		return decimal.Zero, 0, err
	}

	return total, row.EntryCount, nil
}

func rowToMoneyLogEntry(row generated.MoneyLogEntry) (*domain.MoneyLogEntry, error) {
	var metadata map[string]any
	if row.Metadata != nil {
		if err := json.Unmarshal(row.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("decode metadata of money log entry %s: %w", row.ID, err)
		}
	}

	return &domain.MoneyLogEntry{
		ID:            row.ID,
		AccountID:     row.AccountID,
		Amount:        numericToDecimal(row.Amount),
		BalanceBefore: numericToDecimal(row.BalanceBefore),
		BalanceAfter:  numericToDecimal(row.BalanceAfter),
		Sign:          row.Sign,
		OperateType:   domain.OperateType(row.OperateType),
		GameCode:      row.GameCode,
		Description:   row.Description,
		Metadata:      metadata,
		CreatedAt:     row.CreatedAt.Time,
	}, nil
}
