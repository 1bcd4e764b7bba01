package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
	"github.com/iho/gamewallet/internal/infrastructure/postgres/generated"
	"github.com/iho/gamewallet/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepository(pool)
}

func newAccountRepository(db generated.DBTX) *AccountRepository {
	return &AccountRepository{queries: generated.New(db)}
}

// Create inserts a new account inside tx.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	err := txQueries(tx).CreateAccount(ctx, generated.CreateAccountParams{
		ID:             account.ID,
		Name:           account.Name,
		Balance:        decimalToNumeric(account.Balance),
		OpeningBalance: decimalToNumeric(account.OpeningBalance),
		Status:         int16(account.Status),
		CreatedAt:      timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(account.UpdatedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrAccountExists
	}

	return err
}

// GetByName retrieves an account by player name.
func (r *AccountRepository) GetByName(ctx context.Context, name string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByNameForUpdate retrieves an account by name with a FOR UPDATE lock.
func (r *AccountRepository) GetByNameForUpdate(ctx context.Context, tx usecase.Transaction, name string) (*domain.Account, error) {
	row, err := txQueries(tx).GetAccountByNameForUpdate(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// CompareAndSwapBalance updates the balance only if it still equals expected.
func (r *AccountRepository) CompareAndSwapBalance(ctx context.Context, tx usecase.Transaction, id string, expected, next decimal.Decimal, updatedAt time.Time) error {
	rows, err := txQueries(tx).CompareAndSwapBalance(ctx, generated.CompareAndSwapBalanceParams{
		ID:        id,
		Expected:  decimalToNumeric(expected),
		Balance:   decimalToNumeric(next),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}

	if rows == 0 {
		return domain.ErrConcurrentModification
	}

	return nil
}

// List lists accounts ordered by name.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccounts(ctx, generated.ListAccountsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// Count returns the number of accounts.
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	return r.queries.CountAccounts(ctx)
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:             row.ID,
		Name:           row.Name,
		Balance:        numericToDecimal(row.Balance),
		OpeningBalance: numericToDecimal(row.OpeningBalance),
		Status:         domain.AccountStatus(row.Status),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}

func txQueries(tx usecase.Transaction) *generated.Queries {
	return generated.New(tx.(*Tx).PgxTx())
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	d, _ := toDecimal(n)
	return d
}

func toDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(n.Int.String())
	if err != nil {
		return decimal.Zero, err
	}

	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d, nil
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
