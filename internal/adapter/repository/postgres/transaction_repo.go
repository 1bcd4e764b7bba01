package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
	"github.com/iho/gamewallet/internal/infrastructure/postgres/generated"
	"github.com/iho/gamewallet/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return newTransactionRepository(pool)
}

func newTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: generated.New(db)}
}

// Create inserts a transaction record. A second record for the same
// external id and kind fails with domain.ErrDuplicateTransaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.TransactionRecord) error {
	var metadata []byte
	if record.Metadata != nil {
		var err error
		if metadata, err = json.Marshal(record.Metadata); err != nil {
			return err
		}
	}

	var moneyLogID pgtype.Text
	if record.MoneyLogID != nil {
		moneyLogID = pgtype.Text{String: *record.MoneyLogID, Valid: true}
	}

	err := txQueries(tx).CreateTransactionRecord(ctx, generated.CreateTransactionRecordParams{
		ID:                    record.ID,
		ExternalTransactionID: record.ExternalTransactionID,
		AccountID:             record.AccountID,
		Kind:                  string(record.Kind),
		Amount:                decimalToNumeric(record.Amount),
		Status:                string(record.Status),
		TraceID:               record.TraceID,
		BetID:                 record.BetID,
		TransactionRef:        record.TransactionRef,
		GameCode:              record.GameCode,
		RoundID:               record.RoundID,
		MoneyLogID:            moneyLogID,
		Metadata:              metadata,
		CreatedAt:             timeToPgTimestamptz(record.CreatedAt),
		UpdatedAt:             timeToPgTimestamptz(record.UpdatedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrDuplicateTransaction
	}

	return err
}

// FindByExternalID returns the record for externalID and kind in any status.
func (r *TransactionRepository) FindByExternalID(ctx context.Context, externalID string, kind domain.TransactionKind) (*domain.TransactionRecord, error) {
	return recordOrNotFound(r.queries.GetTransactionByExternalID(ctx, generated.GetTransactionByExternalIDParams{
		ExternalTransactionID: externalID,
		Kind:                  string(kind),
	}))
}

// ExistsByExternalID reports whether any record carries externalID.
func (r *TransactionRepository) ExistsByExternalID(ctx context.Context, tx usecase.Transaction, externalID string) (bool, error) {
	return txQueries(tx).ExistsTransactionByExternalID(ctx, externalID)
}

// FindDebitedBet finds the completed bet that debited exactly amount.
func (r *TransactionRepository) FindDebitedBet(ctx context.Context, tx usecase.Transaction, accountID, betID, roundID, gameCode string, amount decimal.Decimal) (*domain.TransactionRecord, error) {
	return recordOrNotFound(txQueries(tx).FindDebitedBet(ctx, generated.FindDebitedBetParams{
		AccountID: accountID,
		BetID:     betID,
		RoundID:   roundID,
		GameCode:  gameCode,
		Amount:    decimalToNumeric(domain.MoneyFloor(amount).Neg()),
	}))
}

// FindLatestByBet returns the newest completed record of kinds for a bet.
func (r *TransactionRepository) FindLatestByBet(ctx context.Context, tx usecase.Transaction, accountID, betID, gameCode string, kinds []domain.TransactionKind) (*domain.TransactionRecord, error) {
	return recordOrNotFound(txQueries(tx).FindLatestByBet(ctx, generated.FindLatestByBetParams{
		AccountID: accountID,
		BetID:     betID,
		GameCode:  gameCode,
		Kinds:     kindStrings(kinds),
	}))
}

// FindLatestByRound returns the newest completed record of kinds in a round.
func (r *TransactionRepository) FindLatestByRound(ctx context.Context, tx usecase.Transaction, accountID, roundID, gameCode string, kinds []domain.TransactionKind) (*domain.TransactionRecord, error) {
	return recordOrNotFound(txQueries(tx).FindLatestByRound(ctx, generated.FindLatestByRoundParams{
		AccountID: accountID,
		RoundID:   roundID,
		GameCode:  gameCode,
		Kinds:     kindStrings(kinds),
	}))
}

// FindLatestForRollback locks the newest reversible record of a bet.
func (r *TransactionRepository) FindLatestForRollback(ctx context.Context, tx usecase.Transaction, accountID, betID, roundID, gameCode string) (*domain.TransactionRecord, error) {
	return recordOrNotFound(txQueries(tx).FindLatestForRollback(ctx, generated.FindLatestForRollbackParams{
		AccountID: accountID,
		BetID:     betID,
		RoundID:   roundID,
		GameCode:  gameCode,
	}))
}

// MarkRolledBack moves a completed record to rolled_back.
func (r *TransactionRepository) MarkRolledBack(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	rows, err := txQueries(tx).MarkTransactionRolledBack(ctx, generated.MarkTransactionRolledBackParams{
		ID:        id,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrAlreadyRolledBack
	}

	return nil
}

func recordOrNotFound(row generated.TransactionRecord, err error) (*domain.TransactionRecord, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransactionRecord(row)
}

func kindStrings(kinds []domain.TransactionKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

func rowToTransactionRecord(row generated.TransactionRecord) (*domain.TransactionRecord, error) {
	var metadata map[string]any
	if row.Metadata != nil {
		if err := json.Unmarshal(row.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("decode metadata of transaction record %s: %w", row.ID, err)
		}
	}

	var moneyLogID *string
	if row.MoneyLogID.Valid {
		id := row.MoneyLogID.String
		moneyLogID = &id
	}

	return &domain.TransactionRecord{
		ID:                    row.ID,
		ExternalTransactionID: row.ExternalTransactionID,
		AccountID:             row.AccountID,
		Kind:                  domain.TransactionKind(row.Kind),
		Amount:                numericToDecimal(row.Amount),
		Status:                domain.TransactionStatus(row.Status),
		TraceID:               row.TraceID,
		BetID:                 row.BetID,
		TransactionRef:        row.TransactionRef,
		GameCode:              row.GameCode,
		RoundID:               row.RoundID,
		MoneyLogID:            moneyLogID,
		Metadata:              metadata,
		CreatedAt:             row.CreatedAt.Time,
		UpdatedAt:             row.UpdatedAt.Time,
	}, nil
}
