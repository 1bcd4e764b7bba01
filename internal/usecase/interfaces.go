package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
)

// AccountRepository defines data access for player accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByName(ctx context.Context, name string) (*domain.Account, error)
	GetByNameForUpdate(ctx context.Context, tx Transaction, name string) (*domain.Account, error)
	// CompareAndSwapBalance writes next only if the stored balance still equals
	// expected; otherwise it returns domain.ErrConcurrentModification.
	CompareAndSwapBalance(ctx context.Context, tx Transaction, id string, expected, next decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// TransactionRepository defines data access for transaction records.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, record *domain.TransactionRecord) error
	// FindByExternalID returns the record for externalID and kind whatever
	// its status, matching the unique key that guards Create.
	FindByExternalID(ctx context.Context, externalID string, kind domain.TransactionKind) (*domain.TransactionRecord, error)
	ExistsByExternalID(ctx context.Context, tx Transaction, externalID string) (bool, error)
	// FindDebitedBet is the exact-match lookup for a prior bet debit of amount.
	FindDebitedBet(ctx context.Context, tx Transaction, accountID, betID, roundID, gameCode string, amount decimal.Decimal) (*domain.TransactionRecord, error)
	FindLatestByBet(ctx context.Context, tx Transaction, accountID, betID, gameCode string, kinds []domain.TransactionKind) (*domain.TransactionRecord, error)
	FindLatestByRound(ctx context.Context, tx Transaction, accountID, roundID, gameCode string, kinds []domain.TransactionKind) (*domain.TransactionRecord, error)
	FindLatestForRollback(ctx context.Context, tx Transaction, accountID, betID, roundID, gameCode string) (*domain.TransactionRecord, error)
	// MarkRolledBack moves a completed record to rolled_back. It returns
	// domain.ErrAlreadyRolledBack when the record is no longer completed.
	MarkRolledBack(ctx context.Context, tx Transaction, id string, updatedAt time.Time) error
}

// MoneyLogRepository defines data access for money log entries.
type MoneyLogRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.MoneyLogEntry) error
	GetByID(ctx context.Context, tx Transaction, id string) (*domain.MoneyLogEntry, error)
	SumByAccount(ctx context.Context, accountID string) (sum decimal.Decimal, count int64, err error)
}

// PartnerRepository resolves vendor partners.
type PartnerRepository interface {
	// GetByHost matches host against the wallet host first and the
	// vendor's API host second.
	GetByHost(ctx context.Context, host string) (*domain.Partner, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient database errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// CurrencyPolicy decides whether a request currency is accepted.
type CurrencyPolicy interface {
	Supports(currency string) bool
}

// TokenPolicy decides whether a vendor session token is valid for a player.
type TokenPolicy interface {
	Valid(ctx context.Context, username, token string) bool
}

// Clock returns the current time.
type Clock func() time.Time

// Observer receives wallet operation telemetry.
type Observer interface {
	OperationCompleted(operation, outcome string, elapsed time.Duration)
	IdempotentReplay(operation string)
	ConcurrencyConflict(operation string)
	SettlementAnomaly(resultType string)
}

// NopObserver discards telemetry.
type NopObserver struct{}

func (NopObserver) OperationCompleted(string, string, time.Duration) {}
func (NopObserver) IdempotentReplay(string)                           {}
func (NopObserver) ConcurrencyConflict(string)                        {}
func (NopObserver) SettlementAnomaly(string)                          {}
