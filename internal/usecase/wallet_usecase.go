package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
)

// WalletUseCase applies vendor wallet operations to a single player balance.
type WalletUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	txRepo          TransactionRepository
	moneyLogRepo    MoneyLogRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
	retrier         Retrier
	currencies      CurrencyPolicy
	tokens          TokenPolicy
	observer        Observer
	now             Clock
	logger          zerolog.Logger
	balanceCurrency string
	txTimeout       time.Duration
}

// WalletConfig holds the dependencies of WalletUseCase.
type WalletConfig struct {
	TxManager    TransactionManager
	AccountRepo  AccountRepository
	TxRepo       TransactionRepository
	MoneyLogRepo MoneyLogRepository
	OutboxRepo   OutboxRepository
	IDGen        IDGenerator
	Retrier      Retrier        // optional; operations run once when nil
	Currencies   CurrencyPolicy // optional; defaults to CNY only
	Tokens       TokenPolicy    // optional; defaults to AllowAllTokenPolicy
	Observer     Observer       // optional
	Clock        Clock          // optional
	Logger       zerolog.Logger
	// BalanceCurrency is the only currency accepted by Balance.
	BalanceCurrency    string
	TransactionTimeout time.Duration
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(cfg WalletConfig) *WalletUseCase {
	if cfg.Retrier == nil {
		cfg.Retrier = runOnce{}
	}
	if cfg.Currencies == nil {
		cfg.Currencies = NewStaticCurrencyPolicy([]string{"CNY"})
	}
	if cfg.Tokens == nil {
		cfg.Tokens = AllowAllTokenPolicy{}
	}
	if cfg.Observer == nil {
		cfg.Observer = NopObserver{}
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.BalanceCurrency == "" {
		cfg.BalanceCurrency = "CNY"
	}
	if cfg.TransactionTimeout == 0 {
		cfg.TransactionTimeout = DefaultTransactionTimeout
	}

	return &WalletUseCase{
		txManager:       cfg.TxManager,
		accountRepo:     cfg.AccountRepo,
		txRepo:          cfg.TxRepo,
		moneyLogRepo:    cfg.MoneyLogRepo,
		outboxRepo:      cfg.OutboxRepo,
		idGen:           cfg.IDGen,
		retrier:         cfg.Retrier,
		currencies:      cfg.Currencies,
		tokens:          cfg.Tokens,
		observer:        cfg.Observer,
		now:             cfg.Clock,
		logger:          cfg.Logger,
		balanceCurrency: strings.ToUpper(cfg.BalanceCurrency),
		txTimeout:       cfg.TransactionTimeout,
	}
}

// Envelope carries the fields shared by every signed request.
type Envelope struct {
	TraceID  string
	Username string
	Currency string
	Token    string
}

// BalanceResult is the outcome returned to the vendor.
type BalanceResult struct {
	Timestamp time.Time
	Username  string
	Balance   decimal.Decimal
	Replayed  bool
}

// BalanceInput represents input for a balance query.
type BalanceInput struct {
	Envelope
}

// Balance returns the current balance of a player.
func (uc *WalletUseCase) Balance(ctx context.Context, input BalanceInput) (*BalanceResult, error) {
	start := uc.now()

	if !strings.EqualFold(strings.TrimSpace(input.Currency), uc.balanceCurrency) {
		uc.observer.OperationCompleted("balance", outcomeOf(domain.ErrWrongCurrency), time.Since(start))
		return nil, fmt.Errorf("%w: %s", domain.ErrWrongCurrency, input.Currency)
	}
	if !uc.tokens.Valid(ctx, input.Username, input.Token) {
		uc.observer.OperationCompleted("balance", outcomeOf(domain.ErrInvalidToken), time.Since(start))
		return nil, domain.ErrInvalidToken
	}

	result, err := uc.currentBalance(ctx, input.Username, false)
	uc.observer.OperationCompleted("balance", outcomeOf(err), time.Since(start))

	return result, err
}

// change is the planned effect of one single-account operation.
type change struct {
	record      *domain.TransactionRecord
	afterWrite  func(ctx context.Context, tx Transaction, record *domain.TransactionRecord, newBalance decimal.Decimal) error
	event       func(record *domain.TransactionRecord, before, after decimal.Decimal) *domain.OutboxEvent
	description string
	delta       decimal.Decimal
	operate     domain.OperateType
}

// mutation describes a single-account operation guarded by an idempotency key.
type mutation struct {
	validate   func() error
	plan       func(ctx context.Context, tx Transaction, account *domain.Account) (*change, error)
	operation  string
	externalID string
	env        Envelope
	kind       domain.TransactionKind
	checkToken bool
}

// execute runs the shared flow:
// policies, idempotency, account check, plan, CAS, money log, record, outbox.
func (uc *WalletUseCase) execute(ctx context.Context, m mutation) (result *BalanceResult, err error) {
	start := uc.now()
	defer func() {
		uc.observer.OperationCompleted(m.operation, outcomeOf(err), time.Since(start))
	}()

	if m.validate != nil {
		if err = m.validate(); err != nil {
			return nil, err
		}
	}
	if !uc.currencies.Supports(m.env.Currency) {
		return nil, fmt.Errorf("%w: %s", domain.ErrWrongCurrency, m.env.Currency)
	}
	if m.checkToken && !uc.tokens.Valid(ctx, m.env.Username, m.env.Token) {
		return nil, domain.ErrInvalidToken
	}

	err = uc.retrier.Retry(ctx, func() error {
		r, runErr := uc.attempt(ctx, m)
		if runErr != nil {
			return runErr
		}
		result = r
		return nil
	})

	if errors.Is(err, domain.ErrDuplicateTransaction) {
		// A concurrent twin committed first.
		uc.observer.IdempotentReplay(m.operation)
		return uc.currentBalance(ctx, m.env.Username, true)
	}
	if errors.Is(err, domain.ErrConcurrentModification) {
		uc.observer.ConcurrencyConflict(m.operation)
		uc.logger.Warn().
			Str("operation", m.operation).
			Str("username", m.env.Username).
			Str("external_transaction_id", m.externalID).
			Msg("balance changed concurrently, operation aborted")
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *WalletUseCase) attempt(ctx context.Context, m mutation) (*BalanceResult, error) {
	_, err := uc.txRepo.FindByExternalID(ctx, m.externalID, m.kind)
	switch {
	case err == nil:
		uc.observer.IdempotentReplay(m.operation)
		uc.logger.Info().
			Str("operation", m.operation).
			Str("external_transaction_id", m.externalID).
			Msg("duplicate request, returning current balance")
		return uc.currentBalance(ctx, m.env.Username, true)
	case !errors.Is(err, domain.ErrTransactionNotFound):
		return nil, err
	}

	account, err := uc.accountRepo.GetByName(ctx, m.env.Username)
	if err != nil {
		return nil, err
	}
	if err := account.CheckActive(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.txTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ch, err := m.plan(ctx, tx, account)
	if err != nil {
		return nil, err
	}

	delta := domain.MoneyFloor(ch.delta)
	before := domain.MoneyFloor(account.Balance)
	after, err := account.ApplyDelta(delta)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()

	record := ch.record
	record.ID = uc.idGen.Generate()
	record.ExternalTransactionID = m.externalID
	record.AccountID = account.ID
	record.Kind = m.kind
	record.TraceID = m.env.TraceID
	record.Amount = delta
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.Status == "" {
		record.Status = domain.StatusCompleted
	}

	if !delta.IsZero() {
		if err := uc.accountRepo.CompareAndSwapBalance(ctx, tx, account.ID, account.Balance, after, now); err != nil {
			return nil, err
		}

		entry := domain.NewMoneyLogEntry(uc.idGen.Generate(), account.ID, before, delta, ch.operate, record.GameCode, ch.description, now)
		entry.Metadata = map[string]any{
			"external_transaction_id": m.externalID,
			"transaction_id":          record.TransactionRef,
			"bet_id":                  record.BetID,
			"round_id":                record.RoundID,
			"kind":                    string(m.kind),
		}
		if err := uc.moneyLogRepo.Create(ctx, tx, entry); err != nil {
			return nil, err
		}
		record.MoneyLogID = &entry.ID
	}

	if err := uc.txRepo.Create(ctx, tx, record); err != nil {
		return nil, err
	}

	if ch.afterWrite != nil {
		if err := ch.afterWrite(ctx, tx, record, after); err != nil {
			return nil, err
		}
	}

	event := uc.appliedEvent(account, record, before, after)
	if ch.event != nil {
		event = ch.event(record, before, after)
	}
	event.ID = uc.idGen.Generate()
	event.CreatedAt = now
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("operation", m.operation).
		Str("trace_id", m.env.TraceID).
		Str("username", account.Name).
		Str("external_transaction_id", m.externalID).
		Str("delta", delta.String()).
		Str("balance_before", before.String()).
		Str("balance_after", after.String()).
		Msg("wallet operation applied")

	return &BalanceResult{
		Username:  account.Name,
		Balance:   after,
		Timestamp: uc.now(),
	}, nil
}

func (uc *WalletUseCase) currentBalance(ctx context.Context, username string, replayed bool) (*BalanceResult, error) {
	account, err := uc.accountRepo.GetByName(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := account.CheckActive(); err != nil {
		return nil, err
	}

	return &BalanceResult{
		Username:  account.Name,
		Balance:   domain.MoneyFloor(account.Balance),
		Timestamp: uc.now(),
		Replayed:  replayed,
	}, nil
}

func (uc *WalletUseCase) appliedEvent(account *domain.Account, record *domain.TransactionRecord, before, after decimal.Decimal) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		AggregateID:   account.ID,
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeTransactionApplied,
		Payload: domain.TransactionAppliedEvent{
			TransactionID:         record.ID,
			ExternalTransactionID: record.ExternalTransactionID,
			Username:              account.Name,
			Kind:                  string(record.Kind),
			Amount:                record.Amount.String(),
			BalanceBefore:         before.String(),
			BalanceAfter:          after.String(),
			GameCode:              record.GameCode,
			RoundID:               record.RoundID,
		}.ToMap(),
	}
}

// outcomeOf maps an error to a metrics label.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrAccountDisabled):
		return "account"
	case errors.Is(err, domain.ErrTransactionNotFound), errors.Is(err, domain.ErrAlreadyRolledBack):
		return "not_found"
	case errors.Is(err, domain.ErrConcurrentModification):
		return "conflict"
	case errors.Is(err, domain.ErrWrongCurrency), errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrAmountTooLarge):
		return "rejected"
	default:
		return "error"
	}
}

type runOnce struct{}

func (runOnce) Retry(_ context.Context, operation func() error) error {
	return operation()
}
