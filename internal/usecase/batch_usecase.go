package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
)

// BatchUseCase applies basic-auth game transactions under a row lock.
type BatchUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	txRepo       TransactionRepository
	moneyLogRepo MoneyLogRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
	retrier      Retrier
	observer     Observer
	now          Clock
	traceID      func() string
	logger       zerolog.Logger
	txTimeout    time.Duration
}

// BatchConfig holds the dependencies of BatchUseCase.
type BatchConfig struct {
	TxManager          TransactionManager
	AccountRepo        AccountRepository
	TxRepo             TransactionRepository
	MoneyLogRepo       MoneyLogRepository
	OutboxRepo         OutboxRepository
	IDGen              IDGenerator
	Retrier            Retrier
	Observer           Observer
	Clock              Clock
	Logger             zerolog.Logger
	TransactionTimeout time.Duration
}

// NewBatchUseCase creates a new BatchUseCase.
func NewBatchUseCase(cfg BatchConfig) *BatchUseCase {
	if cfg.Retrier == nil {
		cfg.Retrier = runOnce{}
	}
	if cfg.Observer == nil {
		cfg.Observer = NopObserver{}
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.TransactionTimeout == 0 {
		cfg.TransactionTimeout = DefaultTransactionTimeout
	}

	return &BatchUseCase{
		txManager:    cfg.TxManager,
		accountRepo:  cfg.AccountRepo,
		txRepo:       cfg.TxRepo,
		moneyLogRepo: cfg.MoneyLogRepo,
		outboxRepo:   cfg.OutboxRepo,
		idGen:        cfg.IDGen,
		retrier:      cfg.Retrier,
		observer:     cfg.Observer,
		now:          cfg.Clock,
		traceID:      uuid.NewString,
		logger:       cfg.Logger,
		txTimeout:    cfg.TransactionTimeout,
	}
}

// BatchInput represents a batch of game transactions for one player.
type BatchInput struct {
	UserCode string
	Items    []domain.BatchItem
}

// BatchResult is the outcome of an applied batch.
type BatchResult struct {
	Username string
	Balance  decimal.Decimal
	Applied  int
}

// Transaction applies a single game transaction. It is a batch of one.
func (uc *BatchUseCase) Transaction(ctx context.Context, item domain.BatchItem) (*BatchResult, error) {
	return uc.run(ctx, "transaction", BatchInput{
		UserCode: strings.TrimSpace(item.UserCode),
		Items:    []domain.BatchItem{item},
	})
}

// Execute applies all items or none of them.
func (uc *BatchUseCase) Execute(ctx context.Context, input BatchInput) (*BatchResult, error) {
	return uc.run(ctx, "batch", input)
}

func (uc *BatchUseCase) run(ctx context.Context, operation string, input BatchInput) (result *BatchResult, err error) {
	start := uc.now()
	defer func() {
		uc.observer.OperationCompleted(operation, outcomeOf(err), time.Since(start))
	}()

	if err = validateBatch(input); err != nil {
		return nil, err
	}

	err = uc.retrier.Retry(ctx, func() error {
		r, runErr := uc.apply(ctx, input)
		if runErr != nil {
			return runErr
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// validateBatch checks every item and rejects transaction codes repeated
// inside the batch.
func validateBatch(input BatchInput) error {
	if strings.TrimSpace(input.UserCode) == "" {
		return fmt.Errorf("%w: missing userCode", domain.ErrInvalidRequest)
	}
	if len(input.Items) == 0 {
		return fmt.Errorf("%w: no transactions", domain.ErrInvalidRequest)
	}
	if len(input.Items) > MaxBatchItems {
		return fmt.Errorf("%w: at most %d transactions per batch", domain.ErrInvalidRequest, MaxBatchItems)
	}

	seen := make(map[string]struct{}, len(input.Items))
	for idx, item := range input.Items {
		if err := item.Validate(strings.TrimSpace(input.UserCode)); err != nil {
			return fmt.Errorf("transaction %d: %w", idx, err)
		}
		if err := domain.ValidateAmountLimit(item.Amount); err != nil {
			return fmt.Errorf("%w: transaction %d: %v", domain.ErrInvalidRequest, idx, err)
		}
		if _, dup := seen[item.TransactionCode]; dup {
			return fmt.Errorf("%w: %s repeated in batch", domain.ErrDuplicateTransaction, item.TransactionCode)
		}
		seen[item.TransactionCode] = struct{}{}
	}

	return nil
}

func (uc *BatchUseCase) apply(ctx context.Context, input BatchInput) (*BatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.txTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	for _, item := range input.Items {
		exists, err := uc.txRepo.ExistsByExternalID(ctx, tx, item.TransactionCode)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateTransaction, item.TransactionCode)
		}
	}

	account, err := uc.accountRepo.GetByNameForUpdate(ctx, tx, strings.TrimSpace(input.UserCode))
	if err != nil {
		return nil, err
	}
	if err := account.CheckActive(); err != nil {
		return nil, err
	}

	plan, err := domain.PlanBatch(account.Balance, input.Items)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	if err := uc.accountRepo.CompareAndSwapBalance(ctx, tx, account.ID, account.Balance, plan.FinalBalance, now); err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(plan.Steps))
	for _, step := range plan.Steps {
		if err := uc.writeStep(ctx, tx, account, step, now); err != nil {
			return nil, err
		}
		codes = append(codes, step.Item.TransactionCode)
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   account.ID,
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeBatchApplied,
		Payload: domain.BatchAppliedEvent{
			Username:      account.Name,
			Transactions:  codes,
			Total:         plan.Total.String(),
			BalanceBefore: domain.MoneyFloor(account.Balance).String(),
			BalanceAfter:  plan.FinalBalance.String(),
		}.ToMap(),
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("username", account.Name).
		Int("items", len(plan.Steps)).
		Str("total", plan.Total.String()).
		Str("balance_after", plan.FinalBalance.String()).
		Msg("game transactions applied")

	return &BatchResult{
		Username: account.Name,
		Balance:  plan.FinalBalance,
		Applied:  len(plan.Steps),
	}, nil
}

// writeStep records one item: a money log, always, then its record.
func (uc *BatchUseCase) writeStep(ctx context.Context, tx Transaction, account *domain.Account, step domain.BatchStep, now time.Time) error {
	item := step.Item
	delta := step.After.Sub(step.Before)

	entry := domain.NewMoneyLogEntry(uc.idGen.Generate(), account.ID, step.Before, delta, domain.OperateGameTransaction, item.GameCode, item.Description(), now)
	entry.Metadata = map[string]any{
		"transaction_code": item.TransactionCode,
		"history_id":       item.HistoryID,
		"round_id":         item.RoundID,
		"vendor_code":      item.VendorCode,
		"batch_index":      step.Index,
	}
	if err := uc.moneyLogRepo.Create(ctx, tx, entry); err != nil {
		return err
	}

	record := &domain.TransactionRecord{
		ID:                    uc.idGen.Generate(),
		ExternalTransactionID: item.TransactionCode,
		AccountID:             account.ID,
		TraceID:               uc.traceID(),
		BetID:                 item.HistoryID,
		TransactionRef:        item.TransactionCode,
		GameCode:              item.GameCode,
		RoundID:               item.RoundID,
		Kind:                  item.Kind(),
		Status:                item.Status(),
		Amount:                delta,
		MoneyLogID:            &entry.ID,
		Metadata: map[string]any{
			"vendor_code": item.VendorCode,
			"game_type":   item.GameType,
			"is_finished": item.IsFinished,
			"is_canceled": item.IsCanceled,
			"created_at":  item.CreatedAt,
			"detail":      item.Detail,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	return uc.txRepo.Create(ctx, tx, record)
}
