package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
)

// AccountUseCase handles player account administration.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(txManager TransactionManager, accountRepo AccountRepository, outboxRepo OutboxRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name           string
	OpeningBalance decimal.Decimal
	Disabled       bool
}

// CreateAccount creates a player account with an opening balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	opening := domain.MoneyFloor(input.OpeningBalance)
	if opening.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance must not be negative", domain.ErrInvalidAmount)
	}
	if err := domain.ValidateAmountLimit(opening); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	status := domain.AccountEnabled
	if input.Disabled {
		status = domain.AccountDisabled
	}

	account := &domain.Account{
		ID:             uc.idGen.Generate(),
		Name:           input.Name,
		Balance:        opening,
		OpeningBalance: opening,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   account.ID,
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeAccountCreated,
		Payload: domain.AccountCreatedEvent{
			AccountID:      account.ID,
			Name:           account.Name,
			OpeningBalance: opening.String(),
		}.ToMap(),
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by name.
func (uc *AccountUseCase) GetAccount(ctx context.Context, name string) (*domain.Account, error) {
	return uc.accountRepo.GetByName(ctx, name)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	if input.Offset < 0 {
		input.Offset = 0
	}
	return uc.accountRepo.List(ctx, input.Limit, input.Offset)
}
