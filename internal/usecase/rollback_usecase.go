package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
)

// RollbackInput represents input for reversing a prior operation.
type RollbackInput struct {
	Envelope
	TransactionID         string
	BetID                 string
	ExternalTransactionID string
	RoundID               string
	GameCode              string
	Timestamp             int64
}

// Rollback reverses the exact balance effect of the latest completed bet,
// bet_result, bet_credit or bet_debit for the bet, round and game.
func (uc *WalletUseCase) Rollback(ctx context.Context, input RollbackInput) (*BalanceResult, error) {
	return uc.execute(ctx, mutation{
		operation:  "rollback",
		kind:       domain.KindRollback,
		externalID: input.ExternalTransactionID,
		env:        input.Envelope,
		plan: func(ctx context.Context, tx Transaction, account *domain.Account) (*change, error) {
			original, entry, err := uc.resolveRollbackTarget(ctx, tx, account.ID, input)
			if err != nil {
				return nil, err
			}

			inverse := domain.InverseDelta(entry)

			return &change{
				delta:       inverse,
				operate:     domain.OperateRollback,
				description: domain.RollbackDescription(original, inverse),
				record: &domain.TransactionRecord{
					BetID:          input.BetID,
					TransactionRef: input.TransactionID,
					GameCode:       input.GameCode,
					RoundID:        input.RoundID,
					Metadata: map[string]any{
						"original_transaction_id": original.ID,
						"original_kind":           string(original.Kind),
						"original_money_log_id":   entry.ID,
						"timestamp":               input.Timestamp,
					},
				},
				afterWrite: func(ctx context.Context, tx Transaction, record *domain.TransactionRecord, _ decimal.Decimal) error {
					if err := uc.txRepo.MarkRolledBack(ctx, tx, original.ID, record.UpdatedAt); err != nil {
						return fmt.Errorf("mark %s rolled back: %w", original.ID, err)
					}
					return nil
				},
				event: func(record *domain.TransactionRecord, _, after decimal.Decimal) *domain.OutboxEvent {
					return &domain.OutboxEvent{
						AggregateID:   account.ID,
						AggregateType: domain.AggregateTypeAccount,
						EventType:     domain.EventTypeTransactionRolledBack,
						Payload: domain.TransactionRolledBackEvent{
							RollbackID:            record.ID,
							OriginalTransactionID: original.ID,
							Username:              account.Name,
							Amount:                record.Amount.String(),
							BalanceAfter:          after.String(),
						}.ToMap(),
					}
				},
			}, nil
		},
	})
}

// resolveRollbackTarget loads the record to reverse and its money log.
// Both must exist.
func (uc *WalletUseCase) resolveRollbackTarget(ctx context.Context, tx Transaction, accountID string, input RollbackInput) (*domain.TransactionRecord, *domain.MoneyLogEntry, error) {
	original, err := uc.txRepo.FindLatestForRollback(ctx, tx, accountID, input.BetID, input.RoundID, input.GameCode)
	if err != nil {
		return nil, nil, fmt.Errorf("rollback target for bet %s: %w", input.BetID, err)
	}

	if original.MoneyLogID == nil {
		return nil, nil, fmt.Errorf("%w: %s has no money log", domain.ErrTransactionNotFound, original.ID)
	}

	entry, err := uc.moneyLogRepo.GetByID(ctx, tx, *original.MoneyLogID)
	if errors.Is(err, domain.ErrMoneyLogNotFound) {
		return nil, nil, fmt.Errorf("%w: money log %s missing", domain.ErrTransactionNotFound, *original.MoneyLogID)
	}
	if err != nil {
		return nil, nil, err
	}

	return original, entry, nil
}
