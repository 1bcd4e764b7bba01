package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
)

// BetResultInput represents input for settling a bet.
type BetResultInput struct {
	Envelope
	TransactionID         string
	BetID                 string
	ExternalTransactionID string
	RoundID               string
	GameCode              string
	ResultType            string
	BetAmount             decimal.Decimal
	WinAmount             decimal.Decimal
	JackpotAmount         decimal.Decimal
	EffectiveTurnover     decimal.Decimal
	BetTime               int64
	IsFreespin            bool
	IsEndRound            bool
}

// BetResult settles a bet according to its result type.
func (uc *WalletUseCase) BetResult(ctx context.Context, input BetResultInput) (*BalanceResult, error) {
	resultType, _ := domain.ParseResultType(input.ResultType)
	betAmount := domain.MoneyFloor(input.BetAmount)
	winAmount := domain.MoneyFloor(input.WinAmount)
	jackpotAmount := domain.MoneyFloor(input.JackpotAmount)

	return uc.execute(ctx, mutation{
		operation:  "bet_result",
		kind:       domain.KindBetResult,
		externalID: input.ExternalTransactionID,
		env:        input.Envelope,
		checkToken: true,
		validate: func() error {
			for _, amount := range []decimal.Decimal{betAmount, winAmount, jackpotAmount} {
				if amount.IsNegative() {
					return fmt.Errorf("%w: settlement amounts must not be negative", domain.ErrInvalidAmount)
				}
				if err := domain.ValidateAmountLimit(amount); err != nil {
					return err
				}
			}
			return nil
		},
		plan: func(ctx context.Context, tx Transaction, account *domain.Account) (*change, error) {
			if resultType == domain.ResultEnd {
				if _, err := uc.txRepo.FindLatestByBet(ctx, tx, account.ID, input.BetID, input.GameCode,
					[]domain.TransactionKind{domain.KindBet, domain.KindBetResult}); err != nil {
					return nil, fmt.Errorf("END for bet %s: %w", input.BetID, err)
				}
			}

			debited := false
			if resultType == domain.ResultBetWin || resultType == domain.ResultBetLose {
				_, err := uc.txRepo.FindDebitedBet(ctx, tx, account.ID, input.BetID, input.RoundID, input.GameCode, betAmount)
				switch {
				case err == nil:
					debited = true
				case !errors.Is(err, domain.ErrTransactionNotFound):
					return nil, err
				}
			}

			settlement := domain.Settle(domain.SettlementInput{
				ResultType:     resultType,
				BetAmount:      betAmount,
				WinAmount:      winAmount,
				JackpotAmount:  jackpotAmount,
				AlreadyDebited: debited,
			})
			if settlement.Anomaly {
				uc.observer.SettlementAnomaly(string(resultType))
				uc.logger.Warn().
					Str("result_type", input.ResultType).
					Str("bet_id", input.BetID).
					Str("external_transaction_id", input.ExternalTransactionID).
					Msg("unrecognized result type, recording without balance change")
			}
			if err := settlement.Check(account.Balance); err != nil {
				return nil, fmt.Errorf("%w: %s", err, settlement.Description)
			}

			return &change{
				delta:       settlement.Delta,
				operate:     domain.OperateSettlement,
				description: settlement.Description,
				record: &domain.TransactionRecord{
					BetID:          input.BetID,
					TransactionRef: input.TransactionID,
					GameCode:       input.GameCode,
					RoundID:        input.RoundID,
					Metadata: map[string]any{
						"result_type":        string(resultType),
						"already_debited":    debited,
						"bet_amount":         betAmount.String(),
						"win_amount":         winAmount.String(),
						"jackpot_amount":     jackpotAmount.String(),
						"effective_turnover": input.EffectiveTurnover.String(),
						"is_freespin":        input.IsFreespin,
						"is_end_round":       input.IsEndRound,
						"bet_time":           input.BetTime,
					},
				},
			}, nil
		},
	})
}

// AdjustmentInput represents input for a round adjustment.
type AdjustmentInput struct {
	Envelope
	TransactionID         string
	ExternalTransactionID string
	RoundID               string
	GameCode              string
	Amount                decimal.Decimal
	Timestamp             int64
}

// Adjustment applies a signed correction to an existing round.
func (uc *WalletUseCase) Adjustment(ctx context.Context, input AdjustmentInput) (*BalanceResult, error) {
	amount := domain.MoneyFloor(input.Amount)

	return uc.execute(ctx, mutation{
		operation:  "adjustment",
		kind:       domain.KindAdjustment,
		externalID: input.ExternalTransactionID,
		env:        input.Envelope,
		validate: func() error {
			return domain.ValidateAmountLimit(amount)
		},
		plan: func(ctx context.Context, tx Transaction, account *domain.Account) (*change, error) {
			round, err := uc.txRepo.FindLatestByRound(ctx, tx, account.ID, input.RoundID, input.GameCode, domain.RoundKinds)
			if err != nil {
				return nil, fmt.Errorf("adjustment for round %s: %w", input.RoundID, err)
			}

			if amount.IsNegative() {
				if err := account.Covers(amount.Abs()); err != nil {
					return nil, fmt.Errorf("%w: balance %s, adjustment %s", err, domain.FormatMoney(account.Balance), domain.FormatMoney(amount))
				}
			}

			return &change{
				delta:       amount,
				operate:     domain.OperateAdjustment,
				description: fmt.Sprintf("adjustment %s on %s round %s", domain.FormatMoney(amount), input.GameCode, input.RoundID),
				record: &domain.TransactionRecord{
					BetID:          round.BetID,
					TransactionRef: input.TransactionID,
					GameCode:       input.GameCode,
					RoundID:        input.RoundID,
					Metadata: map[string]any{
						"round_transaction_id": round.ID,
						"timestamp":            input.Timestamp,
					},
				},
			}, nil
		},
	})
}
