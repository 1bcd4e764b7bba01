package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
)

// BetInput represents input for placing a bet.
type BetInput struct {
	Envelope
	TransactionID         string
	BetID                 string
	ExternalTransactionID string
	GameCode              string
	RoundID               string
	Amount                decimal.Decimal
	Timestamp             int64
}

// Bet debits the bet amount from the player.
func (uc *WalletUseCase) Bet(ctx context.Context, input BetInput) (*BalanceResult, error) {
	amount := domain.MoneyFloor(input.Amount)

	return uc.execute(ctx, mutation{
		operation:  "bet",
		kind:       domain.KindBet,
		externalID: input.ExternalTransactionID,
		env:        input.Envelope,
		checkToken: true,
		validate: func() error {
			return domain.ValidatePositiveAmount(amount)
		},
		plan: func(_ context.Context, _ Transaction, account *domain.Account) (*change, error) {
			if err := account.Covers(amount); err != nil {
				return nil, fmt.Errorf("%w: balance %s, bet %s", err, domain.FormatMoney(account.Balance), domain.FormatMoney(amount))
			}

			return &change{
				delta:       amount.Neg(),
				operate:     domain.OperateBet,
				description: fmt.Sprintf("bet %s on %s round %s", domain.FormatMoney(amount), input.GameCode, input.RoundID),
				record: &domain.TransactionRecord{
					BetID:          input.BetID,
					TransactionRef: input.TransactionID,
					GameCode:       input.GameCode,
					RoundID:        input.RoundID,
					Metadata: map[string]any{
						"amount":    amount.String(),
						"timestamp": input.Timestamp,
					},
				},
			}, nil
		},
	})
}

// BetCreditInput represents input for crediting a bet outcome or refund.
type BetCreditInput struct {
	Envelope
	TransactionID         string
	BetID                 string
	ExternalTransactionID string
	RoundID               string
	GameCode              string
	Amount                decimal.Decimal
	BetAmount             decimal.Decimal
	WinAmount             decimal.Decimal
	EffectiveTurnover     decimal.Decimal
	WinLoss               decimal.Decimal
	BetTime               int64
	Timestamp             int64
	IsRefund              bool
}

// BetCredit credits amount to the player. A refund is logged separately.
func (uc *WalletUseCase) BetCredit(ctx context.Context, input BetCreditInput) (*BalanceResult, error) {
	amount := domain.MoneyFloor(input.Amount)
	externalID := input.ExternalTransactionID
	if externalID == "" {
		externalID = input.TransactionID
	}

	return uc.execute(ctx, mutation{
		operation:  "bet_credit",
		kind:       domain.KindBetCredit,
		externalID: externalID,
		env:        input.Envelope,
		checkToken: true,
		validate: func() error {
			if amount.IsNegative() {
				return fmt.Errorf("%w: credit amount %s is negative", domain.ErrInvalidAmount, amount)
			}
			return domain.ValidateAmountLimit(amount)
		},
		plan: func(_ context.Context, _ Transaction, _ *domain.Account) (*change, error) {
			operate := domain.OperateBetCredit
			label := "bet credit"
			if input.IsRefund {
				operate = domain.OperateBetCreditRefund
				label = "bet refund"
			}

			return &change{
				delta:       amount,
				operate:     operate,
				description: fmt.Sprintf("%s %s on %s round %s", label, domain.FormatMoney(amount), input.GameCode, input.RoundID),
				record: &domain.TransactionRecord{
					BetID:          input.BetID,
					TransactionRef: input.TransactionID,
					GameCode:       input.GameCode,
					RoundID:        input.RoundID,
					Metadata: map[string]any{
						"is_refund":          input.IsRefund,
						"bet_amount":         input.BetAmount.String(),
						"win_amount":         input.WinAmount.String(),
						"effective_turnover": input.EffectiveTurnover.String(),
						"win_loss":           input.WinLoss.String(),
						"bet_time":           input.BetTime,
						"timestamp":          input.Timestamp,
					},
				},
			}, nil
		},
	})
}

// BetDebitInput represents input for a vendor-initiated debit.
type BetDebitInput struct {
	Envelope
	TransactionID         string
	BetID                 string
	ExternalTransactionID string
	RoundID               string
	GameCode              string
	Amount                decimal.Decimal
	Timestamp             int64
	// TakeAll debits the whole balance and ignores Amount.
	TakeAll bool
}

// BetDebit debits amount, or the entire balance when TakeAll is set.
func (uc *WalletUseCase) BetDebit(ctx context.Context, input BetDebitInput) (*BalanceResult, error) {
	amount := domain.MoneyFloor(input.Amount)
	externalID := input.ExternalTransactionID
	if externalID == "" {
		externalID = input.TransactionID
	}

	return uc.execute(ctx, mutation{
		operation:  "bet_debit",
		kind:       domain.KindBetDebit,
		externalID: externalID,
		env:        input.Envelope,
		validate: func() error {
			if input.TakeAll {
				return nil
			}
			return domain.ValidatePositiveAmount(amount)
		},
		plan: func(_ context.Context, _ Transaction, account *domain.Account) (*change, error) {
			debit := amount
			if input.TakeAll {
				debit = domain.MoneyFloor(account.Balance)
			} else if err := account.Covers(debit); err != nil {
				return nil, fmt.Errorf("%w: balance %s, debit %s", err, domain.FormatMoney(account.Balance), domain.FormatMoney(debit))
			}

			return &change{
				delta:       debit.Neg(),
				operate:     domain.OperateBetDebit,
				description: fmt.Sprintf("bet debit %s on %s round %s", domain.FormatMoney(debit), input.GameCode, input.RoundID),
				record: &domain.TransactionRecord{
					BetID:          input.BetID,
					TransactionRef: input.TransactionID,
					GameCode:       input.GameCode,
					RoundID:        input.RoundID,
					Metadata: map[string]any{
						"take_all":  input.TakeAll,
						"timestamp": input.Timestamp,
					},
				},
			}, nil
		},
	})
}
