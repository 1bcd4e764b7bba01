package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/gamewallet/internal/domain"
	"github.com/iho/gamewallet/internal/usecase"
	"github.com/iho/gamewallet/internal/usecase/mocks"
)

type walletFixture struct {
	uc        *usecase.WalletUseCase
	accounts  *mocks.MockAccountRepository
	records   *mocks.MockTransactionRepository
	moneyLogs *mocks.MockMoneyLogRepository
	outbox    *mocks.MockOutboxRepository
	txManager *mocks.MockTransactionManager
	observer  *recordingObserver
}

type recordingObserver struct {
	usecase.NopObserver
	replays   int
	conflicts int
	anomalies []string
}

func (o *recordingObserver) IdempotentReplay(string)    { o.replays++ }
func (o *recordingObserver) ConcurrencyConflict(string) { o.conflicts++ }
func (o *recordingObserver) SettlementAnomaly(rt string) {
	o.anomalies = append(o.anomalies, rt)
}

func newWalletFixture(t *testing.T, balance string) *walletFixture {
	t.Helper()

	f := &walletFixture{
		accounts:  mocks.NewMockAccountRepository(),
		records:   mocks.NewMockTransactionRepository(),
		moneyLogs: mocks.NewMockMoneyLogRepository(),
		outbox:    mocks.NewMockOutboxRepository(),
		txManager: mocks.NewMockTransactionManager(),
		observer:  &recordingObserver{},
	}
	f.accounts.Seed(&domain.Account{
		ID:             "acc-1",
		Name:           "player1",
		Balance:        decimal.RequireFromString(balance),
		OpeningBalance: decimal.RequireFromString(balance),
		Status:         domain.AccountEnabled,
	})

	f.uc = usecase.NewWalletUseCase(usecase.WalletConfig{
		TxManager:    f.txManager,
		AccountRepo:  f.accounts,
		TxRepo:       f.records,
		MoneyLogRepo: f.moneyLogs,
		OutboxRepo:   f.outbox,
		IDGen:        mocks.NewMockIDGenerator(),
		Observer:     f.observer,
		Logger:       zerolog.Nop(),
		Clock:        func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	})

	return f
}

func (f *walletFixture) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	acc, err := f.accounts.GetByName(context.Background(), "player1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return acc.Balance
}

func env() usecase.Envelope {
	return usecase.Envelope{TraceID: "trace-1", Username: "player1", Currency: "CNY", Token: "tok"}
}

func bet(extID, betID, amount string) usecase.BetInput {
	return usecase.BetInput{
		Envelope:              env(),
		TransactionID:         "tx-" + extID,
		BetID:                 betID,
		ExternalTransactionID: extID,
		GameCode:              "slot-1",
		RoundID:               "round-1",
		Amount:                decimal.RequireFromString(amount),
	}
}

func betResult(extID, betID, resultType, betAmount, winAmount, jackpot string) usecase.BetResultInput {
	return usecase.BetResultInput{
		Envelope:              env(),
		TransactionID:         "tx-" + extID,
		BetID:                 betID,
		ExternalTransactionID: extID,
		RoundID:               "round-1",
		GameCode:              "slot-1",
		ResultType:            resultType,
		BetAmount:             decimal.RequireFromString(betAmount),
		WinAmount:             decimal.RequireFromString(winAmount),
		JackpotAmount:         decimal.RequireFromString(jackpot),
	}
}

func rollback(extID, betID string) usecase.RollbackInput {
	return usecase.RollbackInput{
		Envelope:              env(),
		TransactionID:         "tx-" + extID,
		BetID:                 betID,
		ExternalTransactionID: extID,
		RoundID:               "round-1",
		GameCode:              "slot-1",
	}
}

func assertBalance(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected balance %s, got %s", want, got)
	}
}

func TestWalletUseCase_Balance(t *testing.T) {
	f := newWalletFixture(t, "100.00")

	t.Run("returns balance", func(t *testing.T) {
		res, err := f.uc.Balance(context.Background(), usecase.BalanceInput{Envelope: env()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertBalance(t, res.Balance, "100")
		if res.Username != "player1" {
			t.Errorf("expected username player1, got %s", res.Username)
		}
	})

	t.Run("rejects non CNY currency", func(t *testing.T) {
		in := usecase.BalanceInput{Envelope: env()}
		in.Currency = "USD"
		_, err := f.uc.Balance(context.Background(), in)
		if !errors.Is(err, domain.ErrWrongCurrency) {
			t.Errorf("expected ErrWrongCurrency, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		in := usecase.BalanceInput{Envelope: env()}
		in.Username = "nobody"
		_, err := f.uc.Balance(context.Background(), in)
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestWalletUseCase_Bet(t *testing.T) {
	t.Run("debits and replays", func(t *testing.T) {
		f := newWalletFixture(t, "100.00")

		res, err := f.uc.Bet(context.Background(), bet("ext-1", "bet-1", "30.00"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertBalance(t, res.Balance, "70")

		replay, err := f.uc.Bet(context.Background(), bet("ext-1", "bet-1", "30.00"))
		if err != nil {
			t.Fatalf("unexpected error on replay: %v", err)
		}
		assertBalance(t, replay.Balance, "70")
		if !replay.Replayed {
			t.Error("expected replayed result")
		}

		if got := len(f.records.Records()); got != 1 {
			t.Errorf("expected 1 record, got %d", got)
		}
		if got := len(f.moneyLogs.Entries()); got != 1 {
			t.Errorf("expected 1 money log, got %d", got)
		}
		entry := f.moneyLogs.Entries()[0]
		if entry.OperateType != domain.OperateBet || entry.Sign != -1 {
			t.Errorf("unexpected entry %+v", entry)
		}
		if !entry.Consistent() {
			t.Error("money log entry is not consistent")
		}
		if got := len(f.outbox.Events()); got != 1 {
			t.Errorf("expected 1 outbox event, got %d", got)
		}
		if f.observer.replays != 1 {
			t.Errorf("expected 1 replay, got %d", f.observer.replays)
		}
	})

	t.Run("insufficient funds has no side effects", func(t *testing.T) {
		f := newWalletFixture(t, "10.00")

		_, err := f.uc.Bet(context.Background(), bet("ext-1", "bet-1", "10.01"))
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
		assertBalance(t, f.balance(t), "10")
		if len(f.records.Records()) != 0 || len(f.moneyLogs.Entries()) != 0 {
			t.Error("expected no records or money logs")
		}
	})

	t.Run("rejects non positive amount", func(t *testing.T) {
		f := newWalletFixture(t, "10.00")
		_, err := f.uc.Bet(context.Background(), bet("ext-1", "bet-1", "0"))
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("disabled account", func(t *testing.T) {
		f := newWalletFixture(t, "10.00")
		f.accounts.Seed(&domain.Account{ID: "acc-2", Name: "frozen", Balance: decimal.NewFromInt(50)})

		in := bet("ext-1", "bet-1", "5")
		in.Username = "frozen"
		_, err := f.uc.Bet(context.Background(), in)
		if !errors.Is(err, domain.ErrAccountDisabled) {
			t.Errorf("expected ErrAccountDisabled, got %v", err)
		}
	})

	t.Run("unsupported currency", func(t *testing.T) {
		f := newWalletFixture(t, "10.00")
		in := bet("ext-1", "bet-1", "5")
		in.Currency = "XXX"
		_, err := f.uc.Bet(context.Background(), in)
		if !errors.Is(err, domain.ErrWrongCurrency) {
			t.Errorf("expected ErrWrongCurrency, got %v", err)
		}
	})

	t.Run("concurrent balance change aborts", func(t *testing.T) {
		f := newWalletFixture(t, "100.00")
		f.accounts.CompareAndSwapBalanceFunc = func(context.Context, usecase.Transaction, string, decimal.Decimal, decimal.Decimal, time.Time) error {
			return domain.ErrConcurrentModification
		}

		_, err := f.uc.Bet(context.Background(), bet("ext-1", "bet-1", "5"))
		if !errors.Is(err, domain.ErrConcurrentModification) {
			t.Fatalf("expected ErrConcurrentModification, got %v", err)
		}
		if f.observer.conflicts != 1 {
			t.Errorf("expected 1 conflict, got %d", f.observer.conflicts)
		}
		if f.txManager.Committed() != 0 {
			t.Error("expected no commit")
		}
	})

	t.Run("duplicate on insert replays", func(t *testing.T) {
		f := newWalletFixture(t, "100.00")
		f.records.CreateFunc = func(context.Context, usecase.Transaction, *domain.TransactionRecord) error {
			return domain.ErrDuplicateTransaction
		}

		res, err := f.uc.Bet(context.Background(), bet("ext-1", "bet-1", "5"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Replayed {
			t.Error("expected replayed result")
		}
	})
}

func TestWalletUseCase_TokenPolicy(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenPolicy(ctrl)
	tokens.EXPECT().Valid(gomock.Any(), "player1", "tok").Return(false)

	currencies := mocks.NewMockCurrencyPolicy(ctrl)
	currencies.EXPECT().Supports("CNY").Return(true)

	uc := usecase.NewWalletUseCase(usecase.WalletConfig{
		TxManager:    mocks.NewMockTransactionManager(),
		AccountRepo:  mocks.NewMockAccountRepository(),
		TxRepo:       mocks.NewMockTransactionRepository(),
		MoneyLogRepo: mocks.NewMockMoneyLogRepository(),
		OutboxRepo:   mocks.NewMockOutboxRepository(),
		IDGen:        mocks.NewMockIDGenerator(),
		Currencies:   currencies,
		Tokens:       tokens,
		Logger:       zerolog.Nop(),
	})

	_, err := uc.Bet(context.Background(), bet("ext-1", "bet-1", "5"))
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestWalletUseCase_BetResult(t *testing.T) {
	tests := []struct {
		name       string
		balance    string
		priorBet   string
		input      usecase.BetResultInput
		want       string
		wantErr    error
		wantLogs   int
		wantAnomal bool
	}{
		{
			name:     "BET_WIN without prior debit",
			balance:  "70.00",
			input:    betResult("res-1", "bet-9", "BET_WIN", "10", "25", "0"),
			want:     "85",
			wantLogs: 1,
		},
		{
			name:     "BET_WIN with prior debit",
			balance:  "100.00",
			priorBet: "10",
			input:    betResult("res-1", "bet-1", "BET_WIN", "10", "25", "0"),
			want:     "115",
			wantLogs: 2,
		},
		{
			name:     "BET_WIN prior debit of different amount is not matched",
			balance:  "100.00",
			priorBet: "12",
			input:    betResult("res-1", "bet-1", "BET_WIN", "10", "25", "0"),
			want:     "103",
			wantLogs: 2,
		},
		{
			name:     "BET_LOSE without prior debit",
			balance:  "50.00",
			input:    betResult("res-1", "bet-9", "BET_LOSE", "10", "0", "1.5"),
			want:     "41.5",
			wantLogs: 1,
		},
		{
			name:     "BET_LOSE requires bet amount",
			balance:  "5.00",
			input:    betResult("res-1", "bet-9", "BET_LOSE", "10", "0", "20"),
			wantErr:  domain.ErrInsufficientFunds,
			want:     "5",
			wantLogs: 0,
		},
		{
			name:     "WIN credits win and jackpot",
			balance:  "10.00",
			input:    betResult("res-1", "bet-9", "win", "10", "5", "2"),
			want:     "17",
			wantLogs: 1,
		},
		{
			name:     "LOSE credits jackpot only",
			balance:  "10.00",
			input:    betResult("res-1", "bet-9", "LOSE", "10", "5", "0"),
			want:     "10",
			wantLogs: 0,
		},
		{
			name:     "END ignores jackpot",
			balance:  "100.00",
			priorBet: "10",
			input:    betResult("res-1", "bet-1", "END", "10", "0", "99"),
			want:     "90",
			wantLogs: 1,
		},
		{
			name:     "END without bet",
			balance:  "100.00",
			input:    betResult("res-1", "bet-1", "END", "10", "0", "0"),
			wantErr:  domain.ErrTransactionNotFound,
			want:     "100",
			wantLogs: 0,
		},
		{
			name:       "unknown result type is an anomaly",
			balance:    "100.00",
			input:      betResult("res-1", "bet-1", "PUSH", "10", "10", "0"),
			want:       "100",
			wantLogs:   0,
			wantAnomal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWalletFixture(t, tt.balance)
			ctx := context.Background()

			if tt.priorBet != "" {
				if _, err := f.uc.Bet(ctx, bet("bet-ext", "bet-1", tt.priorBet)); err != nil {
					t.Fatalf("prior bet: %v", err)
				}
			}

			res, err := f.uc.BetResult(ctx, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				assertBalance(t, res.Balance, tt.want)
			}

			assertBalance(t, f.balance(t), tt.want)
			if got := len(f.moneyLogs.Entries()); got != tt.wantLogs {
				t.Errorf("expected %d money logs, got %d", tt.wantLogs, got)
			}
			if tt.wantAnomal && len(f.observer.anomalies) != 1 {
				t.Errorf("expected an anomaly, got %v", f.observer.anomalies)
			}
		})
	}
}

func TestWalletUseCase_ZeroDeltaRecordsWithoutMoneyLog(t *testing.T) {
	f := newWalletFixture(t, "10.00")

	res, err := f.uc.BetResult(context.Background(), betResult("res-1", "bet-1", "LOSE", "5", "0", "0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertBalance(t, res.Balance, "10")

	records := f.records.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if !records[0].Amount.IsZero() || records[0].MoneyLogID != nil {
		t.Errorf("expected zero amount without money log, got %+v", records[0])
	}
}

func TestWalletUseCase_BetCredit(t *testing.T) {
	f := newWalletFixture(t, "10.00")
	ctx := context.Background()

	in := usecase.BetCreditInput{
		Envelope:      env(),
		TransactionID: "credit-1",
		BetID:         "bet-1",
		RoundID:       "round-1",
		GameCode:      "slot-1",
		Amount:        decimal.RequireFromString("7.259"),
		IsRefund:      true,
	}

	res, err := f.uc.BetCredit(ctx, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertBalance(t, res.Balance, "17.25")

	records := f.records.Records()
	if records[0].ExternalTransactionID != "credit-1" {
		t.Errorf("expected transactionId as idempotency key, got %s", records[0].ExternalTransactionID)
	}
	if f.moneyLogs.Entries()[0].OperateType != domain.OperateBetCreditRefund {
		t.Errorf("expected refund operate type, got %d", f.moneyLogs.Entries()[0].OperateType)
	}

	in.Amount = decimal.NewFromInt(-1)
	in.TransactionID = "credit-2"
	if _, err := f.uc.BetCredit(ctx, in); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestWalletUseCase_BetDebit(t *testing.T) {
	t.Run("take all", func(t *testing.T) {
		f := newWalletFixture(t, "42.42")
		res, err := f.uc.BetDebit(context.Background(), usecase.BetDebitInput{
			Envelope:      env(),
			TransactionID: "debit-1",
			RoundID:       "round-1",
			GameCode:      "slot-1",
			TakeAll:       true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertBalance(t, res.Balance, "0")
		if f.moneyLogs.Entries()[0].OperateType != domain.OperateBetDebit {
			t.Error("expected bet debit operate type")
		}
	})

	t.Run("amount above balance", func(t *testing.T) {
		f := newWalletFixture(t, "5.00")
		_, err := f.uc.BetDebit(context.Background(), usecase.BetDebitInput{
			Envelope:      env(),
			TransactionID: "debit-1",
			RoundID:       "round-1",
			GameCode:      "slot-1",
			Amount:        decimal.NewFromInt(6),
		})
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Errorf("expected ErrInsufficientFunds, got %v", err)
		}
	})
}

func TestWalletUseCase_Adjustment(t *testing.T) {
	adjust := func(extID, amount string) usecase.AdjustmentInput {
		return usecase.AdjustmentInput{
			Envelope:              env(),
			TransactionID:         "tx-" + extID,
			ExternalTransactionID: extID,
			RoundID:               "round-1",
			GameCode:              "slot-1",
			Amount:                decimal.RequireFromString(amount),
		}
	}

	t.Run("requires an existing round", func(t *testing.T) {
		f := newWalletFixture(t, "100.00")
		_, err := f.uc.Adjustment(context.Background(), adjust("adj-1", "5"))
		if !errors.Is(err, domain.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("applies signed amount", func(t *testing.T) {
		f := newWalletFixture(t, "100.00")
		ctx := context.Background()
		if _, err := f.uc.Bet(ctx, bet("bet-ext", "bet-1", "10")); err != nil {
			t.Fatalf("prior bet: %v", err)
		}

		res, err := f.uc.Adjustment(ctx, adjust("adj-1", "-20"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertBalance(t, res.Balance, "70")

		_, err = f.uc.Adjustment(ctx, adjust("adj-2", "-70.01"))
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Errorf("expected ErrInsufficientFunds, got %v", err)
		}
	})
}

func TestWalletUseCase_Rollback(t *testing.T) {
	t.Run("reverses settlement exactly", func(t *testing.T) {
		f := newWalletFixture(t, "70.00")
		ctx := context.Background()

		if _, err := f.uc.BetResult(ctx, betResult("res-1", "bet-1", "BET_WIN", "10", "25", "0")); err != nil {
			t.Fatalf("settle: %v", err)
		}
		assertBalance(t, f.balance(t), "85")

		res, err := f.uc.Rollback(ctx, rollback("rb-1", "bet-1"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertBalance(t, res.Balance, "70")

		records := f.records.Records()
		if records[0].Status != domain.StatusRolledBack {
			t.Errorf("expected original rolled back, got %s", records[0].Status)
		}
		if records[1].Kind != domain.KindRollback || !records[1].Amount.Equal(decimal.NewFromInt(-15)) {
			t.Errorf("unexpected rollback record %+v", records[1])
		}

		events := f.outbox.Events()
		if events[len(events)-1].EventType != domain.EventTypeTransactionRolledBack {
			t.Errorf("expected rolled back event, got %s", events[len(events)-1].EventType)
		}

		replay, err := f.uc.Rollback(ctx, rollback("rb-1", "bet-1"))
		if err != nil || !replay.Replayed {
			t.Fatalf("expected replay, got %v %v", replay, err)
		}
		assertBalance(t, f.balance(t), "70")
	})

	t.Run("second rollback finds nothing to reverse", func(t *testing.T) {
		f := newWalletFixture(t, "100.00")
		ctx := context.Background()

		if _, err := f.uc.Bet(ctx, bet("bet-ext", "bet-1", "30")); err != nil {
			t.Fatalf("bet: %v", err)
		}
		if _, err := f.uc.Rollback(ctx, rollback("rb-1", "bet-1")); err != nil {
			t.Fatalf("rollback: %v", err)
		}
		_, err := f.uc.Rollback(ctx, rollback("rb-2", "bet-1"))
		if !errors.Is(err, domain.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
		assertBalance(t, f.balance(t), "100")
	})

	t.Run("retried bet after rollback replays", func(t *testing.T) {
		f := newWalletFixture(t, "100.00")
		ctx := context.Background()

		if _, err := f.uc.Bet(ctx, bet("ext-1", "bet-1", "30")); err != nil {
			t.Fatalf("bet: %v", err)
		}
		if _, err := f.uc.Rollback(ctx, rollback("rb-1", "bet-1")); err != nil {
			t.Fatalf("rollback: %v", err)
		}
		_, err := f.uc.BetDebit(ctx, usecase.BetDebitInput{
			Envelope:      env(),
			TransactionID: "debit-1",
			RoundID:       "round-1",
			GameCode:      "slot-1",
			TakeAll:       true,
		})
		if err != nil {
			t.Fatalf("bet debit: %v", err)
		}

		res, err := f.uc.Bet(ctx, bet("ext-1", "bet-1", "30"))
		if err != nil {
			t.Fatalf("expected replay of the rolled back bet, got %v", err)
		}
		if !res.Replayed {
			t.Error("expected replayed result")
		}
		assertBalance(t, res.Balance, "0")
		assertBalance(t, f.balance(t), "0")
		if got := len(f.records.Records()); got != 3 {
			t.Errorf("expected 3 records, got %d", got)
		}
	})

	t.Run("lost race on status transition", func(t *testing.T) {
		f := newWalletFixture(t, "100.00")
		ctx := context.Background()

		if _, err := f.uc.Bet(ctx, bet("bet-ext", "bet-1", "30")); err != nil {
			t.Fatalf("bet: %v", err)
		}
		f.records.MarkRolledBackFunc = func(context.Context, usecase.Transaction, string, time.Time) error {
			return domain.ErrAlreadyRolledBack
		}

		_, err := f.uc.Rollback(ctx, rollback("rb-1", "bet-1"))
		if !errors.Is(err, domain.ErrAlreadyRolledBack) {
			t.Errorf("expected ErrAlreadyRolledBack, got %v", err)
		}
		if f.txManager.Committed() != 1 {
			t.Errorf("expected only the bet to commit, got %d commits", f.txManager.Committed())
		}
	})

	t.Run("inverse would go negative", func(t *testing.T) {
		f := newWalletFixture(t, "0.00")
		ctx := context.Background()

		if _, err := f.uc.BetResult(ctx, betResult("res-1", "bet-1", "WIN", "0", "50", "0")); err != nil {
			t.Fatalf("settle: %v", err)
		}
		if _, err := f.uc.BetDebit(ctx, usecase.BetDebitInput{
			Envelope: env(), TransactionID: "d-1", RoundID: "round-2", GameCode: "slot-1", Amount: decimal.NewFromInt(40),
		}); err != nil {
			t.Fatalf("debit: %v", err)
		}

		_, err := f.uc.Rollback(ctx, rollback("rb-1", "bet-1"))
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Errorf("expected ErrInsufficientFunds, got %v", err)
		}
		assertBalance(t, f.balance(t), "10")
	})

	t.Run("nothing to reverse", func(t *testing.T) {
		f := newWalletFixture(t, "100.00")
		_, err := f.uc.Rollback(context.Background(), rollback("rb-1", "missing"))
		if !errors.Is(err, domain.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestWalletUseCase_FailedUnitLeavesNoTrace(t *testing.T) {
	f := newWalletFixture(t, "100.00")
	f.outbox.CreateFunc = func(context.Context, usecase.Transaction, *domain.OutboxEvent) error {
		return errors.New("outbox unavailable")
	}

	if _, err := f.uc.Bet(context.Background(), bet("ext-1", "bet-1", "30")); err == nil {
		t.Fatal("expected error")
	}

	assertBalance(t, f.balance(t), "100")
	if got := len(f.records.Records()); got != 0 {
		t.Errorf("expected no records, got %d", got)
	}
	if got := len(f.moneyLogs.Entries()); got != 0 {
		t.Errorf("expected no money logs, got %d", got)
	}
	if f.txManager.Committed() != 0 {
		t.Error("expected no commit")
	}

	f.outbox.CreateFunc = nil
	res, err := f.uc.Bet(context.Background(), bet("ext-1", "bet-1", "30"))
	if err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if res.Replayed {
		t.Error("expected the retry to apply, not replay")
	}
	assertBalance(t, res.Balance, "70")
}

func TestWalletUseCase_Conservation(t *testing.T) {
	f := newWalletFixture(t, "100.00")
	ctx := context.Background()

	steps := []func() error{
		func() error { _, err := f.uc.Bet(ctx, bet("e1", "b1", "12.34")); return err },
		func() error {
			_, err := f.uc.BetResult(ctx, betResult("e2", "b1", "BET_WIN", "12.34", "40", "1.11"))
			return err
		},
		func() error { _, err := f.uc.Bet(ctx, bet("e3", "b2", "7")); return err },
		func() error { _, err := f.uc.Rollback(ctx, rollback("e4", "b2")); return err },
		func() error { _, err := f.uc.Bet(ctx, bet("e5", "b3", "99.99")); return err },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	sum, _, err := f.moneyLogs.SumByAccount(ctx, "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.balance(t).Equal(decimal.NewFromInt(100).Add(sum)) {
		t.Errorf("balance %s does not match opening + logged %s", f.balance(t), sum)
	}
	for _, e := range f.moneyLogs.Entries() {
		if !e.Consistent() {
			t.Errorf("inconsistent entry %+v", e)
		}
		if e.BalanceAfter.IsNegative() {
			t.Errorf("negative balance in entry %+v", e)
		}
	}
}
