package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
	"github.com/iho/gamewallet/internal/usecase"
	"github.com/iho/gamewallet/internal/usecase/mocks"
)

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestReconciliationUseCase_ReconcileAccount(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	logs := mocks.NewMockMoneyLogRepository()
	ctx := context.Background()

	accounts.Seed(&domain.Account{
		ID:             "acc-1",
		Name:           "player1",
		Balance:        decimal.RequireFromString("75"),
		OpeningBalance: decimal.RequireFromString("100"),
		Status:         domain.AccountEnabled,
	})
	for i, delta := range []string{"-10", "5", "-20"} {
		entry := domain.NewMoneyLogEntry(fmt.Sprintf("log-%d", i), "acc-1", decimal.Zero, decimal.RequireFromString(delta), domain.OperateGameTransaction, "slot", "", testTime)
		if err := logs.Create(ctx, nil, entry); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	uc := usecase.NewReconciliationUseCase(accounts, logs, zerolog.Nop())

	result, err := uc.ReconcileAccount(ctx, "player1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsReconciled {
		t.Errorf("expected reconciled, got difference %s", result.Difference)
	}
	if result.EntryCount != 3 {
		t.Errorf("expected 3 entries, got %d", result.EntryCount)
	}
	assertBalance(t, result.LoggedDelta, "-25")

	_, err = uc.ReconcileAccount(ctx, "missing")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestReconciliationUseCase_GenerateReport(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	logs := mocks.NewMockMoneyLogRepository()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		accounts.Seed(&domain.Account{
			ID:             fmt.Sprintf("acc-%02d", i),
			Name:           fmt.Sprintf("player%02d", i),
			Balance:        decimal.NewFromInt(10),
			OpeningBalance: decimal.NewFromInt(10),
			Status:         domain.AccountEnabled,
		})
	}
	// player07 drifted without a money log.
	accounts.Seed(&domain.Account{
		ID:             "acc-07",
		Name:           "player07",
		Balance:        decimal.NewFromInt(12),
		OpeningBalance: decimal.NewFromInt(10),
		Status:         domain.AccountEnabled,
	})

	uc := usecase.NewReconciliationUseCase(accounts, logs, zerolog.Nop())
	report, err := uc.GenerateReconciliationReport(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalAccounts != 25 {
		t.Errorf("expected 25 accounts, got %d", report.TotalAccounts)
	}
	if report.ReconciledAccounts != 24 {
		t.Errorf("expected 24 reconciled, got %d", report.ReconciledAccounts)
	}
	if len(report.Discrepancies) != 1 || report.Discrepancies[0].Name != "player07" {
		t.Fatalf("expected player07 discrepancy, got %+v", report.Discrepancies)
	}
	assertBalance(t, report.Discrepancies[0].Difference, "2")
}

func TestReconciliationUseCase_ListError(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	accounts.ListFunc = func(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
		return nil, errors.New("db down")
	}

	uc := usecase.NewReconciliationUseCase(accounts, mocks.NewMockMoneyLogRepository(), zerolog.Nop())
	if _, err := uc.GenerateReconciliationReport(context.Background()); err == nil {
		t.Error("expected error, got nil")
	}
}
