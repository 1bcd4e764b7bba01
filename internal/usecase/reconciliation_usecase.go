package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
)

// ReconciliationUseCase checks that every balance is explained by its money log.
type ReconciliationUseCase struct {
	accountRepo  AccountRepository
	moneyLogRepo MoneyLogRepository
	logger       zerolog.Logger
	now          Clock
	workers      int
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	accountRepo AccountRepository,
	moneyLogRepo MoneyLogRepository,
	logger zerolog.Logger,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo:  accountRepo,
		moneyLogRepo: moneyLogRepo,
		logger:       logger,
		now:          time.Now,
		workers:      ReconciliationWorkers,
	}
}

// WithWorkers sets the size of the report worker pool.
func (uc *ReconciliationUseCase) WithWorkers(n int) *ReconciliationUseCase {
	if n > 0 {
		uc.workers = n
	}
	return uc
}

// ReconciliationResult represents the result of a conservation check
type ReconciliationResult struct {
	LastChecked       time.Time
	AccountID         string
	Name              string
	RecordedBalance   decimal.Decimal
	OpeningBalance    decimal.Decimal
	LoggedDelta       decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	EntryCount        int64
	IsReconciled      bool
}

// ReconcileAccount compares the stored balance with
// opening balance + sum of signed money log amounts.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, name string) (*ReconciliationResult, error) {
	account, err := uc.accountRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return uc.reconcile(ctx, account)
}

func (uc *ReconciliationUseCase) reconcile(ctx context.Context, account *domain.Account) (*ReconciliationResult, error) {
	sum, count, err := uc.moneyLogRepo.SumByAccount(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("sum money log for %s: %w", account.Name, err)
	}

	recorded := domain.MoneyFloor(account.Balance)
	calculated := domain.MoneyFloor(account.OpeningBalance.Add(sum))

	return &ReconciliationResult{
		AccountID:         account.ID,
		Name:              account.Name,
		RecordedBalance:   recorded,
		OpeningBalance:    account.OpeningBalance,
		LoggedDelta:       sum,
		CalculatedBalance: calculated,
		Difference:        recorded.Sub(calculated),
		EntryCount:        count,
		IsReconciled:      recorded.Equal(calculated),
		LastChecked:       uc.now().UTC(),
	}, nil
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	CheckedAt          time.Time
	Discrepancies      []*ReconciliationResult
	TotalAccounts      int
	ReconciledAccounts int
}

// GenerateReconciliationReport checks every account on a worker pool.
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context) (*ReconciliationReport, error) {
	pool, err := ants.NewPool(uc.workers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
		report   = &ReconciliationReport{Discrepancies: make([]*ReconciliationResult, 0)}
	)

	for offset := 0; ; offset += ReconciliationPageSize {
		accounts, err := uc.accountRepo.List(ctx, ReconciliationPageSize, offset)
		if err != nil {
			wg.Wait()
			return nil, err
		}

		for _, account := range accounts {
			account := account
			wg.Add(1)
			submitErr := pool.Submit(func() {
				defer wg.Done()

				result, err := uc.reconcile(ctx, account)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					return
				}
				report.TotalAccounts++
				if result.IsReconciled {
					report.ReconciledAccounts++
					return
				}
				report.Discrepancies = append(report.Discrepancies, result)
			})
			if submitErr != nil {
				wg.Done()
				wg.Wait()
				return nil, submitErr
			}
		}

		if len(accounts) < ReconciliationPageSize {
			break
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	for _, d := range report.Discrepancies {
		uc.logger.Warn().
			Str("account", d.Name).
			Str("recorded", d.RecordedBalance.String()).
			Str("calculated", d.CalculatedBalance.String()).
			Msg("balance not explained by money log")
	}
	report.CheckedAt = uc.now().UTC()

	return report, nil
}
