package mocks

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
	"github.com/iho/gamewallet/internal/usecase"
)

// MockAccountRepository is an in-memory AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account // by name

	CreateFunc                func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByNameFunc             func(ctx context.Context, name string) (*domain.Account, error)
	GetByNameForUpdateFunc    func(ctx context.Context, tx usecase.Transaction, name string) (*domain.Account, error)
	CompareAndSwapBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, expected, next decimal.Decimal, updatedAt time.Time) error
	ListFunc                  func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed stores an account without going through Create.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *account
	m.accounts[account.Name] = &stored
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.Name]; ok {
		return domain.ErrAccountExists
	}
	stored := *account
	m.accounts[account.Name] = &stored
	undoOnRollback(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.accounts, account.Name)
	})
	return nil
}

func (m *MockAccountRepository) GetByName(ctx context.Context, name string) (*domain.Account, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[name]; ok {
		cp := *acc
		return &cp, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByNameForUpdate(ctx context.Context, tx usecase.Transaction, name string) (*domain.Account, error) {
	if m.GetByNameForUpdateFunc != nil {
		return m.GetByNameForUpdateFunc(ctx, tx, name)
	}
	return m.GetByName(ctx, name)
}

func (m *MockAccountRepository) CompareAndSwapBalance(ctx context.Context, tx usecase.Transaction, id string, expected, next decimal.Decimal, updatedAt time.Time) error {
	if m.CompareAndSwapBalanceFunc != nil {
		return m.CompareAndSwapBalanceFunc(ctx, tx, id, expected, next, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range m.accounts {
		if acc.ID != id {
			continue
		}
		if !acc.Balance.Equal(expected) {
			return domain.ErrConcurrentModification
		}
		prevUpdatedAt := acc.UpdatedAt
		acc.Balance = next
		acc.UpdatedAt = updatedAt
		undoOnRollback(tx, func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			acc.Balance = expected
			acc.UpdatedAt = prevUpdatedAt
		})
		return nil
	}
	return domain.ErrConcurrentModification
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.accounts))
	for name := range m.accounts {
		names = append(names, name)
	}
	slices.Sort(names)

	var accounts []*domain.Account
	for i := offset; i < len(names) && len(accounts) < limit; i++ {
		cp := *m.accounts[names[i]]
		accounts = append(accounts, &cp)
	}
	return accounts, nil
}

// MockTransactionRepository is an in-memory TransactionRepository.
type MockTransactionRepository struct {
	mu      sync.RWMutex
	records []*domain.TransactionRecord

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, record *domain.TransactionRecord) error
	FindByExternalIDFunc func(ctx context.Context, externalID string, kind domain.TransactionKind) (*domain.TransactionRecord, error)
	MarkRolledBackFunc   func(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// Records returns a snapshot of stored records in insertion order.
func (m *MockTransactionRepository) Records() []domain.TransactionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.TransactionRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, *r)
	}
	return out
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.TransactionRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ExternalTransactionID == record.ExternalTransactionID && r.Kind == record.Kind {
			return domain.ErrDuplicateTransaction
		}
	}
	stored := *record
	m.records = append(m.records, &stored)
	undoOnRollback(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.records = withoutPtr(m.records, &stored)
	})
	return nil
}

// FindByExternalID matches on external id and kind whatever the status.
func (m *MockTransactionRepository) FindByExternalID(ctx context.Context, externalID string, kind domain.TransactionKind) (*domain.TransactionRecord, error) {
	if m.FindByExternalIDFunc != nil {
		return m.FindByExternalIDFunc(ctx, externalID, kind)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.records {
		if r.ExternalTransactionID == externalID && r.Kind == kind {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ExistsByExternalID(ctx context.Context, tx usecase.Transaction, externalID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.records {
		if r.ExternalTransactionID == externalID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTransactionRepository) FindDebitedBet(ctx context.Context, tx usecase.Transaction, accountID, betID, roundID, gameCode string, amount decimal.Decimal) (*domain.TransactionRecord, error) {
	return m.latest(func(r *domain.TransactionRecord) bool {
		return r.Kind == domain.KindBet && r.AccountID == accountID && r.BetID == betID &&
			r.RoundID == roundID && r.GameCode == gameCode && r.Amount.Equal(amount.Neg())
	})
}

func (m *MockTransactionRepository) FindLatestByBet(ctx context.Context, tx usecase.Transaction, accountID, betID, gameCode string, kinds []domain.TransactionKind) (*domain.TransactionRecord, error) {
	return m.latest(func(r *domain.TransactionRecord) bool {
		return slices.Contains(kinds, r.Kind) && r.AccountID == accountID && r.BetID == betID && r.GameCode == gameCode
	})
}

func (m *MockTransactionRepository) FindLatestByRound(ctx context.Context, tx usecase.Transaction, accountID, roundID, gameCode string, kinds []domain.TransactionKind) (*domain.TransactionRecord, error) {
	return m.latest(func(r *domain.TransactionRecord) bool {
		return slices.Contains(kinds, r.Kind) && r.AccountID == accountID && r.RoundID == roundID && r.GameCode == gameCode
	})
}

func (m *MockTransactionRepository) FindLatestForRollback(ctx context.Context, tx usecase.Transaction, accountID, betID, roundID, gameCode string) (*domain.TransactionRecord, error) {
	return m.latest(func(r *domain.TransactionRecord) bool {
		return slices.Contains(domain.RollbackableKinds, r.Kind) && r.AccountID == accountID &&
			r.BetID == betID && r.RoundID == roundID && r.GameCode == gameCode
	})
}

func (m *MockTransactionRepository) MarkRolledBack(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	if m.MarkRolledBackFunc != nil {
		return m.MarkRolledBackFunc(ctx, tx, id, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID != id {
			continue
		}
		if r.Status != domain.StatusCompleted {
			return domain.ErrAlreadyRolledBack
		}
		prevUpdatedAt := r.UpdatedAt
		r.Status = domain.StatusRolledBack
		r.UpdatedAt = updatedAt
		undoOnRollback(tx, func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			r.Status = domain.StatusCompleted
			r.UpdatedAt = prevUpdatedAt
		})
		return nil
	}
	return domain.ErrAlreadyRolledBack
}

// latest returns the most recent completed record matching match.
func (m *MockTransactionRepository) latest(match func(*domain.TransactionRecord) bool) (*domain.TransactionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if r.Status == domain.StatusCompleted && match(r) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

// MockMoneyLogRepository is an in-memory MoneyLogRepository.
type MockMoneyLogRepository struct {
	mu      sync.RWMutex
	entries []*domain.MoneyLogEntry

	CreateFunc func(ctx context.Context, tx usecase.Transaction, entry *domain.MoneyLogEntry) error
}

func NewMockMoneyLogRepository() *MockMoneyLogRepository {
	return &MockMoneyLogRepository{}
}

// Entries returns a snapshot of stored entries in insertion order.
func (m *MockMoneyLogRepository) Entries() []domain.MoneyLogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.MoneyLogEntry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, *e)
	}
	return out
}

func (m *MockMoneyLogRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.MoneyLogEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *entry
	m.entries = append(m.entries, &stored)
	undoOnRollback(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.entries = withoutPtr(m.entries, &stored)
	})
	return nil
}

func (m *MockMoneyLogRepository) GetByID(ctx context.Context, tx usecase.Transaction, id string) (*domain.MoneyLogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrMoneyLogNotFound
}

func (m *MockMoneyLogRepository) SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	var count int64
	for _, e := range m.entries {
		if e.AccountID == accountID {
			sum = sum.Add(e.SignedAmount())
			count++
		}
	}
	return sum, count, nil
}

// MockOutboxRepository is an in-memory OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

// Events returns a snapshot of stored events in insertion order.
func (m *MockOutboxRepository) Events() []domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.OutboxEvent, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, *e)
	}
	return out
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *event
	m.events = append(m.events, &stored)
	undoOnRollback(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.events = withoutPtr(m.events, &stored)
	})
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published && len(out) < limit {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			at := publishedAt
			e.PublishedAt = &at
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
			continue
		}
		kept = append(kept, e)
	}
	m.events = kept
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu        sync.Mutex
	begun     int
	committed int
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	m.begun++
	m.mu.Unlock()
	return &MockTransaction{
		CommitFunc: func(context.Context) error {
			m.mu.Lock()
			m.committed++
			m.mu.Unlock()
			return nil
		},
	}, nil
}

// Committed returns the number of committed transactions.
func (m *MockTransactionManager) Committed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.committed
}

// MockTransaction is a mock implementation of Transaction. Writes made
// through the in-memory repositories are undone by Rollback unless the
// transaction committed first.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	mu        sync.Mutex
	undo      []func()
	committed bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		if err := m.CommitFunc(ctx); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed = true
	m.undo = nil
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	m.mu.Lock()
	undo := m.undo
	m.undo = nil
	committed := m.committed
	m.mu.Unlock()

	if !committed {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}

	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) onRollback(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo = append(m.undo, fn)
}

// undoOnRollback registers fn with tx when it is a MockTransaction.
func undoOnRollback(tx usecase.Transaction, fn func()) {
	if mt, ok := tx.(*MockTransaction); ok {
		mt.onRollback(fn)
	}
}

func withoutPtr[T any](items []*T, target *T) []*T {
	return slices.DeleteFunc(items, func(item *T) bool { return item == target })
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "mock-id-" + strconv.Itoa(m.counter)
}
