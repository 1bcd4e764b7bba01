package domain

import "time"

// Event types
const (
	EventTypeTransactionApplied    = "wallet.transaction.applied"
	EventTypeTransactionRolledBack = "wallet.transaction.rolled_back"
	EventTypeBatchApplied          = "wallet.batch.applied"
	EventTypeAccountCreated        = "account.created"
)

// Aggregate types
const (
	AggregateTypeAccount = "account"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Payload       map[string]any
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Published     bool
}

// TransactionAppliedEvent payload
type TransactionAppliedEvent struct {
	TransactionID         string `json:"transaction_id"`
	ExternalTransactionID string `json:"external_transaction_id"`
	Username              string `json:"username"`
	Kind                  string `json:"kind"`
	Amount                string `json:"amount"`
	BalanceBefore         string `json:"balance_before"`
	BalanceAfter          string `json:"balance_after"`
	GameCode              string `json:"game_code"`
	RoundID               string `json:"round_id"`
}

// TransactionRolledBackEvent payload
type TransactionRolledBackEvent struct {
	RollbackID            string `json:"rollback_id"`
	OriginalTransactionID string `json:"original_transaction_id"`
	Username              string `json:"username"`
	Amount                string `json:"amount"`
	BalanceAfter          string `json:"balance_after"`
}

// BatchAppliedEvent payload
type BatchAppliedEvent struct {
	Username      string   `json:"username"`
	Transactions  []string `json:"transactions"`
	Total         string   `json:"total"`
	BalanceBefore string   `json:"balance_before"`
	BalanceAfter  string   `json:"balance_after"`
}

// AccountCreatedEvent payload
type AccountCreatedEvent struct {
	AccountID      string `json:"account_id"`
	Name           string `json:"name"`
	OpeningBalance string `json:"opening_balance"`
}

// ToMap flattens the payload for storage in the outbox.
func (e TransactionAppliedEvent) ToMap() map[string]any {
	return map[string]any{
		"transaction_id":          e.TransactionID,
		"external_transaction_id": e.ExternalTransactionID,
		"username":                e.Username,
		"kind":                    e.Kind,
		"amount":                  e.Amount,
		"balance_before":          e.BalanceBefore,
		"balance_after":           e.BalanceAfter,
		"game_code":               e.GameCode,
		"round_id":                e.RoundID,
	}
}

// ToMap flattens the payload for storage in the outbox.
func (e TransactionRolledBackEvent) ToMap() map[string]any {
	return map[string]any{
		"rollback_id":             e.RollbackID,
		"original_transaction_id": e.OriginalTransactionID,
		"username":                e.Username,
		"amount":                  e.Amount,
		"balance_after":           e.BalanceAfter,
	}
}

// ToMap flattens the payload for storage in the outbox.
func (e BatchAppliedEvent) ToMap() map[string]any {
	return map[string]any{
		"username":       e.Username,
		"transactions":   e.Transactions,
		"total":          e.Total,
		"balance_before": e.BalanceBefore,
		"balance_after":  e.BalanceAfter,
	}
}

// ToMap flattens the payload for storage in the outbox.
func (e AccountCreatedEvent) ToMap() map[string]any {
	return map[string]any{
		"account_id":      e.AccountID,
		"name":            e.Name,
		"opening_balance": e.OpeningBalance,
	}
}
