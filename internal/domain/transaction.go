package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind identifies the vendor operation that produced a record.
type TransactionKind string

const (
	KindBet        TransactionKind = "bet"
	KindBetResult  TransactionKind = "bet_result"
	KindBetCredit  TransactionKind = "bet_credit"
	KindBetDebit   TransactionKind = "bet_debit"
	KindAdjustment TransactionKind = "adjustment"
	KindRollback   TransactionKind = "rollback"
	KindBatchItem  TransactionKind = "batch_item"
)

// RollbackableKinds are the kinds a rollback may reverse.
var RollbackableKinds = []TransactionKind{KindBet, KindBetResult, KindBetCredit, KindBetDebit}

// RoundKinds are the kinds that open or settle a round.
var RoundKinds = []TransactionKind{KindBet, KindBetResult, KindBetCredit}

// TransactionStatus is the lifecycle state of a record.
type TransactionStatus string

const (
	StatusCompleted  TransactionStatus = "completed"
	StatusCancelled  TransactionStatus = "cancelled"
	StatusRolledBack TransactionStatus = "rolled_back"
)

// TransactionRecord is the immutable record of one applied vendor operation.
// Amount is the signed balance effect; zero when nothing moved.
type TransactionRecord struct {
	CreatedAt             time.Time
	UpdatedAt             time.Time
	MoneyLogID            *string
	Metadata              map[string]any
	ID                    string
	ExternalTransactionID string
	AccountID             string
	TraceID               string
	BetID                 string
	TransactionRef        string
	GameCode              string
	RoundID               string
	Kind                  TransactionKind
	Status                TransactionStatus
	Amount                decimal.Decimal
}

// IsCompleted reports whether the record still counts toward the balance.
func (t *TransactionRecord) IsCompleted() bool {
	return t.Status == StatusCompleted
}
