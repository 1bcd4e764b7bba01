package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BatchItem is one line of a basic-auth game transaction.
type BatchItem struct {
	Detail          any
	UserCode        string
	VendorCode      string
	GameCode        string
	HistoryID       string
	RoundID         string
	TransactionCode string
	CreatedAt       string
	Amount          decimal.Decimal
	GameType        int
	IsFinished      bool
	IsCanceled      bool
}

// ValidGameTypes are the accepted gameType values.
var ValidGameTypes = map[int]bool{1: true, 2: true, 3: true, 4: true}

// Kind maps the item to the record kind it is stored as.
func (i BatchItem) Kind() TransactionKind {
	switch {
	case i.IsCanceled:
		return KindRollback
	case i.Amount.IsNegative():
		return KindBet
	case i.Amount.IsPositive():
		return KindBetResult
	default:
		return KindAdjustment
	}
}

// Status is cancelled for canceled items, completed otherwise.
func (i BatchItem) Status() TransactionStatus {
	if i.IsCanceled {
		return StatusCancelled
	}
	return StatusCompleted
}

// Description is the money log text for the item.
func (i BatchItem) Description() string {
	abs := FormatMoney(i.Amount.Abs())
	switch i.Kind() {
	case KindRollback:
		return fmt.Sprintf("game rollback - %s - amount: %s", i.GameCode, abs)
	case KindBet:
		return fmt.Sprintf("game bet - %s - amount: %s", i.GameCode, abs)
	case KindBetResult:
		return fmt.Sprintf("game win - %s - amount: %s", i.GameCode, abs)
	default:
		return fmt.Sprintf("game adjustment - %s", i.GameCode)
	}
}

// Validate checks required fields, the game type and the owning user.
func (i BatchItem) Validate(userCode string) error {
	required := map[string]string{
		"userCode":        i.UserCode,
		"vendorCode":      i.VendorCode,
		"gameCode":        i.GameCode,
		"historyId":       i.HistoryID,
		"roundId":         i.RoundID,
		"transactionCode": i.TransactionCode,
		"createdAt":       i.CreatedAt,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: missing %s", ErrInvalidRequest, field)
		}
	}

	if !ValidGameTypes[i.GameType] {
		return fmt.Errorf("%w: invalid gameType %d", ErrInvalidRequest, i.GameType)
	}

	if strings.TrimSpace(i.UserCode) != userCode {
		return fmt.Errorf("%w: item user %q does not match %q", ErrInvalidRequest, i.UserCode, userCode)
	}

	return nil
}

// BatchStep is the simulated balance movement of one item.
type BatchStep struct {
	Item   BatchItem
	Before decimal.Decimal
	After  decimal.Decimal
	Index  int
}

// BatchPlan is the validated, simulated batch ready to be applied.
type BatchPlan struct {
	Steps        []BatchStep
	Total        decimal.Decimal
	FinalBalance decimal.Decimal
}

// PlanBatch sums the items and simulates per-item balances in order.
// Only the aggregate is checked for non-negativity.
func PlanBatch(balance decimal.Decimal, items []BatchItem) (*BatchPlan, error) {
	plan := &BatchPlan{Steps: make([]BatchStep, 0, len(items))}

	for _, item := range items {
		plan.Total = plan.Total.Add(MoneyFloor(item.Amount))
	}

	final := MoneyFloor(balance.Add(plan.Total))
	if final.IsNegative() {
		return nil, fmt.Errorf("%w: balance %s, batch total %s", ErrInsufficientFunds, FormatMoney(balance), FormatMoney(plan.Total))
	}
	plan.FinalBalance = final

	running := MoneyFloor(balance)
	for idx, item := range items {
		before := running
		running = before.Add(MoneyFloor(item.Amount))
		plan.Steps = append(plan.Steps, BatchStep{Item: item, Index: idx, Before: before, After: running})
	}

	return plan, nil
}
