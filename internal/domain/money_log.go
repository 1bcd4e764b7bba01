package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperateType classifies a money log entry for back-office reporting.
type OperateType int32

const (
	OperateBet             OperateType = 10
	OperateSettlement      OperateType = 11
	OperateRollback        OperateType = 12
	OperateAdjustment      OperateType = 13
	OperateBetDebit        OperateType = 14
	OperateBetCreditRefund OperateType = 15
	OperateBetCredit       OperateType = 16
	OperateGameTransaction OperateType = 501
)

// MoneyLogEntry records one applied balance movement.
type MoneyLogEntry struct {
	CreatedAt     time.Time
	Metadata      map[string]any
	ID            string
	AccountID     string
	GameCode      string
	Description   string
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Sign          int16
	OperateType   OperateType
}

// NewMoneyLogEntry builds an entry for delta applied on top of before.
func NewMoneyLogEntry(id, accountID string, before, delta decimal.Decimal, op OperateType, gameCode, description string, at time.Time) *MoneyLogEntry {
	sign := int16(1)
	if delta.IsNegative() {
		sign = -1
	}

	return &MoneyLogEntry{
		ID:            id,
		AccountID:     accountID,
		Amount:        MoneyFloor(delta.Abs()),
		BalanceBefore: MoneyFloor(before),
		BalanceAfter:  MoneyFloor(before.Add(delta)),
		Sign:          sign,
		OperateType:   op,
		GameCode:      gameCode,
		Description:   description,
		CreatedAt:     at,
	}
}

// SignedAmount is the balance effect of the entry.
func (m *MoneyLogEntry) SignedAmount() decimal.Decimal {
	if m.Sign < 0 {
		return m.Amount.Neg()
	}
	return m.Amount
}

// Consistent reports whether before + effect == after.
func (m *MoneyLogEntry) Consistent() bool {
	return m.BalanceBefore.Add(m.SignedAmount()).Equal(m.BalanceAfter)
}
