package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the enabled flag of a player account.
type AccountStatus int16

const (
	AccountDisabled AccountStatus = 0
	AccountEnabled  AccountStatus = 1
)

// Account is a player wallet holding a single balance.
type Account struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ID             string
	Name           string
	Balance        decimal.Decimal
	OpeningBalance decimal.Decimal
	Status         AccountStatus
}

// CheckActive returns ErrAccountDisabled unless the account is enabled.
func (a *Account) CheckActive() error {
	if a.Status != AccountEnabled {
		return ErrAccountDisabled
	}
	return nil
}

// Covers checks that the balance is at least required.
func (a *Account) Covers(required decimal.Decimal) error {
	if MoneyFloor(a.Balance).LessThan(MoneyFloor(required)) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDelta returns the balance after delta, rejecting a negative result.
func (a *Account) ApplyDelta(delta decimal.Decimal) (decimal.Decimal, error) {
	next := MoneyFloor(a.Balance.Add(delta))
	if next.IsNegative() {
		return a.Balance, ErrInsufficientFunds
	}
	return next, nil
}
