package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxAccountNameLength = 64
	MaxAmount            = "1000000000000" // 1 trillion
)

var (
	accountNameRegex = regexp.MustCompile(`^[A-Za-z0-9_.@-]+$`)
	currencyRegex    = regexp.MustCompile(`^[A-Z]{3}$`)
	maxAmount        = decimal.RequireFromString(MaxAmount)
)

// ValidateAccountName validates a player name. Names are case-sensitive.
func ValidateAccountName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	if !accountNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q contains forbidden characters", ErrInvalidAccountName, name)
	}

	return nil
}

// NormalizeCurrency upper-cases and checks a three-letter currency code.
func NormalizeCurrency(currency string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(currency))
	if !currencyRegex.MatchString(c) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}
	return c, nil
}

// ValidatePositiveAmount requires 0 < amount <= MaxAmount after flooring.
func ValidatePositiveAmount(amount decimal.Decimal) error {
	amount = MoneyFloor(amount)
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidAmount, amount)
	}
	return ValidateAmountLimit(amount)
}

// ValidateAmountLimit rejects amounts whose magnitude exceeds MaxAmount.
func ValidateAmountLimit(amount decimal.Decimal) error {
	if amount.Abs().GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}
	return nil
}
