package domain

import (
	"github.com/shopspring/decimal"
)

// MoneyDecimals is the precision balances and amounts are stored with.
const MoneyDecimals int32 = 2

var (
	half = decimal.New(5, -1)
	one  = decimal.NewFromInt(1)
)

// FloorTo truncates amount toward negative infinity at the given precision.
// The value is first rounded half-down one digit past the precision, so
// 19.995 floors to 19.99 and 19.9999 floors to 20.00.
func FloorTo(amount decimal.Decimal, decimals int32) decimal.Decimal {
	guarded := roundHalfDown(amount.Shift(decimals + 1))

	return guarded.Shift(-1).Floor().Shift(-decimals)
}

// MoneyFloor floors amount to MoneyDecimals.
func MoneyFloor(amount decimal.Decimal) decimal.Decimal {
	return FloorTo(amount, MoneyDecimals)
}

// FormatMoney renders amount rounded half-up with exactly two fraction digits.
func FormatMoney(amount decimal.Decimal) string {
	return amount.Round(MoneyDecimals).StringFixed(MoneyDecimals)
}

// roundHalfDown rounds to an integer, ties going toward zero.
func roundHalfDown(d decimal.Decimal) decimal.Decimal {
	abs := d.Abs()
	whole := abs.Floor()
	if abs.Sub(whole).GreaterThan(half) {
		whole = whole.Add(one)
	}

	if d.IsNegative() {
		return whole.Neg()
	}

	return whole
}
