package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InverseDelta is the exact negation of the entry's signed effect.
func InverseDelta(original *MoneyLogEntry) decimal.Decimal {
	return original.SignedAmount().Neg()
}

// RollbackDescription describes the reversal of original.
func RollbackDescription(original *TransactionRecord, inverse decimal.Decimal) string {
	return fmt.Sprintf("rollback of %s %s (bet %s, round %s): %s",
		original.Kind, original.ExternalTransactionID, original.BetID, original.RoundID, FormatMoney(inverse))
}
