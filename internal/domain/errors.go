package domain

import "errors"

var (
	// Request errors
	ErrInvalidRequest   = errors.New("invalid request")
	ErrWrongParameters  = errors.New("wrong parameters")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrWrongCurrency    = errors.New("currency not supported")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidAmount    = errors.New("invalid amount")

	// Account errors
	ErrAccountNotFound        = errors.New("account not found")
	ErrAccountDisabled        = errors.New("account disabled")
	ErrAccountExists          = errors.New("account already exists")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrConcurrentModification = errors.New("account balance changed concurrently")

	// Transaction errors
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrAlreadyRolledBack    = errors.New("transaction already rolled back")
	ErrMoneyLogNotFound     = errors.New("money log not found")

	// Partner errors
	ErrPartnerNotFound = errors.New("partner not found")
)
