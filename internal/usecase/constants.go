package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// MaxBatchItems bounds the number of lines in a batch request
	MaxBatchItems = 500

	// ReconciliationWorkers is the pool size used when checking all accounts
	ReconciliationWorkers = 8

	// ReconciliationPageSize is the number of accounts loaded per page
	ReconciliationPageSize = 500
)
