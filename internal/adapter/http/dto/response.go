package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
	"github.com/iho/gamewallet/internal/usecase"
)

// Signed surface statuses.
const (
	StatusOK                  = "SC_OK"
	StatusInvalidRequest      = "SC_INVALID_REQUEST"
	StatusWrongParameters     = "SC_WRONG_PARAMETERS"
	StatusInvalidSignature    = "SC_INVALID_SIGNATURE"
	StatusWrongCurrency       = "SC_WRONG_CURRENCY"
	StatusInvalidToken        = "SC_INVALID_TOKEN"
	StatusUserNotExists       = "SC_USER_NOT_EXISTS"
	StatusUserDisabled        = "SC_USER_DISABLED"
	StatusInsufficientFunds   = "SC_INSUFFICIENT_FUNDS"
	StatusTransactionNotExist = "SC_TRANSACTION_NOT_EXISTS"
	StatusInternalError       = "SC_INTERNAL_ERROR"
)

// WalletResponse is the envelope of every signed response.
type WalletResponse struct {
	TraceID string      `json:"traceId"`
	Status  string      `json:"status"`
	Data    *WalletData `json:"data,omitempty"`
}

// WalletData carries the post-operation balance.
type WalletData struct {
	Username  string `json:"username"`
	Currency  string `json:"currency"`
	Balance   Money  `json:"balance"`
	Timestamp int64  `json:"timestamp"`
}

// WalletSuccess builds an SC_OK response from a use case result.
func WalletSuccess(traceID, currency string, result *usecase.BalanceResult) *WalletResponse {
	return &WalletResponse{
		TraceID: traceID,
		Status:  StatusOK,
		Data: &WalletData{
			Username:  result.Username,
			Currency:  currency,
			Balance:   Money(result.Balance),
			Timestamp: result.Timestamp.UnixMilli(),
		},
	}
}

// WalletFailure builds a response carrying only a status.
func WalletFailure(traceID, status string) *WalletResponse {
	return &WalletResponse{TraceID: traceID, Status: status}
}

// Basic surface error codes.
const (
	CodeOK                  = 0
	CodeUserNotExists       = 2
	CodeInsufficientBalance = 4
	CodeDuplicate           = 6
	CodeBadRequest          = 400
	CodeUnauthorized        = 401
	CodeServerError         = 500
)

// Basic surface error messages.
const (
	MessageBadRequest          = "BAD_REQUEST"
	MessageUnauthorized        = "UNAUTHORIZED"
	MessageUserNotExists       = "USER_DOES_NOT_EXIST"
	MessageInsufficientBalance = "INSUFFICIENT_USER_BALANCE"
	MessageDuplicate           = "DUPLICATE_TRANSACTION"
	MessageServerError         = "UNKNOWN_SERVER_ERROR"
)

// BasicResponse is the envelope of the basic-auth surface. On success
// Message holds the new balance.
type BasicResponse struct {
	Success   bool `json:"success"`
	Message   any  `json:"message"`
	ErrorCode int  `json:"errorCode"`
}

// BasicSuccess builds a success envelope carrying balance.
func BasicSuccess(balance decimal.Decimal) *BasicResponse {
	return &BasicResponse{Success: true, Message: Money(balance), ErrorCode: CodeOK}
}

// BasicFailure builds an error envelope.
func BasicFailure(code int, message string) *BasicResponse {
	return &BasicResponse{Success: false, Message: message, ErrorCode: code}
}

// AccountResponse represents an account in admin responses.
type AccountResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Status         string          `json:"status"`
	Balance        decimal.Decimal `json:"balance"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		Status:         accountStatus(a.Status),
		Balance:        a.Balance,
		OpeningBalance: a.OpeningBalance,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func accountStatus(s domain.AccountStatus) string {
	if s == domain.AccountEnabled {
		return "enabled"
	}
	return "disabled"
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// ConsistencyResponse is the conservation check of one account.
type ConsistencyResponse struct {
	AccountID         string          `json:"account_id"`
	Name              string          `json:"name"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	OpeningBalance    decimal.Decimal `json:"opening_balance"`
	LoggedDelta       decimal.Decimal `json:"logged_delta"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	EntryCount        int64           `json:"entry_count"`
	IsConsistent      bool            `json:"is_consistent"`
	CheckedAt         time.Time       `json:"checked_at"`
}

// ConsistencyFromResult converts a reconciliation result to response.
func ConsistencyFromResult(r *usecase.ReconciliationResult) *ConsistencyResponse {
	return &ConsistencyResponse{
		AccountID:         r.AccountID,
		Name:              r.Name,
		RecordedBalance:   r.RecordedBalance,
		OpeningBalance:    r.OpeningBalance,
		LoggedDelta:       r.LoggedDelta,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		EntryCount:        r.EntryCount,
		IsConsistent:      r.IsReconciled,
		CheckedAt:         r.LastChecked,
	}
}

// ConsistencyReportResponse is the conservation report for all accounts.
type ConsistencyReportResponse struct {
	CheckedAt          time.Time              `json:"checked_at"`
	TotalAccounts      int                    `json:"total_accounts"`
	ConsistentAccounts int                    `json:"consistent_accounts"`
	Discrepancies      []*ConsistencyResponse `json:"discrepancies"`
}

// ConsistencyReportFromDomain converts a reconciliation report to response.
func ConsistencyReportFromDomain(r *usecase.ReconciliationReport) *ConsistencyReportResponse {
	discrepancies := make([]*ConsistencyResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ConsistencyFromResult(d)
	}

	return &ConsistencyReportResponse{
		CheckedAt:          r.CheckedAt,
		TotalAccounts:      r.TotalAccounts,
		ConsistentAccounts: r.ReconciledAccounts,
		Discrepancies:      discrepancies,
	}
}

// ErrorResponse represents an error on the admin surface.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
