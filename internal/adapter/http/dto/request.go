package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
	"github.com/iho/gamewallet/internal/usecase"
)

// TraceRequest extracts the traceId of a signed body before it is validated.
type TraceRequest struct {
	TraceID Text `json:"traceId"`
}

// BalanceRequest represents a signed balance query.
type BalanceRequest struct {
	TraceID  Text   `json:"traceId" validate:"required"`
	Username string `json:"username" validate:"required"`
	Currency string `json:"currency" validate:"required"`
	Token    string `json:"token" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *BalanceRequest) ToUseCaseInput() usecase.BalanceInput {
	return usecase.BalanceInput{Envelope: envelope(r.TraceID, r.Username, r.Currency, r.Token)}
}

// BetRequest represents a signed bet debit.
type BetRequest struct {
	TraceID               Text             `json:"traceId" validate:"required"`
	Username              string           `json:"username" validate:"required"`
	TransactionID         Text             `json:"transactionId" validate:"required"`
	BetID                 Text             `json:"betId" validate:"required"`
	ExternalTransactionID Text             `json:"externalTransactionId" validate:"required"`
	Amount                *decimal.Decimal `json:"amount" validate:"required"`
	Currency              string           `json:"currency" validate:"required"`
	Token                 string           `json:"token" validate:"required"`
	GameCode              string           `json:"gameCode" validate:"required"`
	RoundID               Text             `json:"roundId" validate:"required"`
	Timestamp             *int64           `json:"timestamp" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *BetRequest) ToUseCaseInput() usecase.BetInput {
	return usecase.BetInput{
		Envelope:              envelope(r.TraceID, r.Username, r.Currency, r.Token),
		TransactionID:         r.TransactionID.String(),
		BetID:                 r.BetID.String(),
		ExternalTransactionID: r.ExternalTransactionID.String(),
		GameCode:              r.GameCode,
		RoundID:               r.RoundID.String(),
		Amount:                amountOf(r.Amount),
		Timestamp:             int64Of(r.Timestamp),
	}
}

// BetResultRequest represents a signed bet settlement.
type BetResultRequest struct {
	TraceID               Text             `json:"traceId" validate:"required"`
	Username              string           `json:"username" validate:"required"`
	TransactionID         Text             `json:"transactionId" validate:"required"`
	BetID                 Text             `json:"betId" validate:"required"`
	ExternalTransactionID Text             `json:"externalTransactionId" validate:"required"`
	RoundID               Text             `json:"roundId" validate:"required"`
	BetAmount             *decimal.Decimal `json:"betAmount" validate:"required"`
	WinAmount             *decimal.Decimal `json:"winAmount" validate:"required"`
	EffectiveTurnover     *decimal.Decimal `json:"effectiveTurnover" validate:"required"`
	JackpotAmount         *decimal.Decimal `json:"jackpotAmount,omitempty"`
	ResultType            string           `json:"resultType" validate:"required,resulttype"`
	IsFreespin            *Flag            `json:"isFreespin" validate:"required"`
	IsEndRound            *Flag            `json:"isEndRound" validate:"required"`
	Currency              string           `json:"currency" validate:"required"`
	Token                 string           `json:"token" validate:"required"`
	GameCode              string           `json:"gameCode" validate:"required"`
	BetTime               *int64           `json:"betTime" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *BetResultRequest) ToUseCaseInput() usecase.BetResultInput {
	return usecase.BetResultInput{
		Envelope:              envelope(r.TraceID, r.Username, r.Currency, r.Token),
		TransactionID:         r.TransactionID.String(),
		BetID:                 r.BetID.String(),
		ExternalTransactionID: r.ExternalTransactionID.String(),
		RoundID:               r.RoundID.String(),
		GameCode:              r.GameCode,
		ResultType:            r.ResultType,
		BetAmount:             amountOf(r.BetAmount),
		WinAmount:             amountOf(r.WinAmount),
		JackpotAmount:         amountOf(r.JackpotAmount),
		EffectiveTurnover:     amountOf(r.EffectiveTurnover),
		BetTime:               int64Of(r.BetTime),
		IsFreespin:            r.IsFreespin.Bool(),
		IsEndRound:            r.IsEndRound.Bool(),
	}
}

// BetCreditRequest represents a signed credit, optionally a refund.
type BetCreditRequest struct {
	TraceID               Text             `json:"traceId" validate:"required"`
	Username              string           `json:"username" validate:"required"`
	TransactionID         Text             `json:"transactionId" validate:"required"`
	BetID                 Text             `json:"betId" validate:"required"`
	ExternalTransactionID Text             `json:"externalTransactionId,omitempty"`
	RoundID               Text             `json:"roundId" validate:"required"`
	IsRefund              *Flag            `json:"isRefund" validate:"required"`
	Amount                *decimal.Decimal `json:"amount" validate:"required"`
	BetAmount             *decimal.Decimal `json:"betAmount" validate:"required"`
	WinAmount             *decimal.Decimal `json:"winAmount" validate:"required"`
	EffectiveTurnover     *decimal.Decimal `json:"effectiveTurnover" validate:"required"`
	WinLoss               *decimal.Decimal `json:"winLoss" validate:"required"`
	Currency              string           `json:"currency" validate:"required"`
	Token                 string           `json:"token" validate:"required"`
	GameCode              string           `json:"gameCode" validate:"required"`
	BetTime               *int64           `json:"betTime" validate:"required"`
	Timestamp             *int64           `json:"timestamp" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *BetCreditRequest) ToUseCaseInput() usecase.BetCreditInput {
	return usecase.BetCreditInput{
		Envelope:              envelope(r.TraceID, r.Username, r.Currency, r.Token),
		TransactionID:         r.TransactionID.String(),
		BetID:                 r.BetID.String(),
		ExternalTransactionID: r.ExternalTransactionID.String(),
		RoundID:               r.RoundID.String(),
		GameCode:              r.GameCode,
		Amount:                amountOf(r.Amount),
		BetAmount:             amountOf(r.BetAmount),
		WinAmount:             amountOf(r.WinAmount),
		EffectiveTurnover:     amountOf(r.EffectiveTurnover),
		WinLoss:               amountOf(r.WinLoss),
		BetTime:               int64Of(r.BetTime),
		Timestamp:             int64Of(r.Timestamp),
		IsRefund:              r.IsRefund.Bool(),
	}
}

// BetDebitRequest represents a signed extra debit.
type BetDebitRequest struct {
	TraceID               Text             `json:"traceId" validate:"required"`
	Username              string           `json:"username" validate:"required"`
	TransactionID         Text             `json:"transactionId" validate:"required"`
	BetID                 Text             `json:"betId,omitempty"`
	ExternalTransactionID Text             `json:"externalTransactionId,omitempty"`
	RoundID               Text             `json:"roundId" validate:"required"`
	Amount                *decimal.Decimal `json:"amount" validate:"required"`
	TakeAll               *Flag            `json:"takeAll,omitempty"`
	Currency              string           `json:"currency" validate:"required"`
	Token                 string           `json:"token,omitempty"`
	GameCode              string           `json:"gameCode" validate:"required"`
	Timestamp             *int64           `json:"timestamp" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *BetDebitRequest) ToUseCaseInput() usecase.BetDebitInput {
	return usecase.BetDebitInput{
		Envelope:              envelope(r.TraceID, r.Username, r.Currency, r.Token),
		TransactionID:         r.TransactionID.String(),
		BetID:                 r.BetID.String(),
		ExternalTransactionID: r.ExternalTransactionID.String(),
		RoundID:               r.RoundID.String(),
		GameCode:              r.GameCode,
		Amount:                amountOf(r.Amount),
		Timestamp:             int64Of(r.Timestamp),
		TakeAll:               r.TakeAll.Bool(),
	}
}

// AdjustmentRequest represents a signed correction to an existing round.
type AdjustmentRequest struct {
	TraceID               Text             `json:"traceId" validate:"required"`
	Username              string           `json:"username" validate:"required"`
	TransactionID         Text             `json:"transactionId" validate:"required"`
	ExternalTransactionID Text             `json:"externalTransactionId" validate:"required"`
	RoundID               Text             `json:"roundId" validate:"required"`
	Amount                *decimal.Decimal `json:"amount" validate:"required"`
	Currency              string           `json:"currency" validate:"required"`
	Token                 string           `json:"token,omitempty"`
	GameCode              string           `json:"gameCode" validate:"required"`
	Timestamp             *int64           `json:"timestamp" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *AdjustmentRequest) ToUseCaseInput() usecase.AdjustmentInput {
	return usecase.AdjustmentInput{
		Envelope:              envelope(r.TraceID, r.Username, r.Currency, r.Token),
		TransactionID:         r.TransactionID.String(),
		ExternalTransactionID: r.ExternalTransactionID.String(),
		RoundID:               r.RoundID.String(),
		GameCode:              r.GameCode,
		Amount:                amountOf(r.Amount),
		Timestamp:             int64Of(r.Timestamp),
	}
}

// RollbackRequest represents a signed reversal of an earlier transaction.
type RollbackRequest struct {
	TraceID               Text   `json:"traceId" validate:"required"`
	Username              string `json:"username" validate:"required"`
	TransactionID         Text   `json:"transactionId" validate:"required"`
	BetID                 Text   `json:"betId" validate:"required"`
	ExternalTransactionID Text   `json:"externalTransactionId" validate:"required"`
	RoundID               Text   `json:"roundId" validate:"required"`
	GameCode              string `json:"gameCode" validate:"required"`
	Currency              string `json:"currency" validate:"required"`
	Token                 string `json:"token,omitempty"`
	Timestamp             *int64 `json:"timestamp" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *RollbackRequest) ToUseCaseInput() usecase.RollbackInput {
	return usecase.RollbackInput{
		Envelope:              envelope(r.TraceID, r.Username, r.Currency, r.Token),
		TransactionID:         r.TransactionID.String(),
		BetID:                 r.BetID.String(),
		ExternalTransactionID: r.ExternalTransactionID.String(),
		RoundID:               r.RoundID.String(),
		GameCode:              r.GameCode,
		Timestamp:             int64Of(r.Timestamp),
	}
}

func envelope(traceID Text, username, currency, token string) usecase.Envelope {
	return usecase.Envelope{
		TraceID:  traceID.String(),
		Username: username,
		Currency: currency,
		Token:    token,
	}
}

// TransactionRequest is one game transaction on the basic-auth surface.
type TransactionRequest struct {
	Detail          any              `json:"detail,omitempty"`
	UserCode        string           `json:"userCode" validate:"required"`
	VendorCode      string           `json:"vendorCode" validate:"required"`
	GameCode        string           `json:"gameCode" validate:"required"`
	HistoryID       Text             `json:"historyId" validate:"required"`
	RoundID         Text             `json:"roundId" validate:"required"`
	GameType        *int             `json:"gameType" validate:"required,oneof=1 2 3 4"`
	TransactionCode Text             `json:"transactionCode" validate:"required"`
	Amount          *decimal.Decimal `json:"amount" validate:"required"`
	CreatedAt       Text             `json:"createdAt" validate:"required"`
	IsFinished      *Flag            `json:"isFinished" validate:"required"`
	IsCanceled      *Flag            `json:"isCanceled" validate:"required"`
}

// ToDomain converts to a batch item.
func (r *TransactionRequest) ToDomain() domain.BatchItem {
	gameType := 0
	if r.GameType != nil {
		gameType = *r.GameType
	}

	return domain.BatchItem{
		Detail:          r.Detail,
		UserCode:        r.UserCode,
		VendorCode:      r.VendorCode,
		GameCode:        r.GameCode,
		HistoryID:       r.HistoryID.String(),
		RoundID:         r.RoundID.String(),
		TransactionCode: r.TransactionCode.String(),
		CreatedAt:       r.CreatedAt.String(),
		Amount:          amountOf(r.Amount),
		GameType:        gameType,
		IsFinished:      r.IsFinished.Bool(),
		IsCanceled:      r.IsCanceled.Bool(),
	}
}

// BatchRequest carries several game transactions for one player.
type BatchRequest struct {
	UserCode     string               `json:"userCode" validate:"required"`
	Transactions []TransactionRequest `json:"transactions" validate:"required,min=1,dive"`
}

// ToUseCaseInput converts to use case input.
func (r *BatchRequest) ToUseCaseInput() usecase.BatchInput {
	items := make([]domain.BatchItem, len(r.Transactions))
	for i := range r.Transactions {
		items[i] = r.Transactions[i].ToDomain()
	}

	return usecase.BatchInput{
		UserCode: r.UserCode,
		Items:    items,
	}
}

// CreateAccountRequest represents a request to create a player account.
type CreateAccountRequest struct {
	Name           string           `json:"name" validate:"required,max=64"`
	OpeningBalance *decimal.Decimal `json:"opening_balance,omitempty"`
	Disabled       bool             `json:"disabled,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:           r.Name,
		OpeningBalance: amountOf(r.OpeningBalance),
		Disabled:       r.Disabled,
	}
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `validate:"min=1,max=100"`
	Offset int `validate:"min=0"`
}
