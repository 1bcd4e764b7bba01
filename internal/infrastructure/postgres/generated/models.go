package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Account struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Balance        pgtype.Numeric     `json:"balance"`
	OpeningBalance pgtype.Numeric     `json:"opening_balance"`
	Status         int16              `json:"status"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

type MoneyLogEntry struct {
	ID            string             `json:"id"`
	AccountID     string             `json:"account_id"`
	Amount        pgtype.Numeric     `json:"amount"`
	BalanceBefore pgtype.Numeric     `json:"balance_before"`
	BalanceAfter  pgtype.Numeric     `json:"balance_after"`
	Sign          int16              `json:"sign"`
	OperateType   int32              `json:"operate_type"`
	GameCode      string             `json:"game_code"`
	Description   string             `json:"description"`
	Metadata      []byte             `json:"metadata"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

type OutboxEvent struct {
	ID            string             `json:"id"`
	AggregateID   string             `json:"aggregate_id"`
	AggregateType string             `json:"aggregate_type"`
	EventType     string             `json:"event_type"`
	Payload       []byte             `json:"payload"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	Published     bool               `json:"published"`
	PublishedAt   pgtype.Timestamptz `json:"published_at"`
}

type Partner struct {
	ID           string             `json:"id"`
	Host         string             `json:"host"`
	VendorHost   string             `json:"vendor_host"`
	Name         string             `json:"name"`
	ClientID     string             `json:"client_id"`
	ClientSecret string             `json:"client_secret"`
	Enabled      bool               `json:"enabled"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

type TransactionRecord struct {
	ID                    string             `json:"id"`
	ExternalTransactionID string             `json:"external_transaction_id"`
	AccountID             string             `json:"account_id"`
	Kind                  string             `json:"kind"`
	Amount                pgtype.Numeric     `json:"amount"`
	Status                string             `json:"status"`
	TraceID               string             `json:"trace_id"`
	BetID                 string             `json:"bet_id"`
	TransactionRef        string             `json:"transaction_ref"`
	GameCode              string             `json:"game_code"`
	RoundID               string             `json:"round_id"`
	MoneyLogID            pgtype.Text        `json:"money_log_id"`
	Metadata              []byte             `json:"metadata"`
	CreatedAt             pgtype.Timestamptz `json:"created_at"`
	UpdatedAt             pgtype.Timestamptz `json:"updated_at"`
}
