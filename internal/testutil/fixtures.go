// Package testutil provides a real PostgreSQL database for integration tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gamewallet/internal/domain"
	"github.com/iho/gamewallet/internal/infrastructure/postgres"
	"github.com/iho/gamewallet/internal/infrastructure/postgres/generated"
)

// TestDB provides isolated test database connections.
type TestDB struct {
	Pool    *pgxpool.Pool
	Queries *generated.Queries
	t       *testing.T
}

// NewTestDB connects to DATABASE_URL and migrates it. The test is skipped
// when DATABASE_URL is unset or -short is given.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	if err := postgres.RunMigrations(dbURL, MigrationsPath(), zerolog.Nop()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	db := &TestDB{
		Pool:    pool,
		Queries: generated.New(pool),
		t:       t,
	}
	t.Cleanup(db.Cleanup)

	return db
}

// MigrationsPath returns the absolute path of the repository migrations.
func MigrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

// Cleanup closes the database connection.
func (db *TestDB) Cleanup() {
	db.Pool.Close()
}

// TruncateAll removes all data from tables.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx, `
		TRUNCATE TABLE outbox_events, transaction_records, money_log_entries, partners, accounts CASCADE;
	`)
	if err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}

// CreatePlayer creates an enabled player whose opening balance is balance.
func (db *TestDB) CreatePlayer(ctx context.Context, name string, balance decimal.Decimal) *domain.Account {
	db.t.Helper()

	now := time.Now().UTC()
	id := ulid.Make().String()

	var numeric pgtype.Numeric
	if err := numeric.Scan(balance.String()); err != nil {
		db.t.Fatalf("failed to convert balance: %v", err)
	}

	ts := pgtype.Timestamptz{Time: now, Valid: true}

	err := db.Queries.CreateAccount(ctx, generated.CreateAccountParams{
		ID:             id,
		Name:           name,
		Balance:        numeric,
		OpeningBalance: numeric,
		Status:         int16(domain.AccountEnabled),
		CreatedAt:      ts,
		UpdatedAt:      ts,
	})
	if err != nil {
		db.t.Fatalf("failed to create test account: %v", err)
	}

	return &domain.Account{
		ID:             id,
		Name:           name,
		Balance:        balance,
		OpeningBalance: balance,
		Status:         domain.AccountEnabled,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Balance reads the stored balance of a player.
func (db *TestDB) Balance(ctx context.Context, name string) decimal.Decimal {
	db.t.Helper()

	var balance decimal.Decimal
	if err := db.Pool.QueryRow(ctx, `SELECT balance::text FROM accounts WHERE name = $1`, name).Scan(&balance); err != nil {
		db.t.Fatalf("failed to read balance: %v", err)
	}
	return balance
}

// CountRows returns the number of rows in table.
func (db *TestDB) CountRows(ctx context.Context, table string) int {
	db.t.Helper()

	var n int
	if err := db.Pool.QueryRow(ctx, `SELECT count(*) FROM `+table).Scan(&n); err != nil {
		db.t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
