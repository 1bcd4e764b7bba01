package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_CheckActive(t *testing.T) {
	enabled := &Account{Status: AccountEnabled}
	if err := enabled.CheckActive(); err != nil {
		t.Errorf("expected enabled account to pass, got %v", err)
	}

	disabled := &Account{Status: AccountDisabled}
	if err := disabled.CheckActive(); !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestAccount_Covers(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		required    decimal.Decimal
		expectError bool
	}{
		{
			name:     "balance above required",
			balance:  decimal.NewFromInt(100),
			required: decimal.NewFromInt(30),
		},
		{
			name:     "balance exactly required",
			balance:  decimal.NewFromInt(30),
			required: decimal.NewFromInt(30),
		},
		{
			name:        "balance below required",
			balance:     decimal.NewFromInt(29),
			required:    decimal.NewFromInt(30),
			expectError: true,
		},
		{
			name:     "sub-cent noise ignored",
			balance:  decimal.RequireFromString("29.999"),
			required: decimal.RequireFromString("29.999"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: tt.balance}
			err := acc.Covers(tt.required)
			if tt.expectError && !errors.Is(err, ErrInsufficientFunds) {
				t.Errorf("expected ErrInsufficientFunds, got %v", err)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccount_ApplyDelta(t *testing.T) {
	tests := []struct {
		name        string
		balance     string
		delta       string
		want        string
		expectError bool
	}{
		{name: "debit", balance: "100", delta: "-30", want: "70"},
		{name: "credit", balance: "70", delta: "15", want: "85"},
		{name: "debit to zero", balance: "70", delta: "-70", want: "0"},
		{name: "overdraw rejected", balance: "70", delta: "-70.01", expectError: true},
		{name: "result floored", balance: "10", delta: "0.005", want: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: decimal.RequireFromString(tt.balance)}
			got, err := acc.ApplyDelta(decimal.RequireFromString(tt.delta))
			if tt.expectError {
				if !errors.Is(err, ErrInsufficientFunds) {
					t.Errorf("expected ErrInsufficientFunds, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
