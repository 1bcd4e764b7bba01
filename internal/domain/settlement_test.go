package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSettle(t *testing.T) {
	d := decimal.RequireFromString

	tests := []struct {
		name         string
		input        SettlementInput
		wantDelta    string
		wantRequired string
		wantAnomaly  bool
	}{
		{
			name:      "win credits win and jackpot",
			input:     SettlementInput{ResultType: ResultWin, BetAmount: d("10"), WinAmount: d("25"), JackpotAmount: d("5")},
			wantDelta: "30", wantRequired: "0",
		},
		{
			name:      "bet_win already debited",
			input:     SettlementInput{ResultType: ResultBetWin, BetAmount: d("10"), WinAmount: d("25"), AlreadyDebited: true},
			wantDelta: "25", wantRequired: "0",
		},
		{
			name:      "bet_win not debited",
			input:     SettlementInput{ResultType: ResultBetWin, BetAmount: d("10"), WinAmount: d("25")},
			wantDelta: "15", wantRequired: "10",
		},
		{
			name:      "bet_lose already debited pays jackpot only",
			input:     SettlementInput{ResultType: ResultBetLose, BetAmount: d("10"), JackpotAmount: d("2"), AlreadyDebited: true},
			wantDelta: "2", wantRequired: "0",
		},
		{
			name:      "bet_lose not debited",
			input:     SettlementInput{ResultType: ResultBetLose, BetAmount: d("10"), JackpotAmount: d("2")},
			wantDelta: "-8", wantRequired: "10",
		},
		{
			name:      "lose pays jackpot",
			input:     SettlementInput{ResultType: ResultLose, BetAmount: d("10"), WinAmount: d("99"), JackpotAmount: d("1.5")},
			wantDelta: "1.5", wantRequired: "0",
		},
		{
			name:      "end ignores jackpot",
			input:     SettlementInput{ResultType: ResultEnd, BetAmount: d("10"), WinAmount: d("25"), JackpotAmount: d("100")},
			wantDelta: "0", wantRequired: "0",
		},
		{
			name:      "unknown type is an anomaly",
			input:     SettlementInput{ResultType: "PUSH", BetAmount: d("10"), WinAmount: d("25")},
			wantDelta: "0", wantRequired: "0", wantAnomaly: true,
		},
		{
			name:      "amounts floored before use",
			input:     SettlementInput{ResultType: ResultWin, WinAmount: d("19.995")},
			wantDelta: "19.99", wantRequired: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Settle(tt.input)
			if !got.Delta.Equal(d(tt.wantDelta)) {
				t.Errorf("delta: expected %s, got %s", tt.wantDelta, got.Delta)
			}
			if !got.RequiredBalance.Equal(d(tt.wantRequired)) {
				t.Errorf("required: expected %s, got %s", tt.wantRequired, got.RequiredBalance)
			}
			if got.Anomaly != tt.wantAnomaly {
				t.Errorf("anomaly: expected %v, got %v", tt.wantAnomaly, got.Anomaly)
			}
			if got.Description == "" {
				t.Error("expected a description")
			}
		})
	}
}

func TestSettlement_Check(t *testing.T) {
	s := Settle(SettlementInput{ResultType: ResultBetWin, BetAmount: decimal.NewFromInt(10), WinAmount: decimal.NewFromInt(25)})

	if err := s.Check(decimal.NewFromInt(70)); err != nil {
		t.Errorf("expected balance 70 to cover bet, got %v", err)
	}
	if err := s.Check(decimal.NewFromInt(9)); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestParseResultType(t *testing.T) {
	if rt, ok := ParseResultType(" bet_win "); !ok || rt != ResultBetWin {
		t.Errorf("expected BET_WIN, got %q ok=%v", rt, ok)
	}
	if _, ok := ParseResultType("DRAW"); ok {
		t.Error("expected DRAW to be rejected")
	}
}
