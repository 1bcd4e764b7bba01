package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFloorTo(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int32
		want     string
	}{
		{name: "floor boundary does not round up", amount: "19.995", decimals: 2, want: "19.99"},
		{name: "float noise below boundary", amount: "19.9999", decimals: 2, want: "20"},
		{name: "already at precision", amount: "70.5", decimals: 2, want: "70.5"},
		{name: "truncates extra digits", amount: "85.129", decimals: 2, want: "85.12"},
		{name: "integer", amount: "100", decimals: 2, want: "100"},
		{name: "zero", amount: "0", decimals: 2, want: "0"},
		{name: "negative floors away from zero", amount: "-1.234", decimals: 2, want: "-1.24"},
		{name: "negative exact", amount: "-15", decimals: 2, want: "-15"},
		{name: "zero decimals", amount: "9.94", decimals: 0, want: "9"},
		{name: "guard digit rounds before floor", amount: "9.96", decimals: 0, want: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FloorTo(decimal.RequireFromString(tt.amount), tt.decimals)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("FloorTo(%s, %d) = %s, want %s", tt.amount, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestMoneyFloor(t *testing.T) {
	got := MoneyFloor(decimal.RequireFromString("19.995"))
	if got.StringFixed(2) != "19.99" {
		t.Fatalf("expected 19.99, got %s", got.StringFixed(2))
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{amount: "70", want: "70.00"},
		{amount: "85.5", want: "85.50"},
		{amount: "1.005", want: "1.01"},
		{amount: "1234567.891", want: "1234567.89"},
		{amount: "0", want: "0.00"},
	}

	for _, tt := range tests {
		if got := FormatMoney(decimal.RequireFromString(tt.amount)); got != tt.want {
			t.Errorf("FormatMoney(%s) = %s, want %s", tt.amount, got, tt.want)
		}
	}
}
