package usecase

import (
	"context"
	"strings"
)

// StaticCurrencyPolicy accepts a fixed list of currency codes.
type StaticCurrencyPolicy struct {
	allowed map[string]struct{}
}

// NewStaticCurrencyPolicy creates a policy from a list of codes.
func NewStaticCurrencyPolicy(codes []string) *StaticCurrencyPolicy {
	allowed := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			allowed[c] = struct{}{}
		}
	}
	return &StaticCurrencyPolicy{allowed: allowed}
}

// Supports reports whether currency is in the list.
func (p *StaticCurrencyPolicy) Supports(currency string) bool {
	_, ok := p.allowed[strings.ToUpper(strings.TrimSpace(currency))]
	return ok
}

// AllowAllTokenPolicy accepts every token.
//
// TODO: replace with a lookup against issued game-launch sessions once the
// launch service exposes them.
type AllowAllTokenPolicy struct{}

// Valid always returns true.
func (AllowAllTokenPolicy) Valid(context.Context, string, string) bool {
	return true
}
