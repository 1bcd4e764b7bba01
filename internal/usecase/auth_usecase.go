package usecase

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/gamewallet/internal/domain"
)

// AuthUseCase authenticates vendor calls against the partner for a host.
type AuthUseCase struct {
	partners PartnerRepository
	logger   zerolog.Logger
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(partners PartnerRepository, logger zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{partners: partners, logger: logger}
}

// VerifySignature checks the X-Signature of a signed request body.
func (uc *AuthUseCase) VerifySignature(ctx context.Context, host string, body []byte, signature string) error {
	partner, err := uc.partnerFor(ctx, host)
	if err != nil {
		if errors.Is(err, domain.ErrPartnerNotFound) {
			return domain.ErrInvalidSignature
		}
		return err
	}

	if !partner.VerifySignature(body, signature) {
		uc.logger.Warn().Str("host", partner.Host).Msg("signature mismatch")
		return domain.ErrInvalidSignature
	}

	return nil
}

// Authenticate matches basic-auth credentials and returns the partner.
func (uc *AuthUseCase) Authenticate(ctx context.Context, host, clientID, clientSecret string) (*domain.Partner, error) {
	partner, err := uc.partnerFor(ctx, host)
	if err != nil {
		if errors.Is(err, domain.ErrPartnerNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if !partner.MatchCredentials(clientID, clientSecret) {
		uc.logger.Warn().Str("host", partner.Host).Str("client_id", clientID).Msg("basic credentials rejected")
		return nil, domain.ErrUnauthorized
	}

	return partner, nil
}

func (uc *AuthUseCase) partnerFor(ctx context.Context, host string) (*domain.Partner, error) {
	partner, err := uc.partners.GetByHost(ctx, NormalizeHost(host))
	if err != nil {
		return nil, err
	}
	if !partner.Enabled {
		return nil, domain.ErrPartnerNotFound
	}
	return partner, nil
}

// NormalizeHost lower-cases host and strips any port.
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
