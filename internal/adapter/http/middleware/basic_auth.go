package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/gamewallet/internal/adapter/http/dto"
	"github.com/iho/gamewallet/internal/domain"
)

// AdminTokenHeader carries the operator token of the admin routes.
const AdminTokenHeader = "X-Admin-Token"

type partnerKey struct{}

// Authenticator matches basic-auth credentials against the partner of host.
type Authenticator interface {
	Authenticate(ctx context.Context, host, clientID, clientSecret string) (*domain.Partner, error)
}

// AuthObserver is told about rejected credentials.
type AuthObserver interface {
	AuthFailed(surface string)
}

// BasicAuth guards the basic-auth game transaction routes. Rejections use
// the basic envelope with HTTP 200.
func BasicAuth(auth Authenticator, observer AuthObserver, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID, clientSecret, ok := r.BasicAuth()
			if !ok {
				rejectBasic(w, observer, dto.CodeUnauthorized, dto.MessageUnauthorized)
				return
			}

			partner, err := auth.Authenticate(r.Context(), r.Host, clientID, clientSecret)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					rejectBasic(w, observer, dto.CodeUnauthorized, dto.MessageUnauthorized)
					return
				}
				logger.Error().Err(err).Str("host", r.Host).Msg("basic authentication failed")
				writeBasic(w, dto.BasicFailure(dto.CodeServerError, dto.MessageServerError))
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), partnerKey{}, partner)))
		})
	}
}

// PartnerFromContext returns the partner authenticated by BasicAuth.
func PartnerFromContext(ctx context.Context) (*domain.Partner, bool) {
	partner, ok := ctx.Value(partnerKey{}).(*domain.Partner)
	return partner, ok
}

func rejectBasic(w http.ResponseWriter, observer AuthObserver, code int, message string) {
	if observer != nil {
		observer.AuthFailed("basic")
	}
	writeBasic(w, dto.BasicFailure(code, message))
}

func writeBasic(w http.ResponseWriter, resp *dto.BasicResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// AdminToken guards operational routes with a static X-Admin-Token.
func AdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			given := r.Header.Get(AdminTokenHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "unauthorized"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
