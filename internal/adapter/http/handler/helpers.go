package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/gamewallet/internal/adapter/http/dto"
	"github.com/iho/gamewallet/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an admin error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// statusFor maps a domain error to a signed-surface status. Request errors
// use the route's malformed status.
func statusFor(err error, malformed string) string {
	switch {
	case errors.Is(err, domain.ErrWrongParameters):
		return dto.StatusWrongParameters
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrInvalidAccountName):
		return malformed
	case errors.Is(err, domain.ErrInvalidSignature):
		return dto.StatusInvalidSignature
	case errors.Is(err, domain.ErrWrongCurrency):
		return dto.StatusWrongCurrency
	case errors.Is(err, domain.ErrInvalidToken):
		return dto.StatusInvalidToken
	case errors.Is(err, domain.ErrAccountNotFound):
		return dto.StatusUserNotExists
	case errors.Is(err, domain.ErrAccountDisabled):
		return dto.StatusUserDisabled
	case errors.Is(err, domain.ErrInsufficientFunds):
		return dto.StatusInsufficientFunds
	case errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrAlreadyRolledBack):
		return dto.StatusTransactionNotExist
	default:
		return dto.StatusInternalError
	}
}

// basicErrorFor maps a domain error to a basic-surface code and message.
func basicErrorFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrWrongParameters),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge):
		return dto.CodeBadRequest, dto.MessageBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return dto.CodeUnauthorized, dto.MessageUnauthorized
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrAccountDisabled):
		return dto.CodeUserNotExists, dto.MessageUserNotExists
	case errors.Is(err, domain.ErrInsufficientFunds):
		return dto.CodeInsufficientBalance, dto.MessageInsufficientBalance
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return dto.CodeDuplicate, dto.MessageDuplicate
	default:
		return dto.CodeServerError, dto.MessageServerError
	}
}

// adminStatusFor maps domain errors to HTTP status codes on the admin surface.
func adminStatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAccountName),
		errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
