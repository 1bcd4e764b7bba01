package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/gamewallet/internal/adapter/http/dto"
	"github.com/iho/gamewallet/internal/adapter/http/middleware"
	"github.com/iho/gamewallet/internal/domain"
	"github.com/iho/gamewallet/internal/usecase"
)

// BatchService defines the behavior needed by BasicHandler.
type BatchService interface {
	Transaction(ctx context.Context, item domain.BatchItem) (*usecase.BatchResult, error)
	Execute(ctx context.Context, input usecase.BatchInput) (*usecase.BatchResult, error)
}

// BasicHandler serves the basic-auth game transaction routes.
type BasicHandler struct {
	batch   BatchService
	logger  zerolog.Logger
	maxBody int64
}

// NewBasicHandler creates a new BasicHandler.
func NewBasicHandler(batch BatchService, logger zerolog.Logger, maxBody int64) *BasicHandler {
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return &BasicHandler{batch: batch, logger: logger, maxBody: maxBody}
}

// Transaction handles POST /api/transaction.
func (h *BasicHandler) Transaction(w http.ResponseWriter, r *http.Request) {
	var req dto.TransactionRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.batch.Transaction(r.Context(), req.ToDomain())
	h.respond(w, r, "transaction", req.TransactionCode.String(), result, err)
}

// Batch handles POST /api/batch-transactions.
func (h *BasicHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.batch.Execute(r.Context(), req.ToUseCaseInput())
	h.respond(w, r, "batch", req.UserCode, result, err)
}

func (h *BasicHandler) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody)).Decode(req); err != nil {
		h.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("decode request")
		writeJSON(w, http.StatusOK, dto.BasicFailure(dto.CodeBadRequest, dto.MessageBadRequest))
		return false
	}
	if err := dto.Validate(req); err != nil {
		h.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("invalid request")
		writeJSON(w, http.StatusOK, dto.BasicFailure(dto.CodeBadRequest, dto.MessageBadRequest))
		return false
	}
	return true
}

func (h *BasicHandler) respond(w http.ResponseWriter, r *http.Request, operation, ref string, result *usecase.BatchResult, err error) {
	if err != nil {
		code, message := basicErrorFor(err)
		event := h.logger.Info()
		if code == dto.CodeServerError {
			event = h.logger.Error()
		}
		if partner, ok := middleware.PartnerFromContext(r.Context()); ok {
			event = event.Str("partner", partner.Name)
		}
		event.Err(err).Str("operation", operation).Str("ref", ref).Int("error_code", code).Msg("game transaction rejected")
		writeJSON(w, http.StatusOK, dto.BasicFailure(code, message))
		return
	}

	writeJSON(w, http.StatusOK, dto.BasicSuccess(result.Balance))
}
