package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/gamewallet/internal/adapter/http/dto"
	"github.com/iho/gamewallet/internal/usecase"
)

// ReconciliationService defines the behavior needed by ConsistencyHandler.
type ReconciliationService interface {
	ReconcileAccount(ctx context.Context, name string) (*usecase.ReconciliationResult, error)
	GenerateReconciliationReport(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// ReconciliationObserver records the outcome of a full report.
type ReconciliationObserver interface {
	ReconciliationCompleted(total, discrepancies int)
}

// ConsistencyHandler serves money log conservation reports.
type ConsistencyHandler struct {
	reconciler ReconciliationService
	observer   ReconciliationObserver
	logger     zerolog.Logger
}

// NewConsistencyHandler creates a new ConsistencyHandler. observer may be nil.
func NewConsistencyHandler(reconciler ReconciliationService, observer ReconciliationObserver, logger zerolog.Logger) *ConsistencyHandler {
	return &ConsistencyHandler{reconciler: reconciler, observer: observer, logger: logger}
}

// Report checks every account.
func (h *ConsistencyHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciler.GenerateReconciliationReport(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("consistency report failed")
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	if h.observer != nil {
		h.observer.ReconciliationCompleted(report.TotalAccounts, len(report.Discrepancies))
	}
	if len(report.Discrepancies) > 0 {
		h.logger.Warn().
			Int("accounts", report.TotalAccounts).
			Int("discrepancies", len(report.Discrepancies)).
			Msg("money log does not match balances")
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyReportFromDomain(report))
}

// Account checks a single account by player name.
func (h *ConsistencyHandler) Account(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing account name", "")
		return
	}

	result, err := h.reconciler.ReconcileAccount(r.Context(), name)
	if err != nil {
		writeError(w, adminStatusFor(err), "failed to check consistency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromResult(result))
}
