package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/gamewallet/internal/adapter/http/dto"
	"github.com/iho/gamewallet/internal/domain"
	"github.com/iho/gamewallet/internal/usecase"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body.
const SignatureHeader = "X-Signature"

// DefaultMaxBodyBytes bounds request bodies when no limit is configured.
const DefaultMaxBodyBytes = 1 << 20

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	Balance(ctx context.Context, input usecase.BalanceInput) (*usecase.BalanceResult, error)
	Bet(ctx context.Context, input usecase.BetInput) (*usecase.BalanceResult, error)
	BetResult(ctx context.Context, input usecase.BetResultInput) (*usecase.BalanceResult, error)
	BetCredit(ctx context.Context, input usecase.BetCreditInput) (*usecase.BalanceResult, error)
	BetDebit(ctx context.Context, input usecase.BetDebitInput) (*usecase.BalanceResult, error)
	Adjustment(ctx context.Context, input usecase.AdjustmentInput) (*usecase.BalanceResult, error)
	Rollback(ctx context.Context, input usecase.RollbackInput) (*usecase.BalanceResult, error)
}

// SignatureVerifier checks a signed body against the partner of host.
type SignatureVerifier interface {
	VerifySignature(ctx context.Context, host string, body []byte, signature string) error
}

// AuthObserver is told about rejected credentials.
type AuthObserver interface {
	AuthFailed(surface string)
}

type nopAuthObserver struct{}

func (nopAuthObserver) AuthFailed(string) {}

// WalletConfig holds the dependencies of WalletHandler.
type WalletConfig struct {
	Wallet       WalletService
	Verifier     SignatureVerifier
	Observer     AuthObserver // optional
	Logger       zerolog.Logger
	Currency     string // reported in every success response
	MaxBodyBytes int64
}

// WalletHandler serves the signed vendor wallet routes. Every response is
// HTTP 200; the status field carries the outcome.
type WalletHandler struct {
	wallet   WalletService
	verifier SignatureVerifier
	observer AuthObserver
	logger   zerolog.Logger
	currency string
	maxBody  int64
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(cfg WalletConfig) *WalletHandler {
	if cfg.Observer == nil {
		cfg.Observer = nopAuthObserver{}
	}
	if cfg.Currency == "" {
		cfg.Currency = "CNY"
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return &WalletHandler{
		wallet:   cfg.Wallet,
		verifier: cfg.Verifier,
		observer: cfg.Observer,
		logger:   cfg.Logger,
		currency: strings.ToUpper(cfg.Currency),
		maxBody:  cfg.MaxBodyBytes,
	}
}

// Balance handles POST /api/wallet/balance.
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	var req dto.BalanceRequest
	h.handle(w, r, "balance", dto.StatusWrongParameters, &req, func(ctx context.Context) (*usecase.BalanceResult, error) {
		return h.wallet.Balance(ctx, req.ToUseCaseInput())
	})
}

// Bet handles POST /api/wallet/bet.
func (h *WalletHandler) Bet(w http.ResponseWriter, r *http.Request) {
	var req dto.BetRequest
	h.handle(w, r, "bet", dto.StatusWrongParameters, &req, func(ctx context.Context) (*usecase.BalanceResult, error) {
		return h.wallet.Bet(ctx, req.ToUseCaseInput())
	})
}

// BetResult handles POST /api/wallet/bet-result.
func (h *WalletHandler) BetResult(w http.ResponseWriter, r *http.Request) {
	var req dto.BetResultRequest
	h.handle(w, r, "bet_result", dto.StatusInvalidRequest, &req, func(ctx context.Context) (*usecase.BalanceResult, error) {
		return h.wallet.BetResult(ctx, req.ToUseCaseInput())
	})
}

// BetCredit handles POST /api/wallet/bet-credit.
func (h *WalletHandler) BetCredit(w http.ResponseWriter, r *http.Request) {
	var req dto.BetCreditRequest
	h.handle(w, r, "bet_credit", dto.StatusWrongParameters, &req, func(ctx context.Context) (*usecase.BalanceResult, error) {
		return h.wallet.BetCredit(ctx, req.ToUseCaseInput())
	})
}

// BetDebit handles POST /api/wallet/bet-debit.
func (h *WalletHandler) BetDebit(w http.ResponseWriter, r *http.Request) {
	var req dto.BetDebitRequest
	h.handle(w, r, "bet_debit", dto.StatusWrongParameters, &req, func(ctx context.Context) (*usecase.BalanceResult, error) {
		return h.wallet.BetDebit(ctx, req.ToUseCaseInput())
	})
}

// Adjustment handles POST /api/wallet/adjustment.
func (h *WalletHandler) Adjustment(w http.ResponseWriter, r *http.Request) {
	var req dto.AdjustmentRequest
	h.handle(w, r, "adjustment", dto.StatusWrongParameters, &req, func(ctx context.Context) (*usecase.BalanceResult, error) {
		return h.wallet.Adjustment(ctx, req.ToUseCaseInput())
	})
}

// Rollback handles POST /api/wallet/rollback.
func (h *WalletHandler) Rollback(w http.ResponseWriter, r *http.Request) {
	var req dto.RollbackRequest
	h.handle(w, r, "rollback", dto.StatusInvalidRequest, &req, func(ctx context.Context) (*usecase.BalanceResult, error) {
		return h.wallet.Rollback(ctx, req.ToUseCaseInput())
	})
}

// handle runs the checks shared by every signed route in order: content
// type, JSON syntax, signature, required fields. req must be a pointer.
func (h *WalletHandler) handle(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	malformed string,
	req any,
	call func(ctx context.Context) (*usecase.BalanceResult, error),
) {
	ctx := r.Context()
	logger := h.logger.With().Str("operation", operation).Logger()

	if !strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
		writeJSON(w, http.StatusOK, dto.WalletFailure("", malformed))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		logger.Warn().Err(err).Msg("read request body")
		writeJSON(w, http.StatusOK, dto.WalletFailure("", malformed))
		return
	}

	var trace dto.TraceRequest
	if err := json.Unmarshal(body, &trace); err != nil {
		writeJSON(w, http.StatusOK, dto.WalletFailure("", malformed))
		return
	}
	traceID := trace.TraceID.String()
	logger = logger.With().Str("trace_id", traceID).Logger()

	if err := h.verifier.VerifySignature(ctx, r.Host, body, r.Header.Get(SignatureHeader)); err != nil {
		if errors.Is(err, domain.ErrInvalidSignature) {
			h.observer.AuthFailed("signed")
			logger.Warn().Str("host", r.Host).Msg("signature rejected")
			writeJSON(w, http.StatusOK, dto.WalletFailure(traceID, dto.StatusInvalidSignature))
			return
		}
		logger.Error().Err(err).Msg("verify signature")
		writeJSON(w, http.StatusOK, dto.WalletFailure(traceID, dto.StatusInternalError))
		return
	}

	if err := json.Unmarshal(body, req); err != nil {
		logger.Debug().Err(err).Msg("decode request")
		writeJSON(w, http.StatusOK, dto.WalletFailure(traceID, malformed))
		return
	}
	if err := dto.Validate(req); err != nil {
		logger.Debug().Err(err).Msg("invalid request")
		writeJSON(w, http.StatusOK, dto.WalletFailure(traceID, malformed))
		return
	}

	result, err := call(ctx)
	if err != nil {
		status := statusFor(err, malformed)
		if status == dto.StatusInternalError {
			logger.Error().Err(err).Msg("wallet operation failed")
		} else {
			logger.Info().Err(err).Str("status", status).Msg("wallet operation rejected")
		}
		writeJSON(w, http.StatusOK, dto.WalletFailure(traceID, status))
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletSuccess(traceID, h.currency, result))
}
