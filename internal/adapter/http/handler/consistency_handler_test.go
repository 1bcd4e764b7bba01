package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gamewallet/internal/adapter/http/dto"
	"github.com/iho/gamewallet/internal/domain"
	"github.com/iho/gamewallet/internal/usecase"
)

type reconcilerStub struct {
	result *usecase.ReconciliationResult
	report *usecase.ReconciliationReport
	err    error
}

func (s *reconcilerStub) ReconcileAccount(_ context.Context, name string) (*usecase.ReconciliationResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *reconcilerStub) GenerateReconciliationReport(context.Context) (*usecase.ReconciliationReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

type reconciliationObserverStub struct{ total, discrepancies int }

func (o *reconciliationObserverStub) ReconciliationCompleted(total, discrepancies int) {
	o.total = total
	o.discrepancies = discrepancies
}

func TestConsistencyHandler_Report(t *testing.T) {
	bad := &usecase.ReconciliationResult{
		AccountID:         "acc-2",
		Name:              "bob",
		RecordedBalance:   decimal.NewFromInt(50),
		CalculatedBalance: decimal.NewFromInt(40),
		Difference:        decimal.NewFromInt(10),
	}
	stub := &reconcilerStub{report: &usecase.ReconciliationReport{
		CheckedAt:          time.Now(),
		Discrepancies:      []*usecase.ReconciliationResult{bad},
		TotalAccounts:      3,
		ReconciledAccounts: 2,
	}}
	observer := &reconciliationObserverStub{}
	h := NewConsistencyHandler(stub, observer, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Report(rec, httptest.NewRequest(http.MethodGet, "/admin/v1/consistency", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.ConsistencyReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.TotalAccounts)
	assert.Equal(t, 2, resp.ConsistentAccounts)
	require.Len(t, resp.Discrepancies, 1)
	assert.Equal(t, "bob", resp.Discrepancies[0].Name)
	assert.True(t, resp.Discrepancies[0].Difference.Equal(decimal.NewFromInt(10)))

	assert.Equal(t, 3, observer.total)
	assert.Equal(t, 1, observer.discrepancies)
}

func TestConsistencyHandler_ReportError(t *testing.T) {
	h := NewConsistencyHandler(&reconcilerStub{err: errors.New("db down")}, nil, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Report(rec, httptest.NewRequest(http.MethodGet, "/admin/v1/consistency", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestConsistencyHandler_Account(t *testing.T) {
	stub := &reconcilerStub{result: &usecase.ReconciliationResult{Name: "alice", IsReconciled: true, EntryCount: 4}}
	h := NewConsistencyHandler(stub, nil, zerolog.Nop())

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/admin/v1/accounts/alice/consistency", nil), "name", "alice")
	rec := httptest.NewRecorder()
	h.Account(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.ConsistencyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsConsistent)
	assert.Equal(t, int64(4), resp.EntryCount)
}

func TestConsistencyHandler_AccountNotFound(t *testing.T) {
	h := NewConsistencyHandler(&reconcilerStub{err: domain.ErrAccountNotFound}, nil, zerolog.Nop())

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/admin/v1/accounts/ghost/consistency", nil), "name", "ghost")
	rec := httptest.NewRecorder()
	h.Account(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
