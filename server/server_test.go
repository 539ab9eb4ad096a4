package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betbroker/config"
	"betbroker/models"
	"betbroker/service"
)

type stubBetting struct {
	record *models.BetRecord
	err    error
}

func (s *stubBetting) PlaceBet(ctx context.Context, userID, amount int64) (*models.BetRecord, error) {
	return s.record, s.err
}

func (s *stubBetting) GetRecommendedBet(ctx context.Context, userID int64) (int64, error) {
	return 3, s.err
}

func (s *stubBetting) GetBet(ctx context.Context, userID, betID int64) (*models.BetRecord, error) {
	return s.record, s.err
}

func (s *stubBetting) ListBets(ctx context.Context, userID int64, limit int) ([]*models.BetRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*models.BetRecord{}, nil
}

type stubSettlement struct {
	result *models.WinResult
	err    error
}

func (s *stubSettlement) ResolveWin(ctx context.Context, userID int64, externalBetID string) (*models.WinResult, error) {
	return s.result, s.err
}

type stubBalance struct {
	info *models.BalanceInfo
	err  error
}

func (s *stubBalance) GetBalance(ctx context.Context, userID int64) (*models.BalanceInfo, error) {
	return s.info, s.err
}

func (s *stubBalance) ListTransactions(ctx context.Context, userID int64, limit, offset int) ([]*models.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*models.Transaction{}, nil
}

func (s *stubBalance) SyncExternalBalance(ctx context.Context, userID int64) (*models.BalanceInfo, error) {
	return s.info, s.err
}

type stubAccount struct {
	info *models.AccountInfo
	err  error
}

func (s *stubAccount) GetAccount(ctx context.Context, userID int64) (*models.AccountInfo, error) {
	return s.info, s.err
}

func testServer(betting service.BettingService, settlement service.SettlementService) *Server {
	h := NewHandler(betting, settlement, &stubBalance{err: service.NewError(service.KindNotFound, "balance not found")}, &stubAccount{})
	return New(&config.Config{HTTPHost: "127.0.0.1", HTTPPort: "0"}, h)
}

func doRequest(t *testing.T, srv *Server, method, path string, body any, withUser bool) *http.Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withUser {
		req.Header.Set("X-User-ID", "7")
	}
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestServer_MissingUserHeaderIsUnauthorized(t *testing.T) {
	srv := testServer(&stubBetting{}, &stubSettlement{})

	resp := doRequest(t, srv, http.MethodPost, "/api/bets", map[string]int64{"amount": 3}, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_InvalidUserHeaderIsUnauthorized(t *testing.T) {
	srv := testServer(&stubBetting{}, &stubSettlement{})

	req := httptest.NewRequest(http.MethodGet, "/api/balance", nil)
	req.Header.Set("X-User-ID", "not-a-number")
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_PlaceBetSuccess(t *testing.T) {
	record := &models.BetRecord{ID: 5, ExternalBetID: "b-5", Amount: 3, Status: "pending"}
	srv := testServer(&stubBetting{record: record}, &stubSettlement{})

	resp := doRequest(t, srv, http.MethodPost, "/api/bets", map[string]int64{"amount": 3}, true)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var got models.BetRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "b-5", got.ExternalBetID)
}

func TestServer_ErrorKindMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        *service.Error
		wantStatus int
	}{
		{"validation", service.NewError(service.KindValidation, "bad amount"), http.StatusBadRequest},
		{"unauthorized account", service.NewError(service.KindUnauthorized, "no active external account"), http.StatusBadRequest},
		{"not found", service.NewError(service.KindNotFound, "bet not found"), http.StatusNotFound},
		{"conflict", service.NewError(service.KindConflict, "already settled"), http.StatusConflict},
		{"upstream", service.NewError(service.KindUpstream, "betting api unavailable"), http.StatusBadGateway},
		{"persistence", service.NewError(service.KindPersistence, "db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testServer(&stubBetting{}, &stubSettlement{err: tt.err})

			resp := doRequest(t, srv, http.MethodPost, "/api/bets/win", map[string]string{"bet_id": "b-1"}, true)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.err.Message, body["error"])
		})
	}
}

func TestServer_PersistenceDetailNeverLeaks(t *testing.T) {
	err := service.WrapError(service.KindPersistence, "failed to record transaction",
		errInternal("pq: password authentication failed for user \"betbroker\""))
	srv := testServer(&stubBetting{}, &stubSettlement{err: err})

	resp := doRequest(t, srv, http.MethodPost, "/api/bets/win", map[string]string{"bet_id": "b-1"}, true)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	raw, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	assert.NotContains(t, string(raw), "password")
}

func TestServer_GetBalanceNotFound(t *testing.T) {
	srv := testServer(&stubBetting{}, &stubSettlement{})

	resp := doRequest(t, srv, http.MethodGet, "/api/balance", nil, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Healthz(t *testing.T) {
	srv := testServer(&stubBetting{}, &stubSettlement{})

	resp := doRequest(t, srv, http.MethodGet, "/healthz", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

type errInternal string

func (e errInternal) Error() string { return string(e) }
