package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fulcrumpay/walletd/internal/adapter/http/handler"
	"github.com/fulcrumpay/walletd/internal/adapter/http/handler/mocks"
	"github.com/fulcrumpay/walletd/internal/domain"
	"github.com/fulcrumpay/walletd/internal/usecase"
)

func newTransferRouter(svc handler.TransferService) http.Handler {
	h := handler.NewTransferHandler(svc)
	r := chi.NewRouter()
	r.Post("/transfers", h.Create)
	return r
}

func TestTransferHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockTransferService(ctrl)
	svc.EXPECT().Transfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, input usecase.TransferInput) (*usecase.TransferResult, error) {
			assert.Equal(t, "w-1", input.FromWalletID)
			assert.Equal(t, "w-2", input.ToWalletID)
			assert.Equal(t, "key-7", input.IdempotencyKey)
			assert.True(t, input.Amount.Equal(decimal.NewFromInt(100)))
			return &usecase.TransferResult{
				FromWallet:    testWallet("w-1", "400"),
				ToWallet:      testWallet("w-2", "100"),
				DebitEntryID:  "e-d",
				CreditEntryID: "e-c",
			}, nil
		})

	body := bytes.NewBufferString(`{"from_wallet_id":"w-1","to_wallet_id":"w-2","amount":"100"}`)
	req := httptest.NewRequest(http.MethodPost, "/transfers", body)
	req.Header.Set("Idempotency-Key", "key-7")
	rec := httptest.NewRecorder()

	newTransferRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		FromWallet struct {
			Balance string `json:"balance"`
		} `json:"from_wallet"`
		ToWallet struct {
			Balance string `json:"balance"`
		} `json:"to_wallet"`
		DebitEntryID  string `json:"debit_entry_id"`
		CreditEntryID string `json:"credit_entry_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "400.00", resp.FromWallet.Balance)
	assert.Equal(t, "100.00", resp.ToWallet.Balance)
	assert.Equal(t, "e-d", resp.DebitEntryID)
	assert.Equal(t, "e-c", resp.CreditEntryID)
}

func TestTransferHandler_Create_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "insufficient funds", err: domain.ErrInsufficientFunds, wantStatus: http.StatusBadRequest},
		{name: "same wallet", err: domain.ErrSameWallet, wantStatus: http.StatusBadRequest},
		{name: "wallet not found", err: domain.ErrWalletNotFound, wantStatus: http.StatusNotFound},
		{name: "lock contention exhausted", err: domain.ErrConflict, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := mocks.NewMockTransferService(ctrl)
			svc.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			body := bytes.NewBufferString(`{"from_wallet_id":"w-1","to_wallet_id":"w-2","amount":"100"}`)
			req := httptest.NewRequest(http.MethodPost, "/transfers", body)
			rec := httptest.NewRecorder()

			newTransferRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestTransferHandler_Create_MissingWalletIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockTransferService(ctrl)

	body := bytes.NewBufferString(`{"amount":"100"}`)
	req := httptest.NewRequest(http.MethodPost, "/transfers", body)
	rec := httptest.NewRecorder()

	newTransferRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
