package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fulcrumpay/walletd/internal/adapter/http/dto"
	"github.com/fulcrumpay/walletd/internal/adapter/http/middleware"
	"github.com/fulcrumpay/walletd/internal/domain"
	"github.com/fulcrumpay/walletd/internal/usecase"
)

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	CreateWallet(ctx context.Context, input usecase.CreateWalletInput) (*domain.Wallet, error)
	GetWalletWithEntries(ctx context.Context, id string, limit, offset int) (*domain.Wallet, []*domain.Entry, error)
	ListWallets(ctx context.Context, input usecase.ListWalletsInput) ([]*domain.Wallet, error)
	FundWallet(ctx context.Context, input usecase.FundWalletInput) (*usecase.DepositResult, error)
}

// WalletHandler handles wallet-related HTTP requests.
type WalletHandler struct {
	walletUC WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC WalletService) *WalletHandler {
	return &WalletHandler{walletUC: walletUC}
}

// Create creates a new wallet.
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWalletRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	}

	wallet, err := h.walletUC.CreateWallet(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create wallet", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.WalletFromDomain(wallet))
}

// Get retrieves a wallet with its entries, newest first.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	wallet, entries, err := h.walletUC.GetWalletWithEntries(r.Context(), id, limit, offset)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get wallet", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.WalletWithEntriesFromDomain(wallet, entries))
}

// List lists wallets.
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	wallets, err := h.walletUC.ListWallets(r.Context(), usecase.ListWalletsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list wallets", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListWalletsResponse{
		Wallets: dto.WalletsFromDomain(wallets),
		Total:   int64(len(wallets)),
	})
}

// Fund credits a wallet by a positive amount.
func (h *WalletHandler) Fund(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	var req dto.FundWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(id, r.Header.Get(middleware.IdempotencyKeyHeader))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	result, err := h.walletUC.FundWallet(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to fund wallet", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DepositFromResult(result))
}
