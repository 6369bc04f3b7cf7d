package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fulcrumpay/walletd/internal/adapter/http/dto"
	"github.com/fulcrumpay/walletd/internal/usecase"
)

// EntryHandler handles entry-related HTTP requests.
type EntryHandler struct {
	entryUC *usecase.EntryUseCase
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC *usecase.EntryUseCase) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// ListByWallet lists a wallet's entries, newest first.
func (h *EntryHandler) ListByWallet(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "id")
	if walletID == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.entryUC.ListEntriesByWallet(r.Context(), usecase.ListEntriesByWalletInput{
		WalletID: walletID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}
