package dto

import (
	"time"

	"github.com/fulcrumpay/walletd/internal/domain"
	"github.com/fulcrumpay/walletd/internal/usecase"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WalletResponse represents a wallet in API responses. Balances are
// rendered with a fixed scale of 2.
type WalletResponse struct {
	ID        string    `json:"id"`
	Balance   string    `json:"balance"`
	OwnerName string    `json:"owner_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WalletFromDomain converts a domain wallet to a response.
func WalletFromDomain(w *domain.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:        w.ID,
		Balance:   w.Balance.StringFixed(2),
		OwnerName: w.OwnerName,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// WalletsFromDomain converts domain wallets to responses.
func WalletsFromDomain(wallets []*domain.Wallet) []*WalletResponse {
	result := make([]*WalletResponse, len(wallets))
	for i, w := range wallets {
		result[i] = WalletFromDomain(w)
	}
	return result
}

// ListWalletsResponse wraps a page of wallets.
type ListWalletsResponse struct {
	Wallets []*WalletResponse `json:"wallets"`
	Total   int64             `json:"total"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID             string    `json:"id"`
	WalletID       string    `json:"wallet_id"`
	Amount         string    `json:"amount"`
	Direction      string    `json:"direction"`
	Status         string    `json:"status"`
	IdempotencyKey string    `json:"idempotency_key,omitempty"`
	Note           string    `json:"note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:             e.ID,
		WalletID:       e.WalletID,
		Amount:         e.Amount.StringFixed(2),
		Direction:      string(e.Direction),
		Status:         string(e.Status),
		IdempotencyKey: e.IdempotencyKey,
		Note:           e.Note,
		CreatedAt:      e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// WalletWithEntriesResponse is a wallet plus its entries, newest first.
type WalletWithEntriesResponse struct {
	*WalletResponse

	Entries []*EntryResponse `json:"entries"`
}

// WalletWithEntriesFromDomain builds the combined wallet+entries response.
func WalletWithEntriesFromDomain(w *domain.Wallet, entries []*domain.Entry) *WalletWithEntriesResponse {
	return &WalletWithEntriesResponse{
		WalletResponse: WalletFromDomain(w),
		Entries:        EntriesFromDomain(entries),
	}
}

// DepositResponse is the outcome of funding a wallet.
type DepositResponse struct {
	Wallet  *WalletResponse `json:"wallet"`
	EntryID string          `json:"entry_id"`
}

// DepositFromResult converts a deposit result to a response.
func DepositFromResult(r *usecase.DepositResult) *DepositResponse {
	return &DepositResponse{
		Wallet:  WalletFromDomain(r.Wallet),
		EntryID: r.EntryID,
	}
}

// TransferResponse is the outcome of a transfer: both updated wallets and
// the debit/credit entry ids.
type TransferResponse struct {
	FromWallet    *WalletResponse `json:"from_wallet"`
	ToWallet      *WalletResponse `json:"to_wallet"`
	DebitEntryID  string          `json:"debit_entry_id"`
	CreditEntryID string          `json:"credit_entry_id"`
}

// TransferFromResult converts a transfer result to a response.
func TransferFromResult(r *usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		FromWallet:    WalletFromDomain(r.FromWallet),
		ToWallet:      WalletFromDomain(r.ToWallet),
		DebitEntryID:  r.DebitEntryID,
		CreditEntryID: r.CreditEntryID,
	}
}
