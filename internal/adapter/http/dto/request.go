package dto

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/fulcrumpay/walletd/internal/usecase"
)

// Request validation errors surfaced before the use case runs.
var (
	ErrMissingWalletID = errors.New("wallet id is required")
)

// CreateWalletRequest represents a request to create a wallet.
type CreateWalletRequest struct {
	OwnerName string `json:"owner_name"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateWalletRequest) ToUseCaseInput() usecase.CreateWalletInput {
	return usecase.CreateWalletInput{
		OwnerName: r.OwnerName,
	}
}

// FundWalletRequest represents a request to fund a wallet.
type FundWalletRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *FundWalletRequest) ToUseCaseInput(walletID, idempotencyKey string) (usecase.FundWalletInput, error) {
	if walletID == "" {
		return usecase.FundWalletInput{}, ErrMissingWalletID
	}

	return usecase.FundWalletInput{
		WalletID:       walletID,
		Amount:         r.Amount,
		IdempotencyKey: idempotencyKey,
	}, nil
}

// TransferRequest represents a request to transfer funds between wallets.
type TransferRequest struct {
	FromWalletID string          `json:"from_wallet_id"`
	ToWalletID   string          `json:"to_wallet_id"`
	Amount       decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput(idempotencyKey string) (usecase.TransferInput, error) {
	if r.FromWalletID == "" || r.ToWalletID == "" {
		return usecase.TransferInput{}, ErrMissingWalletID
	}

	return usecase.TransferInput{
		FromWalletID:   r.FromWalletID,
		ToWalletID:     r.ToWalletID,
		Amount:         r.Amount,
		IdempotencyKey: idempotencyKey,
	}, nil
}
