package domain

import "errors"

var (
	// Wallet errors
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Operation errors
	ErrSameWallet    = errors.New("cannot transfer to same wallet")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrEntryNotFound = errors.New("entry not found")

	// ErrConflict signals a lock-wait timeout or serialization failure.
	// The operation did not apply and is safe to retry.
	ErrConflict = errors.New("operation conflicted, retry")
)
