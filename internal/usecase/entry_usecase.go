package usecase

import (
	"context"

	"github.com/fulcrumpay/walletd/internal/domain"
)

// EntryUseCase handles entry read paths.
type EntryUseCase struct {
	entryRepo EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{entryRepo: entryRepo}
}

// ListEntriesByWalletInput represents input for listing entries.
type ListEntriesByWalletInput struct {
	WalletID string
	Limit    int
	Offset   int
}

// ListEntriesByWallet lists a wallet's entries, newest first.
func (uc *EntryUseCase) ListEntriesByWallet(ctx context.Context, input ListEntriesByWalletInput) ([]*domain.Entry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.entryRepo.GetByWallet(ctx, input.WalletID, limit, offset)
}
