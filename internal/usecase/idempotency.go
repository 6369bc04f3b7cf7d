package usecase

import (
	"context"
	"errors"

	"github.com/fulcrumpay/walletd/internal/domain"
)

// idempotencyResolver answers one question before any mutation runs: has
// an operation with this key already completed? The canonical record of a
// deposit is its credit entry on the target wallet; the canonical record
// of a transfer is its debit entry on the source wallet.
//
// Matching is deliberately weak: key, entry direction and scope wallet
// only. Amount and destination of a replayed request are not compared
// against the original; the recorded outcome is returned as-is.
type idempotencyResolver struct {
	walletRepo WalletRepository
	entryRepo  EntryRepository
}

// resolveDeposit reports a prior deposit under key scoped to walletID.
// Returns (nil, false, nil) when no prior execution is recorded. Lookup
// failures propagate: a blind retry on a resolver outage could double an
// execution.
func (r *idempotencyResolver) resolveDeposit(ctx context.Context, key, walletID string) (*DepositResult, bool, error) {
	if key == "" {
		return nil, false, nil
	}

	entry, err := r.entryRepo.FindByKey(ctx, key, domain.DirectionCredit, walletID)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	wallet, err := r.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, false, err
	}

	return &DepositResult{Wallet: wallet, EntryID: entry.ID}, true, nil
}

// resolveTransfer reports a prior transfer under key scoped to the source
// wallet. The paired credit entry is found by a secondary lookup on the
// same key with the complementary direction.
func (r *idempotencyResolver) resolveTransfer(ctx context.Context, key, fromWalletID, toWalletID string) (*TransferResult, bool, error) {
	if key == "" {
		return nil, false, nil
	}

	debit, err := r.entryRepo.FindByKey(ctx, key, domain.DirectionDebit, fromWalletID)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	fromWallet, err := r.walletRepo.GetByID(ctx, fromWalletID)
	if err != nil {
		return nil, false, err
	}

	toWallet, err := r.walletRepo.GetByID(ctx, toWalletID)
	if err != nil {
		return nil, false, err
	}

	result := &TransferResult{
		FromWallet:   fromWallet,
		ToWallet:     toWallet,
		DebitEntryID: debit.ID,
	}

	credit, err := r.entryRepo.FindPairedByKey(ctx, key, domain.DirectionCredit)
	if err != nil {
		if !errors.Is(err, domain.ErrEntryNotFound) {
			return nil, false, err
		}
	} else {
		result.CreditEntryID = credit.ID
	}

	return result, true, nil
}
