package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fulcrumpay/walletd/internal/domain"
)

// balanceMutator is the atomic-update primitive shared by deposits and the
// two legs of a transfer. It operates on a wallet row the caller has
// already locked FOR UPDATE inside an open transaction: it validates the
// balance against the delta, persists the new balance and appends exactly
// one completed entry.
type balanceMutator struct {
	walletRepo WalletRepository
	entryRepo  EntryRepository
	idGen      IDGenerator
}

// applyDelta applies a strictly positive delta in the given direction to a
// locked wallet. The wallet is mutated in place so a subsequent leg in the
// same transaction observes the updated balance. Returns the new entry id.
func (m *balanceMutator) applyDelta(
	ctx context.Context,
	tx Transaction,
	wallet *domain.Wallet,
	delta decimal.Decimal,
	direction domain.EntryDirection,
	idempotencyKey string,
	note string,
	now time.Time,
) (string, error) {
	if delta.LessThanOrEqual(decimal.Zero) {
		return "", domain.ErrInvalidAmount
	}

	var newBalance decimal.Decimal
	if direction == domain.DirectionDebit {
		// The insufficient-funds check happens here, under the row lock.
		// There is no separate pre-check that could race.
		if err := wallet.ValidateDebit(delta); err != nil {
			return "", err
		}
		newBalance = wallet.ApplyDebit(delta)
	} else {
		newBalance = wallet.ApplyCredit(delta)
	}

	entry := &domain.Entry{
		ID:             m.idGen.Generate(),
		WalletID:       wallet.ID,
		Amount:         delta,
		Direction:      direction,
		Status:         domain.StatusCompleted,
		IdempotencyKey: idempotencyKey,
		Note:           note,
		CreatedAt:      now,
	}

	if err := m.entryRepo.Create(ctx, tx, entry); err != nil {
		return "", err
	}

	if err := m.walletRepo.UpdateBalance(ctx, tx, wallet.ID, newBalance, now); err != nil {
		return "", err
	}

	wallet.Balance = newBalance
	wallet.UpdatedAt = now

	return entry.ID, nil
}
