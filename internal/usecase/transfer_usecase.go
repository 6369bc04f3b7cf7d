package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fulcrumpay/walletd/internal/domain"
	"github.com/fulcrumpay/walletd/internal/infrastructure/metrics"
)

// TransferUseCase orchestrates two-sided transfers: one debit leg and one
// credit leg applied inside a single transaction.
type TransferUseCase struct {
	txManager  TransactionManager
	walletRepo WalletRepository
	entryRepo  EntryRepository
	idGen      IDGenerator
	retrier    Retrier
	metrics    *metrics.Metrics
	resolver   idempotencyResolver
	mutator    balanceMutator
}

// NewTransferUseCase creates a new TransferUseCase. retrier and m may be nil.
func NewTransferUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	retrier Retrier,
	m *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:  txManager,
		walletRepo: walletRepo,
		entryRepo:  entryRepo,
		idGen:      idGen,
		retrier:    retrier,
		metrics:    m,
		resolver:   idempotencyResolver{walletRepo: walletRepo, entryRepo: entryRepo},
		mutator:    balanceMutator{walletRepo: walletRepo, entryRepo: entryRepo, idGen: idGen},
	}
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	FromWalletID   string
	ToWalletID     string
	Amount         decimal.Decimal
	IdempotencyKey string
}

// TransferResult is the outcome of a transfer: both updated wallets and
// the two entries recording the legs.
type TransferResult struct {
	FromWallet    *domain.Wallet
	ToWallet      *domain.Wallet
	DebitEntryID  string
	CreditEntryID string
}

// Transfer moves amount from one wallet to another. Both legs commit
// atomically or not at all; the debit leg's insufficient-funds check runs
// under the source wallet's row lock. When an idempotency key is supplied
// and a transfer under that key already completed from the same source
// wallet, the recorded outcome is returned without mutating anything.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if input.FromWalletID == input.ToWalletID {
		return nil, domain.ErrSameWallet
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	prior, replayed, err := uc.resolver.resolveTransfer(ctx, input.IdempotencyKey, input.FromWalletID, input.ToWalletID)
	if err != nil {
		return nil, err
	}
	if replayed {
		if uc.metrics != nil {
			uc.metrics.IdempotentReplays.WithLabelValues("transfer").Inc()
		}
		return prior, nil
	}

	start := time.Now()

	var result *TransferResult

	op := func() error {
		var opErr error
		result, opErr = uc.transferTx(ctx, input)
		return opErr
	}

	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, op)
	} else {
		err = op()
	}
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.TransferErrors.WithLabelValues(errorLabel(err)).Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		uc.metrics.TransferAmount.Observe(input.Amount.InexactFloat64())
	}

	return result, nil
}

func (uc *TransferUseCase) transferTx(ctx context.Context, input TransferInput) (*TransferResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Lock both rows in ascending id order regardless of transfer
	// direction. Two opposite-direction transfers between the same pair
	// then always contend on the same first lock instead of deadlocking.
	ids := []string{input.FromWalletID, input.ToWalletID}
	sort.Strings(ids)

	wallets, err := uc.walletRepo.GetByIDsForUpdate(txCtx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(wallets) != len(ids) {
		return nil, domain.ErrWalletNotFound
	}

	var fromWallet, toWallet *domain.Wallet
	for _, w := range wallets {
		switch w.ID {
		case input.FromWalletID:
			fromWallet = w
		case input.ToWalletID:
			toWallet = w
		}
	}

	if fromWallet == nil || toWallet == nil {
		return nil, domain.ErrWalletNotFound
	}

	now := time.Now().UTC()

	debitID, err := uc.mutator.applyDelta(txCtx, tx, fromWallet, input.Amount, domain.DirectionDebit,
		input.IdempotencyKey, fmt.Sprintf("Transfer to wallet %s", input.ToWalletID), now)
	if err != nil {
		return nil, err
	}

	creditID, err := uc.mutator.applyDelta(txCtx, tx, toWallet, input.Amount, domain.DirectionCredit,
		input.IdempotencyKey, fmt.Sprintf("Transfer from wallet %s", input.FromWalletID), now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return &TransferResult{
		FromWallet:    fromWallet,
		ToWallet:      toWallet,
		DebitEntryID:  debitID,
		CreditEntryID: creditID,
	}, nil
}

// errorLabel buckets errors for metric labels.
func errorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrWalletNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidScale):
		return "invalid_amount"
	case errors.Is(err, domain.ErrSameWallet):
		return "same_wallet"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
