package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fulcrumpay/walletd/internal/domain"
	"github.com/fulcrumpay/walletd/internal/infrastructure/metrics"
)

// WalletUseCase handles wallet lifecycle and deposits.
type WalletUseCase struct {
	txManager  TransactionManager
	walletRepo WalletRepository
	entryRepo  EntryRepository
	idGen      IDGenerator
	retrier    Retrier
	metrics    *metrics.Metrics
	resolver   idempotencyResolver
	mutator    balanceMutator
}

// NewWalletUseCase creates a new WalletUseCase. retrier and m may be nil.
func NewWalletUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	retrier Retrier,
	m *metrics.Metrics,
) *WalletUseCase {
	return &WalletUseCase{
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

// CreateWalletInput represents input for creating a wallet.
type CreateWalletInput struct {
	OwnerName string
}

// CreateWallet creates a new wallet with a zero balance.
func (uc *WalletUseCase) CreateWallet(ctx context.Context, input CreateWalletInput) (*domain.Wallet, error) {
	if err := domain.ValidateOwnerName(input.OwnerName); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	wallet := &domain.Wallet{
		ID:        uc.idGen.Generate(),
		OwnerName: input.OwnerName,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WalletsCreated.Inc()
	}

	return wallet, nil
}

// GetWallet retrieves a wallet by ID.
func (uc *WalletUseCase) GetWallet(ctx context.Context, id string) (*domain.Wallet, error) {
	return uc.walletRepo.GetByID(ctx, id)
}

// GetWalletWithEntries retrieves a wallet together with its entries,
// newest first.
func (uc *WalletUseCase) GetWalletWithEntries(ctx context.Context, id string, limit, offset int) (*domain.Wallet, []*domain.Entry, error) {
	wallet, err := uc.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	limit, offset = domain.ValidatePagination(limit, offset)

	entries, err := uc.entryRepo.GetByWallet(ctx, id, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	return wallet, entries, nil
}

// ListWalletsInput represents input for listing wallets.
type ListWalletsInput struct {
	Limit  int
	Offset int
}

// ListWallets lists wallets with pagination.
func (uc *WalletUseCase) ListWallets(ctx context.Context, input ListWalletsInput) ([]*domain.Wallet, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.walletRepo.List(ctx, limit, offset)
}

// FundWalletInput represents input for funding a wallet.
type FundWalletInput struct {
	WalletID       string
	Amount         decimal.Decimal
	IdempotencyKey string
}

// DepositResult is the outcome of a deposit: the updated wallet and the
// credit entry recording it.
type DepositResult struct {
	Wallet  *domain.Wallet
	EntryID string
}

// FundWallet credits a wallet by a positive amount. When an idempotency
// key is supplied and a deposit under that key already completed against
// this wallet, the recorded outcome is returned without mutating anything.
func (uc *WalletUseCase) FundWallet(ctx context.Context, input FundWalletInput) (*DepositResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	prior, replayed, err := uc.resolver.resolveDeposit(ctx, input.IdempotencyKey, input.WalletID)
	if err != nil {
		return nil, err
	}
	if replayed {
		if uc.metrics != nil {
			uc.metrics.IdempotentReplays.WithLabelValues("deposit").Inc()
		}
		return prior, nil
	}

	start := time.Now()

	var result *DepositResult

	op := func() error {
		var opErr error
		result, opErr = uc.fundWalletTx(ctx, input)
		return opErr
	}

	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, op)
	} else {
		err = op()
	}
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.DepositErrors.WithLabelValues(errorLabel(err)).Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DepositsCreated.Inc()
		uc.metrics.DepositDuration.Observe(time.Since(start).Seconds())
	}

	return result, nil
}

func (uc *WalletUseCase) fundWalletTx(ctx context.Context, input FundWalletInput) (*DepositResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	wallet, err := uc.walletRepo.GetByIDForUpdate(txCtx, tx, input.WalletID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := fmt.Sprintf("Fund wallet with %s", input.Amount.StringFixed(2))

	entryID, err := uc.mutator.applyDelta(txCtx, tx, wallet, input.Amount, domain.DirectionCredit, input.IdempotencyKey, note, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return &DepositResult{Wallet: wallet, EntryID: entryID}, nil
}
