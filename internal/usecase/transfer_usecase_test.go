package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fulcrumpay/walletd/internal/domain"
	"github.com/fulcrumpay/walletd/internal/usecase"
	"github.com/fulcrumpay/walletd/internal/usecase/mocks"
)

func newTransferUseCase(walletRepo *mocks.MockWalletRepository, entryRepo *mocks.MockEntryRepository) *usecase.TransferUseCase {
	return usecase.NewTransferUseCase(
		mocks.NewMockTransactionManager(),
		walletRepo,
		entryRepo,
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
		nil,
	)
}

func seedWallets(walletRepo *mocks.MockWalletRepository, balances map[string]int64) {
	for id, balance := range balances {
		walletRepo.Create(context.Background(), &domain.Wallet{
			ID:      id,
			Balance: decimal.NewFromInt(balance),
		})
	}
}

func TestTransferUseCase_Transfer(t *testing.T) {
	tests := []struct {
		name        string
		balances    map[string]int64
		input       usecase.TransferInput
		expectError error
		wantFrom    string
		wantTo      string
	}{
		{
			name:     "successful transfer",
			balances: map[string]int64{"w-1": 500, "w-2": 0},
			input: usecase.TransferInput{
				FromWalletID: "w-1",
				ToWalletID:   "w-2",
				Amount:       decimal.NewFromInt(100),
			},
			wantFrom: "400",
			wantTo:   "100",
		},
		{
			name:     "transfer entire balance",
			balances: map[string]int64{"w-1": 100, "w-2": 50},
			input: usecase.TransferInput{
				FromWalletID: "w-1",
				ToWalletID:   "w-2",
				Amount:       decimal.NewFromInt(100),
			},
			wantFrom: "0",
			wantTo:   "150",
		},
		{
			name:     "reject same wallet",
			balances: map[string]int64{"w-1": 500},
			input: usecase.TransferInput{
				FromWalletID: "w-1",
				ToWalletID:   "w-1",
				Amount:       decimal.NewFromInt(100),
			},
			expectError: domain.ErrSameWallet,
		},
		{
			name:     "reject insufficient funds",
			balances: map[string]int64{"w-1": 50, "w-2": 0},
			input: usecase.TransferInput{
				FromWalletID: "w-1",
				ToWalletID:   "w-2",
				Amount:       decimal.NewFromInt(100),
			},
			expectError: domain.ErrInsufficientFunds,
		},
		{
			name:     "reject missing destination",
			balances: map[string]int64{"w-1": 500},
			input: usecase.TransferInput{
				FromWalletID: "w-1",
				ToWalletID:   "w-missing",
				Amount:       decimal.NewFromInt(100),
			},
			expectError: domain.ErrWalletNotFound,
		},
		{
			name:     "reject non-positive amount",
			balances: map[string]int64{"w-1": 500, "w-2": 0},
			input: usecase.TransferInput{
				FromWalletID: "w-1",
				ToWalletID:   "w-2",
				Amount:       decimal.Zero,
			},
			expectError: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walletRepo := mocks.NewMockWalletRepository()
			entryRepo := mocks.NewMockEntryRepository()
			seedWallets(walletRepo, tt.balances)

			uc := newTransferUseCase(walletRepo, entryRepo)

			result, err := uc.Transfer(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Errorf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !result.FromWallet.Balance.Equal(decimal.RequireFromString(tt.wantFrom)) {
				t.Errorf("source balance %s, want %s", result.FromWallet.Balance, tt.wantFrom)
			}
			if !result.ToWallet.Balance.Equal(decimal.RequireFromString(tt.wantTo)) {
				t.Errorf("destination balance %s, want %s", result.ToWallet.Balance, tt.wantTo)
			}
			if result.DebitEntryID == "" || result.CreditEntryID == "" {
				t.Error("expected both entry IDs in result")
			}
		})
	}
}

func TestTransferUseCase_Transfer_Conservation(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	seedWallets(walletRepo, map[string]int64{"w-1": 300, "w-2": 200})

	uc := newTransferUseCase(walletRepo, entryRepo)

	result, err := uc.Transfer(context.Background(), usecase.TransferInput{
		FromWalletID: "w-1",
		ToWalletID:   "w-2",
		Amount:       decimal.RequireFromString("73.21"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total := result.FromWallet.Balance.Add(result.ToWallet.Balance)
	if !total.Equal(decimal.NewFromInt(500)) {
		t.Errorf("transfer did not conserve total: %s", total)
	}

	debits, _ := entryRepo.GetByWallet(context.Background(), "w-1", 10, 0)
	credits, _ := entryRepo.GetByWallet(context.Background(), "w-2", 10, 0)
	if len(debits) != 1 || len(credits) != 1 {
		t.Fatalf("expected one entry per wallet, got %d and %d", len(debits), len(credits))
	}
	if debits[0].Direction != domain.DirectionDebit {
		t.Errorf("source entry direction %s", debits[0].Direction)
	}
	if credits[0].Direction != domain.DirectionCredit {
		t.Errorf("destination entry direction %s", credits[0].Direction)
	}
	if !debits[0].Amount.Equal(credits[0].Amount) {
		t.Errorf("leg amounts differ: %s vs %s", debits[0].Amount, credits[0].Amount)
	}
}

func TestTransferUseCase_Transfer_LockOrdering(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	seedWallets(walletRepo, map[string]int64{"w-a": 100, "w-b": 100})

	wallets := map[string]*domain.Wallet{
		"w-a": {ID: "w-a", Balance: decimal.NewFromInt(100)},
		"w-b": {ID: "w-b", Balance: decimal.NewFromInt(100)},
	}

	var requested []string
	walletRepo.GetByIDsForUpdateFunc = func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Wallet, error) {
		requested = append([]string{}, ids...)
		var out []*domain.Wallet
		for _, id := range ids {
			out = append(out, wallets[id])
		}
		return out, nil
	}

	uc := newTransferUseCase(walletRepo, entryRepo)

	// Transfer in the "descending" direction: locks must still be taken
	// in ascending id order.
	_, err := uc.Transfer(context.Background(), usecase.TransferInput{
		FromWalletID: "w-b",
		ToWalletID:   "w-a",
		Amount:       decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(requested) != 2 || requested[0] != "w-a" || requested[1] != "w-b" {
		t.Errorf("lock request order %v, want [w-a w-b]", requested)
	}
}

func TestTransferUseCase_Transfer_IdempotentReplay(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	seedWallets(walletRepo, map[string]int64{"w-1": 500, "w-2": 0})

	uc := newTransferUseCase(walletRepo, entryRepo)

	input := usecase.TransferInput{
		FromWalletID:   "w-1",
		ToWalletID:     "w-2",
		Amount:         decimal.NewFromInt(100),
		IdempotencyKey: "key-1",
	}

	first, err := uc.Transfer(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := uc.Transfer(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error on replay: %v", err)
	}

	if second.DebitEntryID != first.DebitEntryID {
		t.Errorf("replay debit entry %s, want %s", second.DebitEntryID, first.DebitEntryID)
	}
	if second.CreditEntryID != first.CreditEntryID {
		t.Errorf("replay credit entry %s, want %s", second.CreditEntryID, first.CreditEntryID)
	}
	if !second.FromWallet.Balance.Equal(decimal.NewFromInt(400)) {
		t.Errorf("replay moved funds again: source balance %s", second.FromWallet.Balance)
	}

	debits, _ := entryRepo.GetByWallet(context.Background(), "w-1", 10, 0)
	if len(debits) != 1 {
		t.Errorf("replay created a new debit entry: %d entries", len(debits))
	}
}

func TestTransferUseCase_Transfer_ReplayScopedToSource(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	seedWallets(walletRepo, map[string]int64{"w-1": 500, "w-2": 500, "w-3": 0})

	uc := newTransferUseCase(walletRepo, entryRepo)

	if _, err := uc.Transfer(context.Background(), usecase.TransferInput{
		FromWalletID:   "w-1",
		ToWalletID:     "w-3",
		Amount:         decimal.NewFromInt(100),
		IdempotencyKey: "key-1",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same key but a different source wallet: no match, executes fresh.
	result, err := uc.Transfer(context.Background(), usecase.TransferInput{
		FromWalletID:   "w-2",
		ToWalletID:     "w-3",
		Amount:         decimal.NewFromInt(50),
		IdempotencyKey: "key-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.FromWallet.Balance.Equal(decimal.NewFromInt(450)) {
		t.Errorf("expected fresh execution from w-2, balance %s", result.FromWallet.Balance)
	}
}

func TestTransferUseCase_Transfer_RollbackOnFailedCredit(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	seedWallets(walletRepo, map[string]int64{"w-1": 500, "w-2": 0})

	storeErr := errors.New("disk full")
	calls := 0
	entryRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
		calls++
		if calls == 2 {
			return storeErr
		}
		return nil
	}

	rolledBack := false
	txMgr := mocks.NewMockTransactionManager()
	txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		return &mocks.MockTransaction{
			CommitFunc: func(ctx context.Context) error {
				t.Error("commit called after failed credit leg")
				return nil
			},
			RollbackFunc: func(ctx context.Context) error {
				rolledBack = true
				return nil
			},
		}, nil
	}

	uc := usecase.NewTransferUseCase(txMgr, walletRepo, entryRepo,
		mocks.NewMockIDGenerator(), mocks.NewMockRetrier(), nil)

	_, err := uc.Transfer(context.Background(), usecase.TransferInput{
		FromWalletID: "w-1",
		ToWalletID:   "w-2",
		Amount:       decimal.NewFromInt(100),
	})

	if !errors.Is(err, storeErr) {
		t.Errorf("expected store error, got %v", err)
	}
	if !rolledBack {
		t.Error("expected transaction rollback")
	}
}

func TestTransferUseCase_Transfer_RetriesExhaustedAsConflict(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	seedWallets(walletRepo, map[string]int64{"w-1": 500, "w-2": 0})

	retrier := mocks.NewMockRetrier()
	retrier.RetryFunc = func(ctx context.Context, operation func() error) error {
		if err := operation(); err != nil {
			return err
		}
		return domain.ErrConflict
	}

	walletRepo.GetByIDsForUpdateFunc = func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Wallet, error) {
		return nil, domain.ErrConflict
	}

	uc := usecase.NewTransferUseCase(mocks.NewMockTransactionManager(), walletRepo, entryRepo,
		mocks.NewMockIDGenerator(), retrier, nil)

	_, err := uc.Transfer(context.Background(), usecase.TransferInput{
		FromWalletID: "w-1",
		ToWalletID:   "w-2",
		Amount:       decimal.NewFromInt(100),
	})

	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}
