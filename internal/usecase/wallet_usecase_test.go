package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fulcrumpay/walletd/internal/domain"
	"github.com/fulcrumpay/walletd/internal/usecase"
	"github.com/fulcrumpay/walletd/internal/usecase/mocks"
)

func newWalletUseCase(walletRepo *mocks.MockWalletRepository, entryRepo *mocks.MockEntryRepository) *usecase.WalletUseCase {
	return usecase.NewWalletUseCase(
		mocks.NewMockTransactionManager(),
		walletRepo,
		entryRepo,
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
		nil,
	)
}

func TestWalletUseCase_CreateWallet(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateWalletInput
		expectError error
	}{
		{
			name:  "wallet with owner name",
			input: usecase.CreateWalletInput{OwnerName: "Alice"},
		},
		{
			name:  "wallet with empty owner name",
			input: usecase.CreateWalletInput{},
		},
		{
			name:        "owner name too long",
			input:       usecase.CreateWalletInput{OwnerName: strings.Repeat("x", 256)},
			expectError: domain.ErrInvalidOwnerName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walletRepo := mocks.NewMockWalletRepository()
			entryRepo := mocks.NewMockEntryRepository()
			uc := newWalletUseCase(walletRepo, entryRepo)

			wallet, err := uc.CreateWallet(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Errorf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if wallet.ID == "" {
				t.Error("expected generated wallet ID")
			}
			if !wallet.Balance.IsZero() {
				t.Errorf("new wallet balance should be zero, got %s", wallet.Balance)
			}
		})
	}
}

func TestWalletUseCase_FundWallet(t *testing.T) {
	tests := []struct {
		name        string
		amount      decimal.Decimal
		expectError error
	}{
		{
			name:   "valid deposit",
			amount: decimal.RequireFromString("100.50"),
		},
		{
			name:        "zero amount rejected",
			amount:      decimal.Zero,
			expectError: domain.ErrInvalidAmount,
		},
		{
			name:        "negative amount rejected",
			amount:      decimal.NewFromInt(-10),
			expectError: domain.ErrInvalidAmount,
		},
		{
			name:        "sub-cent precision rejected",
			amount:      decimal.RequireFromString("10.005"),
			expectError: domain.ErrInvalidScale,
		},
		{
			name:        "amount over maximum rejected",
			amount:      decimal.RequireFromString("1000000000001"),
			expectError: domain.ErrAmountTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walletRepo := mocks.NewMockWalletRepository()
			entryRepo := mocks.NewMockEntryRepository()
			walletRepo.Create(context.Background(), &domain.Wallet{
				ID:      "w-1",
				Balance: decimal.NewFromInt(50),
			})

			uc := newWalletUseCase(walletRepo, entryRepo)

			result, err := uc.FundWallet(context.Background(), usecase.FundWalletInput{
				WalletID: "w-1",
				Amount:   tt.amount,
			})

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Errorf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.EntryID == "" {
				t.Error("expected entry ID in result")
			}

			want := decimal.NewFromInt(50).Add(tt.amount)
			if !result.Wallet.Balance.Equal(want) {
				t.Errorf("expected balance %s, got %s", want, result.Wallet.Balance)
			}

			entries, _ := entryRepo.GetByWallet(context.Background(), "w-1", 10, 0)
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}
			if entries[0].Direction != domain.DirectionCredit {
				t.Errorf("expected credit entry, got %s", entries[0].Direction)
			}
			if entries[0].Status != domain.StatusCompleted {
				t.Errorf("expected completed entry, got %s", entries[0].Status)
			}
		})
	}
}

func TestWalletUseCase_FundWallet_NotFound(t *testing.T) {
	uc := newWalletUseCase(mocks.NewMockWalletRepository(), mocks.NewMockEntryRepository())

	_, err := uc.FundWallet(context.Background(), usecase.FundWalletInput{
		WalletID: "missing",
		Amount:   decimal.NewFromInt(10),
	})

	if !errors.Is(err, domain.ErrWalletNotFound) {
		t.Errorf("expected ErrWalletNotFound, got %v", err)
	}
}

func TestWalletUseCase_FundWallet_IdempotentReplay(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	walletRepo.Create(context.Background(), &domain.Wallet{
		ID:      "w-1",
		Balance: decimal.NewFromInt(100),
	})

	uc := newWalletUseCase(walletRepo, entryRepo)

	input := usecase.FundWalletInput{
		WalletID:       "w-1",
		Amount:         decimal.NewFromInt(25),
		IdempotencyKey: "key-1",
	}

	first, err := uc.FundWallet(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := uc.FundWallet(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error on replay: %v", err)
	}

	if second.EntryID != first.EntryID {
		t.Errorf("replay returned entry %s, want %s", second.EntryID, first.EntryID)
	}
	if !second.Wallet.Balance.Equal(decimal.NewFromInt(125)) {
		t.Errorf("replay applied the deposit again: balance %s", second.Wallet.Balance)
	}

	entries, _ := entryRepo.GetByWallet(context.Background(), "w-1", 10, 0)
	if len(entries) != 1 {
		t.Errorf("replay created a new entry: %d entries", len(entries))
	}
}

func TestWalletUseCase_FundWallet_ReplayIgnoresAmount(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	walletRepo.Create(context.Background(), &domain.Wallet{
		ID:      "w-1",
		Balance: decimal.NewFromInt(100),
	})

	uc := newWalletUseCase(walletRepo, entryRepo)

	first, err := uc.FundWallet(context.Background(), usecase.FundWalletInput{
		WalletID:       "w-1",
		Amount:         decimal.NewFromInt(25),
		IdempotencyKey: "key-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same key, different amount: the recorded outcome wins.
	second, err := uc.FundWallet(context.Background(), usecase.FundWalletInput{
		WalletID:       "w-1",
		Amount:         decimal.NewFromInt(999),
		IdempotencyKey: "key-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.EntryID != first.EntryID {
		t.Errorf("expected recorded entry %s, got %s", first.EntryID, second.EntryID)
	}
	if !second.Wallet.Balance.Equal(decimal.NewFromInt(125)) {
		t.Errorf("expected balance 125, got %s", second.Wallet.Balance)
	}
}

func TestWalletUseCase_FundWallet_ResolverFailure(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()

	lookupErr := errors.New("connection reset")
	entryRepo.FindByKeyFunc = func(ctx context.Context, key string, direction domain.EntryDirection, walletID string) (*domain.Entry, error) {
		return nil, lookupErr
	}

	uc := newWalletUseCase(walletRepo, entryRepo)

	_, err := uc.FundWallet(context.Background(), usecase.FundWalletInput{
		WalletID:       "w-1",
		Amount:         decimal.NewFromInt(10),
		IdempotencyKey: "key-1",
	})

	// A resolver outage must not fall through to a fresh execution.
	if !errors.Is(err, lookupErr) {
		t.Errorf("expected lookup error to propagate, got %v", err)
	}
}

func TestWalletUseCase_GetWalletWithEntries(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	walletRepo.Create(context.Background(), &domain.Wallet{ID: "w-1", Balance: decimal.NewFromInt(10)})
	entryRepo.Create(context.Background(), nil, &domain.Entry{
		ID:        "e-1",
		WalletID:  "w-1",
		Amount:    decimal.NewFromInt(10),
		Direction: domain.DirectionCredit,
		Status:    domain.StatusCompleted,
		CreatedAt: time.Now().UTC(),
	})

	uc := newWalletUseCase(walletRepo, entryRepo)

	wallet, entries, err := uc.GetWalletWithEntries(context.Background(), "w-1", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wallet.ID != "w-1" {
		t.Errorf("unexpected wallet %s", wallet.ID)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}

	_, _, err = uc.GetWalletWithEntries(context.Background(), "missing", 0, 0)
	if !errors.Is(err, domain.ErrWalletNotFound) {
		t.Errorf("expected ErrWalletNotFound, got %v", err)
	}
}
