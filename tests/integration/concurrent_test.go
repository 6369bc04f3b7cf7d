package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fulcrumpay/walletd/internal/adapter/repository/postgres"
	"github.com/fulcrumpay/walletd/internal/usecase"
	"github.com/fulcrumpay/walletd/tests/testutil"
)

func TestConcurrentTransfers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	walletRepo := postgres.NewWalletRepository(testDB.Pool)
	_, transferUC := newUseCases(testDB)

	t.Run("100 concurrent transfers from same wallet no overdraft", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		// Balance allows exactly 100 transfers of 10
		source := testDB.CreateTestWalletWithBalance(ctx, "source", decimal.NewFromInt(1000))
		dest := testDB.CreateTestWallet(ctx, "dest")

		numTransfers := 100
		transferAmount := decimal.NewFromInt(10)

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
			errorCount   atomic.Int32
		)

		wg.Add(numTransfers)

		for i := 0; i < numTransfers; i++ {
			go func() {
				defer wg.Done()

				_, err := transferUC.Transfer(ctx, usecase.TransferInput{
					FromWalletID: source.ID,
					ToWalletID:   dest.ID,
					Amount:       transferAmount,
				})
				if err != nil {
					errorCount.Add(1)
				} else {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != int32(numTransfers) {
			t.Errorf("expected %d successful transfers, got %d (errors: %d)", numTransfers, successCount.Load(), errorCount.Load())
		}

		sourceWallet, _ := walletRepo.GetByID(ctx, source.ID)
		destWallet, _ := walletRepo.GetByID(ctx, dest.ID)

		if !sourceWallet.Balance.Equal(decimal.Zero) {
			t.Errorf("expected source balance 0, got %s", sourceWallet.Balance)
		}

		if !destWallet.Balance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected dest balance 1000, got %s", destWallet.Balance)
		}
	})

	t.Run("concurrent transfers reject overdraft", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		source := testDB.CreateTestWalletWithBalance(ctx, "source", decimal.NewFromInt(100))
		dest := testDB.CreateTestWallet(ctx, "dest")

		numTransfers := 20
		transferAmount := decimal.NewFromInt(10) // 20 * 10 = 200 > 100

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		wg.Add(numTransfers)

		for i := 0; i < numTransfers; i++ {
			go func() {
				defer wg.Done()

				if _, err := transferUC.Transfer(ctx, usecase.TransferInput{
					FromWalletID: source.ID,
					ToWalletID:   dest.ID,
					Amount:       transferAmount,
				}); err == nil {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		// Exactly 10 transfers can succeed
		if successCount.Load() != 10 {
			t.Errorf("expected 10 successful transfers, got %d", successCount.Load())
		}

		sourceWallet, _ := walletRepo.GetByID(ctx, source.ID)
		if sourceWallet.Balance.IsNegative() {
			t.Errorf("source wallet overdrawn: %s", sourceWallet.Balance)
		}
		if !sourceWallet.Balance.Equal(decimal.Zero) {
			t.Errorf("expected source balance 0, got %s", sourceWallet.Balance)
		}
	})

	t.Run("opposite direction transfers do not deadlock", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		walletA := testDB.CreateTestWalletWithBalance(ctx, "a", decimal.NewFromInt(1000))
		walletB := testDB.CreateTestWalletWithBalance(ctx, "b", decimal.NewFromInt(1000))

		numRounds := 50

		var (
			wg       sync.WaitGroup
			failures atomic.Int32
		)

		wg.Add(numRounds * 2)

		for i := 0; i < numRounds; i++ {
			go func() {
				defer wg.Done()

				if _, err := transferUC.Transfer(ctx, usecase.TransferInput{
					FromWalletID: walletA.ID,
					ToWalletID:   walletB.ID,
					Amount:       decimal.NewFromInt(1),
				}); err != nil {
					failures.Add(1)
				}
			}()

			go func() {
				defer wg.Done()

				if _, err := transferUC.Transfer(ctx, usecase.TransferInput{
					FromWalletID: walletB.ID,
					ToWalletID:   walletA.ID,
					Amount:       decimal.NewFromInt(1),
				}); err != nil {
					failures.Add(1)
				}
			}()
		}

		wg.Wait()

		if failures.Load() != 0 {
			t.Errorf("expected no failures, got %d", failures.Load())
		}

		// Equal flow in both directions conserves both balances
		a, _ := walletRepo.GetByID(ctx, walletA.ID)
		b, _ := walletRepo.GetByID(ctx, walletB.ID)

		if !a.Balance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected wallet A balance 1000, got %s", a.Balance)
		}
		if !b.Balance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected wallet B balance 1000, got %s", b.Balance)
		}
	})

	t.Run("concurrent deposits all apply", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		walletUC, _ := newUseCases(testDB)
		wallet := testDB.CreateTestWallet(ctx, "sink")

		numDeposits := 50

		var (
			wg       sync.WaitGroup
			failures atomic.Int32
		)

		wg.Add(numDeposits)

		for i := 0; i < numDeposits; i++ {
			go func() {
				defer wg.Done()

				if _, err := walletUC.FundWallet(ctx, usecase.FundWalletInput{
					WalletID: wallet.ID,
					Amount:   decimal.NewFromInt(2),
				}); err != nil {
					failures.Add(1)
				}
			}()
		}

		wg.Wait()

		if failures.Load() != 0 {
			t.Errorf("expected no failures, got %d", failures.Load())
		}

		got, _ := walletRepo.GetByID(ctx, wallet.ID)
		if !got.Balance.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected balance 100, got %s", got.Balance)
		}
	})
}
