package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finwallet/internal/domain"
	"github.com/iho/finwallet/internal/usecase"
	"github.com/iho/finwallet/internal/usecase/mocks"
)

func newMergeUseCase(walletRepo *mocks.MockWalletRepository, activityRepo *mocks.MockActivityRepository) *usecase.MergeUseCase {
	rates := usecase.NewRateUseCase(mocks.NewMockRateRepository(), mocks.NewMockCache(), mocks.NewMockIDGenerator())

	return usecase.NewMergeUseCase(mocks.NewMockTransactionManager(), walletRepo, activityRepo, rates, mocks.NoopRetrier{})
}

func seedWalletRepo(t *testing.T, repo *mocks.MockWalletRepository, id, currency, balance string, txCount int64) *domain.Wallet {
	t.Helper()

	w := &domain.Wallet{
		ID:               id,
		Name:             "wallet " + id,
		Currency:         currency,
		Balance:          decimal.RequireFromString(balance),
		TransactionCount: txCount,
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}

	if err := repo.Create(context.Background(), w); err != nil {
		t.Fatalf("seed wallet %s: %v", id, err)
	}

	return w
}

func TestMergeUseCase_Preview(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.MergeInput
		setup       func(*mocks.MockWalletRepository)
		wantBalance string
		wantCur     string
		expectError bool
		errorType   error
	}{
		{
			name: "same currency merge",
			input: usecase.MergeInput{
				SourceWalletID: "w-1",
				TargetWalletID: "w-2",
				Keep:           domain.KeepTarget,
			},
			setup: func(repo *mocks.MockWalletRepository) {
				seedWalletRepo(t, repo, "w-1", "VND", "1000000", 3)
				seedWalletRepo(t, repo, "w-2", "VND", "500000", 2)
			},
			wantBalance: "1500000",
			wantCur:     "VND",
		},
		{
			name: "cross currency keep target",
			input: usecase.MergeInput{
				SourceWalletID: "w-1",
				TargetWalletID: "w-2",
				Keep:           domain.KeepTarget,
			},
			setup: func(repo *mocks.MockWalletRepository) {
				seedWalletRepo(t, repo, "w-1", "USD", "100", 1)
				seedWalletRepo(t, repo, "w-2", "VND", "500000", 1)
			},
			wantBalance: "2935000",
			wantCur:     "VND",
		},
		{
			name: "reject same wallet",
			input: usecase.MergeInput{
				SourceWalletID: "w-1",
				TargetWalletID: "w-1",
				Keep:           domain.KeepTarget,
			},
			setup:       func(repo *mocks.MockWalletRepository) { seedWalletRepo(t, repo, "w-1", "USD", "100", 1) },
			expectError: true,
			errorType:   domain.ErrSameWallet,
		},
		{
			name: "reject invalid keep currency",
			input: usecase.MergeInput{
				SourceWalletID: "w-1",
				TargetWalletID: "w-2",
				Keep:           domain.KeepCurrency("BOTH"),
			},
			setup: func(repo *mocks.MockWalletRepository) {
				seedWalletRepo(t, repo, "w-1", "USD", "100", 1)
				seedWalletRepo(t, repo, "w-2", "VND", "500000", 1)
			},
			expectError: true,
			errorType:   domain.ErrInvalidKeepCurrency,
		},
		{
			name: "source wallet missing",
			input: usecase.MergeInput{
				SourceWalletID: "missing",
				TargetWalletID: "w-2",
				Keep:           domain.KeepTarget,
			},
			setup:       func(repo *mocks.MockWalletRepository) { seedWalletRepo(t, repo, "w-2", "VND", "500000", 1) },
			expectError: true,
			errorType:   domain.ErrWalletNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walletRepo := mocks.NewMockWalletRepository()
			tt.setup(walletRepo)

			uc := newMergeUseCase(walletRepo, mocks.NewMockActivityRepository())

			preview, err := uc.Preview(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if preview.Currency != tt.wantCur {
				t.Errorf("expected currency %s, got %s", tt.wantCur, preview.Currency)
			}

			want := decimal.RequireFromString(tt.wantBalance)
			if !preview.NewBalance.Equal(want) {
				t.Errorf("expected balance %s, got %s", want, preview.NewBalance)
			}
		})
	}
}

func TestMergeUseCase_Execute(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	activityRepo := mocks.NewMockActivityRepository()

	seedWalletRepo(t, walletRepo, "w-1", "USD", "100", 4)
	seedWalletRepo(t, walletRepo, "w-2", "VND", "500000", 6)

	uc := newMergeUseCase(walletRepo, activityRepo)

	result, err := uc.Execute(context.Background(), usecase.MergeInput{
		SourceWalletID: "w-1",
		TargetWalletID: "w-2",
		Keep:           domain.KeepTarget,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Wallet.ID != "w-2" {
		t.Errorf("expected target wallet to survive, got %s", result.Wallet.ID)
	}

	if !result.Wallet.Balance.Equal(decimal.RequireFromString("2935000")) {
		t.Errorf("expected merged balance 2935000, got %s", result.Wallet.Balance)
	}

	if result.Wallet.TransactionCount != 10 {
		t.Errorf("expected transaction count 10, got %d", result.Wallet.TransactionCount)
	}

	// Source wallet is gone after the merge.
	if _, err := walletRepo.GetByID(context.Background(), "w-1"); !errors.Is(err, domain.ErrWalletNotFound) {
		t.Errorf("expected source wallet to be deleted, got %v", err)
	}

	// Surviving wallet carries the merged state.
	merged, err := walletRepo.GetByID(context.Background(), "w-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.Currency != "VND" {
		t.Errorf("expected currency VND, got %s", merged.Currency)
	}
	if !merged.Balance.Equal(decimal.RequireFromString("2935000")) {
		t.Errorf("expected stored balance 2935000, got %s", merged.Balance)
	}

	if len(activityRepo.Logs) != 1 {
		t.Fatalf("expected 1 activity entry, got %d", len(activityRepo.Logs))
	}
	if activityRepo.Logs[0].Action != string(domain.ActivityMergeExecute) {
		t.Errorf("expected merge.execute action, got %s", activityRepo.Logs[0].Action)
	}
}

func TestMergeUseCase_ExecuteKeepSource(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()

	seedWalletRepo(t, walletRepo, "w-1", "USD", "100", 1)
	seedWalletRepo(t, walletRepo, "w-2", "VND", "500000", 1)

	uc := newMergeUseCase(walletRepo, mocks.NewMockActivityRepository())

	result, err := uc.Execute(context.Background(), usecase.MergeInput{
		SourceWalletID: "w-1",
		TargetWalletID: "w-2",
		Keep:           domain.KeepSource,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The surviving wallet adopts the source currency.
	if result.Wallet.Currency != "USD" {
		t.Errorf("expected currency USD, got %s", result.Wallet.Currency)
	}
	if !result.Wallet.Balance.Equal(decimal.RequireFromString("120.53")) {
		t.Errorf("expected balance 120.53, got %s", result.Wallet.Balance)
	}
}

func TestMergeUseCase_ExecuteRollsBackOnDeleteFailure(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()

	seedWalletRepo(t, walletRepo, "w-1", "VND", "1000", 1)
	seedWalletRepo(t, walletRepo, "w-2", "VND", "2000", 1)

	deleteErr := errors.New("delete failed")
	walletRepo.DeleteTxFunc = func(ctx context.Context, tx usecase.Transaction, id string) error {
		return deleteErr
	}

	uc := newMergeUseCase(walletRepo, mocks.NewMockActivityRepository())

	_, err := uc.Execute(context.Background(), usecase.MergeInput{
		SourceWalletID: "w-1",
		TargetWalletID: "w-2",
		Keep:           domain.KeepTarget,
	})
	if !errors.Is(err, deleteErr) {
		t.Fatalf("expected delete error, got %v", err)
	}
}
