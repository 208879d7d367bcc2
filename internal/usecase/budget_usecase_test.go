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

func newBudgetUseCase(budgetRepo *mocks.MockBudgetRepository, walletRepo *mocks.MockWalletRepository, activityRepo *mocks.MockActivityRepository) *usecase.BudgetUseCase {
	return usecase.NewBudgetUseCase(mocks.NewMockTransactionManager(), budgetRepo, walletRepo, activityRepo, mocks.NewMockIDGenerator())
}

func seedBudget(t *testing.T, repo *mocks.MockBudgetRepository, id, walletID, limit, spent string, alertPercent int64) {
	t.Helper()

	err := repo.Create(context.Background(), &domain.Budget{
		ID:           id,
		Name:         "budget " + id,
		WalletID:     walletID,
		Category:     "groceries",
		LimitAmount:  decimal.RequireFromString(limit),
		Spent:        decimal.RequireFromString(spent),
		AlertPercent: alertPercent,
		StartDate:    time.Now().UTC(),
		EndDate:      time.Now().UTC().AddDate(0, 1, 0),
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed budget %s: %v", id, err)
	}
}

func TestBudgetUseCase_CreateBudget(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateBudgetInput
		wantAlert   int64
		expectError bool
		errorType   error
	}{
		{
			name: "valid budget",
			input: usecase.CreateBudgetInput{
				Name:         "Groceries",
				WalletID:     "w-1",
				LimitAmount:  decimal.NewFromInt(100000),
				AlertPercent: 90,
			},
			wantAlert: 90,
		},
		{
			name: "alert percent defaults when unset",
			input: usecase.CreateBudgetInput{
				Name:        "Groceries",
				WalletID:    "w-1",
				LimitAmount: decimal.NewFromInt(100000),
			},
			wantAlert: domain.DefaultAlertPercent,
		},
		{
			name: "alert percent defaults when out of range",
			input: usecase.CreateBudgetInput{
				Name:         "Groceries",
				WalletID:     "w-1",
				LimitAmount:  decimal.NewFromInt(100000),
				AlertPercent: 150,
			},
			wantAlert: domain.DefaultAlertPercent,
		},
		{
			name: "reject zero limit",
			input: usecase.CreateBudgetInput{
				Name:     "Groceries",
				WalletID: "w-1",
			},
			expectError: true,
			errorType:   domain.ErrInvalidAmount,
		},
		{
			name: "reject missing wallet",
			input: usecase.CreateBudgetInput{
				Name:        "Groceries",
				WalletID:    "missing",
				LimitAmount: decimal.NewFromInt(100000),
			},
			expectError: true,
			errorType:   domain.ErrWalletNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walletRepo := mocks.NewMockWalletRepository()
			seedWalletRepo(t, walletRepo, "w-1", "VND", "1000000", 0)

			uc := newBudgetUseCase(mocks.NewMockBudgetRepository(), walletRepo, mocks.NewMockActivityRepository())

			budget, err := uc.CreateBudget(context.Background(), tt.input)

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

			if budget.AlertPercent != tt.wantAlert {
				t.Errorf("expected alert percent %d, got %d", tt.wantAlert, budget.AlertPercent)
			}

			if !budget.Spent.IsZero() {
				t.Errorf("expected zero spent, got %s", budget.Spent)
			}
		})
	}
}

func TestBudgetUseCase_CheckSpend(t *testing.T) {
	tests := []struct {
		name        string
		limit       string
		spent       string
		alert       int64
		pending     string
		wantStatus  domain.ThresholdStatus
		wantPercent string
		expectError bool
		errorType   error
	}{
		{
			name:        "over limit",
			limit:       "100000",
			spent:       "80000",
			alert:       80,
			pending:     "30000",
			wantStatus:  domain.ThresholdExceeding,
			wantPercent: "110",
		},
		{
			name:        "approaching at alert threshold",
			limit:       "100000",
			spent:       "80000",
			alert:       80,
			pending:     "5000",
			wantStatus:  domain.ThresholdApproaching,
			wantPercent: "85",
		},
		{
			name:        "ok below higher alert threshold",
			limit:       "100000",
			spent:       "80000",
			alert:       90,
			pending:     "5000",
			wantStatus:  domain.ThresholdOK,
			wantPercent: "85",
		},
		{
			name:        "exact limit is not exceeding",
			limit:       "100000",
			spent:       "60000",
			alert:       80,
			pending:     "40000",
			wantStatus:  domain.ThresholdApproaching,
			wantPercent: "100",
		},
		{
			name:        "reject negative pending",
			limit:       "100000",
			spent:       "0",
			alert:       80,
			pending:     "-1",
			expectError: true,
			errorType:   domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budgetRepo := mocks.NewMockBudgetRepository()
			seedBudget(t, budgetRepo, "b-1", "w-1", tt.limit, tt.spent, tt.alert)

			uc := newBudgetUseCase(budgetRepo, mocks.NewMockWalletRepository(), mocks.NewMockActivityRepository())

			result, err := uc.CheckSpend(context.Background(), "b-1", decimal.RequireFromString(tt.pending))

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

			if result.Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, result.Status)
			}

			if !result.Check.PercentAfter.Equal(decimal.RequireFromString(tt.wantPercent)) {
				t.Errorf("expected percent %s, got %s", tt.wantPercent, result.Check.PercentAfter)
			}
		})
	}
}

func TestBudgetUseCase_CheckSpendUnknownBudget(t *testing.T) {
	uc := newBudgetUseCase(mocks.NewMockBudgetRepository(), mocks.NewMockWalletRepository(), mocks.NewMockActivityRepository())

	_, err := uc.CheckSpend(context.Background(), "missing", decimal.NewFromInt(100))
	if !errors.Is(err, domain.ErrBudgetNotFound) {
		t.Fatalf("expected ErrBudgetNotFound, got %v", err)
	}
}

func TestBudgetUseCase_RecordSpend(t *testing.T) {
	budgetRepo := mocks.NewMockBudgetRepository()
	activityRepo := mocks.NewMockActivityRepository()

	seedBudget(t, budgetRepo, "b-1", "w-1", "100000", "80000", 80)

	uc := newBudgetUseCase(budgetRepo, mocks.NewMockWalletRepository(), activityRepo)

	// Exceeding the limit does not block the spend.
	budget, err := uc.RecordSpend(context.Background(), "b-1", decimal.NewFromInt(30000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !budget.Spent.Equal(decimal.NewFromInt(110000)) {
		t.Errorf("expected spent 110000, got %s", budget.Spent)
	}

	stored, _ := budgetRepo.GetByID(context.Background(), "b-1")
	if !stored.Spent.Equal(decimal.NewFromInt(110000)) {
		t.Errorf("expected stored spent 110000, got %s", stored.Spent)
	}

	if len(activityRepo.Logs) != 1 {
		t.Fatalf("expected 1 activity entry, got %d", len(activityRepo.Logs))
	}
	if activityRepo.Logs[0].Action != string(domain.ActivityBudgetSpend) {
		t.Errorf("expected budget.spend action, got %s", activityRepo.Logs[0].Action)
	}
}

func TestBudgetUseCase_RecordSpendRejectsNonPositive(t *testing.T) {
	budgetRepo := mocks.NewMockBudgetRepository()
	seedBudget(t, budgetRepo, "b-1", "w-1", "100000", "0", 80)

	uc := newBudgetUseCase(budgetRepo, mocks.NewMockWalletRepository(), mocks.NewMockActivityRepository())

	_, err := uc.RecordSpend(context.Background(), "b-1", decimal.Zero)
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}
