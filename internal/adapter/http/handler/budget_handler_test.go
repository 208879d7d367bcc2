package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/finwallet/internal/adapter/http/dto"
	"github.com/iho/finwallet/internal/domain"
	"github.com/iho/finwallet/internal/usecase"
)

type budgetServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateBudgetInput) (*domain.Budget, error)
	getFn    func(ctx context.Context, id string) (*domain.Budget, error)
	listFn   func(ctx context.Context, input usecase.ListBudgetsInput) ([]*domain.Budget, error)
	checkFn  func(ctx context.Context, budgetID string, pending decimal.Decimal) (*usecase.CheckResult, error)
	spendFn  func(ctx context.Context, budgetID string, amount decimal.Decimal) (*domain.Budget, error)
}

func (s *budgetServiceStub) CreateBudget(ctx context.Context, input usecase.CreateBudgetInput) (*domain.Budget, error) {
	return s.createFn(ctx, input)
}

func (s *budgetServiceStub) GetBudget(ctx context.Context, id string) (*domain.Budget, error) {
	return s.getFn(ctx, id)
}

func (s *budgetServiceStub) ListBudgets(ctx context.Context, input usecase.ListBudgetsInput) ([]*domain.Budget, error) {
	return s.listFn(ctx, input)
}

func (s *budgetServiceStub) CheckSpend(ctx context.Context, budgetID string, pending decimal.Decimal) (*usecase.CheckResult, error) {
	return s.checkFn(ctx, budgetID, pending)
}

func (s *budgetServiceStub) RecordSpend(ctx context.Context, budgetID string, amount decimal.Decimal) (*domain.Budget, error) {
	return s.spendFn(ctx, budgetID, amount)
}

// withURLParam injects a chi URL parameter into the request context.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestBudgetHandler_Check_Success(t *testing.T) {
	result := &usecase.CheckResult{
		Check: domain.ThresholdCheck{
			RemainingBefore: decimal.NewFromInt(20000),
			RemainingAfter:  decimal.NewFromInt(-10000),
			TotalAfter:      decimal.NewFromInt(110000),
			PercentAfter:    decimal.NewFromInt(110),
			IsExceeding:     true,
		},
		Status: domain.ThresholdExceeding,
	}

	var capturedID string
	h := NewBudgetHandler(&budgetServiceStub{
		checkFn: func(ctx context.Context, budgetID string, pending decimal.Decimal) (*usecase.CheckResult, error) {
			capturedID = budgetID
			return result, nil
		},
	})

	body, _ := json.Marshal(dto.BudgetSpendRequest{Amount: decimal.NewFromInt(30000)})
	req := httptest.NewRequest(http.MethodPost, "/budgets/b-1/check", bytes.NewReader(body))
	req = withURLParam(req, "id", "b-1")
	rec := httptest.NewRecorder()

	h.Check(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if capturedID != "b-1" {
		t.Fatalf("expected budget ID b-1, got %s", capturedID)
	}

	var resp dto.ThresholdCheckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "exceeding" || !resp.IsExceeding {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !resp.RemainingAfter.Equal(decimal.NewFromInt(-10000)) {
		t.Fatalf("expected remaining -10000, got %s", resp.RemainingAfter)
	}
}

func TestBudgetHandler_Check_NotFound(t *testing.T) {
	h := NewBudgetHandler(&budgetServiceStub{
		checkFn: func(ctx context.Context, budgetID string, pending decimal.Decimal) (*usecase.CheckResult, error) {
			return nil, domain.ErrBudgetNotFound
		},
	})

	body, _ := json.Marshal(dto.BudgetSpendRequest{Amount: decimal.NewFromInt(100)})
	req := httptest.NewRequest(http.MethodPost, "/budgets/missing/check", bytes.NewReader(body))
	req = withURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	h.Check(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestBudgetHandler_Create_Success(t *testing.T) {
	budget := &domain.Budget{
		ID:           "b-1",
		Name:         "Groceries",
		WalletID:     "w-1",
		LimitAmount:  decimal.NewFromInt(100000),
		Spent:        decimal.Zero,
		AlertPercent: 80,
	}

	h := NewBudgetHandler(&budgetServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateBudgetInput) (*domain.Budget, error) {
			return budget, nil
		},
	})

	body, _ := json.Marshal(dto.CreateBudgetRequest{
		Name:        "Groceries",
		WalletID:    "w-1",
		LimitAmount: decimal.NewFromInt(100000),
	})
	req := httptest.NewRequest(http.MethodPost, "/budgets", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp dto.BudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "b-1" || resp.AlertPercent != 80 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestBudgetHandler_Spend_InvalidAmount(t *testing.T) {
	h := NewBudgetHandler(&budgetServiceStub{
		spendFn: func(ctx context.Context, budgetID string, amount decimal.Decimal) (*domain.Budget, error) {
			return nil, domain.ErrInvalidAmount
		},
	})

	body, _ := json.Marshal(dto.BudgetSpendRequest{Amount: decimal.Zero})
	req := httptest.NewRequest(http.MethodPost, "/budgets/b-1/spend", bytes.NewReader(body))
	req = withURLParam(req, "id", "b-1")
	rec := httptest.NewRecorder()

	h.Spend(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
