package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/finwallet/internal/adapter/http/dto"
	"github.com/iho/finwallet/internal/domain"
	"github.com/iho/finwallet/internal/usecase"
)

type transferServiceStub struct {
	previewFn func(ctx context.Context, input usecase.TransferInput) (*domain.TransferPreview, error)
	executeFn func(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error)
}

func (s *transferServiceStub) Preview(ctx context.Context, input usecase.TransferInput) (*domain.TransferPreview, error) {
	return s.previewFn(ctx, input)
}

func (s *transferServiceStub) Execute(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error) {
	return s.executeFn(ctx, input)
}

func TestTransferHandler_Preview_Success(t *testing.T) {
	preview := &domain.TransferPreview{
		Source: domain.WalletDelta{
			Before: decimal.NewFromInt(100),
			After:  decimal.NewFromInt(90),
			Change: decimal.NewFromInt(-10),
		},
		Target: domain.WalletDelta{
			Before: decimal.Zero,
			After:  decimal.NewFromInt(243500),
			Change: decimal.NewFromInt(243500),
		},
		ConvertedAmount: decimal.NewFromInt(243500),
		RateUsed:        "1 USD = 24350 VND",
		ConvertedFrom:   "10 USD -> 243500 VND",
	}

	h := NewTransferHandler(&transferServiceStub{
		previewFn: func(ctx context.Context, input usecase.TransferInput) (*domain.TransferPreview, error) {
			return preview, nil
		},
	})

	body, _ := json.Marshal(dto.TransferRequest{
		SourceWalletID: "w-1",
		TargetWalletID: "w-2",
		Amount:         decimal.NewFromInt(10),
	})

	req := httptest.NewRequest(http.MethodPost, "/transfers/preview", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Preview(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.TransferPreviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Target.After.Equal(decimal.NewFromInt(243500)) {
		t.Fatalf("expected target after 243500, got %s", resp.Target.After)
	}
	if resp.RateUsed != "1 USD = 24350 VND" {
		t.Fatalf("unexpected rate string: %s", resp.RateUsed)
	}
}

func TestTransferHandler_Preview_DomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "insufficient balance", err: domain.ErrInsufficientBalance, wantStatus: http.StatusBadRequest},
		{name: "invalid amount", err: domain.ErrInvalidAmount, wantStatus: http.StatusBadRequest},
		{name: "wallet not found", err: domain.ErrWalletNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTransferHandler(&transferServiceStub{
				previewFn: func(ctx context.Context, input usecase.TransferInput) (*domain.TransferPreview, error) {
					return nil, tt.err
				},
			})

			body, _ := json.Marshal(dto.TransferRequest{
				SourceWalletID: "w-1",
				TargetWalletID: "w-2",
				Amount:         decimal.NewFromInt(10),
			})
			req := httptest.NewRequest(http.MethodPost, "/transfers/preview", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			h.Preview(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestTransferHandler_Execute_Success(t *testing.T) {
	result := &usecase.TransferResult{
		Source: &domain.Wallet{ID: "w-1", Currency: "USD", Balance: decimal.NewFromInt(90), TransactionCount: 3},
		Target: &domain.Wallet{ID: "w-2", Currency: "VND", Balance: decimal.NewFromInt(743500), TransactionCount: 4},
		Preview: &domain.TransferPreview{
			ConvertedAmount: decimal.NewFromInt(243500),
		},
	}

	h := NewTransferHandler(&transferServiceStub{
		executeFn: func(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error) {
			return result, nil
		},
	})

	body, _ := json.Marshal(dto.TransferRequest{
		SourceWalletID: "w-1",
		TargetWalletID: "w-2",
		Amount:         decimal.NewFromInt(10),
	})
	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Execute(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.TransferResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Source.ID != "w-1" || resp.Target.ID != "w-2" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
