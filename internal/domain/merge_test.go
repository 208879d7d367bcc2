package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testWallet(id, currency, balance string, txCount int64) *Wallet {
	return &Wallet{
		ID:               id,
		Name:             id,
		Currency:         currency,
		Balance:          decimal.RequireFromString(balance),
		TransactionCount: txCount,
	}
}

func TestMergeIntent_Validate(t *testing.T) {
	tests := []struct {
		name        string
		intent      MergeIntent
		expectError error
	}{
		{
			name:        "valid intent",
			intent:      MergeIntent{SourceWalletID: "w1", TargetWalletID: "w2", Keep: KeepTarget},
			expectError: nil,
		},
		{
			name:        "same wallet",
			intent:      MergeIntent{SourceWalletID: "w1", TargetWalletID: "w1", Keep: KeepTarget},
			expectError: ErrSameWallet,
		},
		{
			name:        "bad keep currency",
			intent:      MergeIntent{SourceWalletID: "w1", TargetWalletID: "w2", Keep: "BOTH"},
			expectError: ErrInvalidKeepCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.intent.Validate()
			if err != tt.expectError {
				t.Errorf("expected error %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestPreviewMerge_SameCurrency(t *testing.T) {
	rates := DefaultRateTable()
	source := testWallet("src", "VND", "1000000", 12)
	target := testWallet("dst", "VND", "500000", 30)

	for _, keep := range []KeepCurrency{KeepSource, KeepTarget} {
		preview := PreviewMerge(source, target, keep, rates)

		if preview.Currency != "VND" {
			t.Errorf("keep=%s: currency = %s, want VND", keep, preview.Currency)
		}

		if !preview.NewBalance.Equal(decimal.NewFromInt(1500000)) {
			t.Errorf("keep=%s: new balance = %s, want 1500000", keep, preview.NewBalance)
		}

		if preview.TotalTransactionCount != 42 {
			t.Errorf("keep=%s: total tx count = %d, want 42", keep, preview.TotalTransactionCount)
		}

		if preview.RateUsed != "" || preview.ConvertedFrom != "" {
			t.Errorf("keep=%s: expected no conversion strings, got %q / %q", keep, preview.RateUsed, preview.ConvertedFrom)
		}
	}
}

func TestPreviewMerge_KeepTarget(t *testing.T) {
	rates := DefaultRateTable()
	source := testWallet("src", "USD", "100", 5)
	target := testWallet("dst", "VND", "500000", 7)

	preview := PreviewMerge(source, target, KeepTarget, rates)

	if preview.Currency != "VND" {
		t.Errorf("currency = %s, want VND", preview.Currency)
	}

	// 100 USD * 24350 = 2435000 VND, added to 500000.
	if !preview.NewBalance.Equal(decimal.NewFromInt(2935000)) {
		t.Errorf("new balance = %s, want 2935000", preview.NewBalance)
	}

	if preview.TotalTransactionCount != 12 {
		t.Errorf("total tx count = %d, want 12", preview.TotalTransactionCount)
	}

	if preview.RateUsed != "1 USD = 24350 VND" {
		t.Errorf("rate used = %q", preview.RateUsed)
	}

	if preview.ConvertedFrom != "100 USD -> 2435000 VND" {
		t.Errorf("converted from = %q", preview.ConvertedFrom)
	}
}

func TestPreviewMerge_KeepSource(t *testing.T) {
	rates := DefaultRateTable()
	source := testWallet("src", "USD", "100", 5)
	target := testWallet("dst", "VND", "500000", 7)

	preview := PreviewMerge(source, target, KeepSource, rates)

	if preview.Currency != "USD" {
		t.Errorf("currency = %s, want USD", preview.Currency)
	}

	// 500000 VND / 24350 = 20.5338..., rounded to 20.53 USD.
	want := decimal.RequireFromString("120.53")
	if !preview.NewBalance.Equal(want) {
		t.Errorf("new balance = %s, want %s", preview.NewBalance, want)
	}

	if preview.TotalTransactionCount != 12 {
		t.Errorf("total tx count = %d, want 12", preview.TotalTransactionCount)
	}

	if preview.RateUsed == "" || preview.ConvertedFrom == "" {
		t.Error("expected conversion strings for cross-currency merge")
	}
}

func TestPreviewMerge_TransactionCountConservation(t *testing.T) {
	rates := DefaultRateTable()

	tests := []struct {
		name   string
		source *Wallet
		target *Wallet
		keep   KeepCurrency
	}{
		{"same currency", testWallet("a", "VND", "10", 1), testWallet("b", "VND", "20", 2), KeepTarget},
		{"keep target cross", testWallet("a", "USD", "10", 100), testWallet("b", "VND", "20", 200), KeepTarget},
		{"keep source cross", testWallet("a", "USD", "10", 0), testWallet("b", "VND", "20", 9), KeepSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preview := PreviewMerge(tt.source, tt.target, tt.keep, rates)

			want := tt.source.TransactionCount + tt.target.TransactionCount
			if preview.TotalTransactionCount != want {
				t.Errorf("total tx count = %d, want %d", preview.TotalTransactionCount, want)
			}
		})
	}
}
