package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/iho/finwallet/internal/adapter/http/dto"
	"github.com/iho/finwallet/tests/testutil"
	"github.com/shopspring/decimal"
)

func TestTransferCrossCurrency(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	source := testDB.CreateWallet(ctx, "USD", "100")
	target := testDB.CreateWallet(ctx, "VND", "500000")

	rec := postRequest(t, router, "/api/v1/transfers/", dto.TransferRequest{
		SourceWalletID: source.ID,
		TargetWalletID: target.ID,
		Amount:         decimal.NewFromInt(10),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("transfer failed: status %d body %s", rec.Code, rec.Body.String())
	}

	var result dto.TransferResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}

	if result.Source.Balance.String() != "90" {
		t.Fatalf("expected source balance 90, got %s", result.Source.Balance)
	}
	if result.Target.Balance.String() != "743500" {
		t.Fatalf("expected target balance 743500, got %s", result.Target.Balance)
	}
}

func TestTransferInsufficientBalance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	source := testDB.CreateWallet(ctx, "USD", "5")
	target := testDB.CreateWallet(ctx, "USD", "0")

	rec := postRequest(t, router, "/api/v1/transfers/", dto.TransferRequest{
		SourceWalletID: source.ID,
		TargetWalletID: target.ID,
		Amount:         decimal.NewFromInt(10),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for insufficient balance, got %d body %s", rec.Code, rec.Body.String())
	}
}
