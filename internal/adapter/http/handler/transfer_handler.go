package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/finwallet/internal/adapter/http/dto"
	"github.com/iho/finwallet/internal/domain"
	"github.com/iho/finwallet/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Preview(ctx context.Context, input usecase.TransferInput) (*domain.TransferPreview, error)
	Execute(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error)
}

// TransferHandler handles wallet transfer HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Preview computes post-transfer balances without applying them.
func (h *TransferHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	preview, err := h.transferUC.Preview(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to preview transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferPreviewFromDomain(preview))
}

// Execute applies a transfer between two wallets.
func (h *TransferHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.transferUC.Execute(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to execute transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferResultFromUseCase(result))
}
