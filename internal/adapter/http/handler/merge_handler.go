package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/finwallet/internal/adapter/http/dto"
	"github.com/iho/finwallet/internal/domain"
	"github.com/iho/finwallet/internal/usecase"
)

// MergeService defines the behavior needed by MergeHandler.
type MergeService interface {
	Preview(ctx context.Context, input usecase.MergeInput) (*domain.MergePreview, error)
	Execute(ctx context.Context, input usecase.MergeInput) (*usecase.MergeResult, error)
}

// MergeHandler handles wallet merge HTTP requests.
type MergeHandler struct {
	mergeUC MergeService
}

// NewMergeHandler creates a new MergeHandler.
func NewMergeHandler(mergeUC MergeService) *MergeHandler {
	return &MergeHandler{mergeUC: mergeUC}
}

// Preview computes the outcome of a merge without applying it.
func (h *MergeHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	preview, err := h.mergeUC.Preview(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to preview merge", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MergePreviewFromDomain(preview))
}

// Execute applies a merge. The source wallet is deleted; irreversible.
func (h *MergeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req dto.MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.mergeUC.Execute(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to execute merge", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MergeResultFromUseCase(result))
}
