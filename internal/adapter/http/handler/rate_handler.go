package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/finwallet/internal/adapter/http/dto"
	"github.com/iho/finwallet/internal/usecase"
)

// RateService defines the behavior needed by RateHandler.
type RateService interface {
	Resolve(ctx context.Context, from, to string) decimal.Decimal
	SetRate(ctx context.Context, input usecase.SetRateInput) error
}

// RateHandler handles exchange-rate HTTP requests.
type RateHandler struct {
	rateUC RateService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateUC RateService) *RateHandler {
	return &RateHandler{rateUC: rateUC}
}

// Get resolves the rate converting from one currency into another.
func (h *RateHandler) Get(w http.ResponseWriter, r *http.Request) {
	from := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("from")))
	to := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("to")))

	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "missing from or to currency", "")
		return
	}

	rate := h.rateUC.Resolve(r.Context(), from, to)

	writeJSON(w, http.StatusOK, dto.RateResponse{
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         rate,
	})
}

// Set stores a directed exchange-rate override.
func (h *RateHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req dto.SetRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.rateUC.SetRate(r.Context(), req.ToUseCaseInput()); err != nil {
		writeError(w, mapDomainError(err), "failed to set rate", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RateResponse{
		FromCurrency: strings.ToUpper(strings.TrimSpace(req.FromCurrency)),
		ToCurrency:   strings.ToUpper(strings.TrimSpace(req.ToCurrency)),
		Rate:         req.Rate,
	})
}
