package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finwallet/internal/adapter/http/dto"
	"github.com/iho/finwallet/internal/domain"
	"github.com/iho/finwallet/internal/usecase"
)

// ScheduleService defines the behavior needed by ScheduleHandler.
type ScheduleService interface {
	CreateSchedule(ctx context.Context, input usecase.CreateScheduleInput) (*domain.ScheduledTransaction, error)
	ListSchedules(ctx context.Context, input usecase.ListSchedulesInput) ([]*domain.ScheduledTransaction, error)
	DeleteSchedule(ctx context.Context, id string) error
}

// ScheduleHandler handles scheduled-transaction HTTP requests.
type ScheduleHandler struct {
	scheduleUC ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleUC ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleUC: scheduleUC}
}

// Create creates a new scheduled transaction.
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	schedule, err := h.scheduleUC.CreateSchedule(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create schedule", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ScheduleFromDomain(schedule))
}

// List lists scheduled transactions, optionally scoped to a wallet.
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleUC.ListSchedules(r.Context(), usecase.ListSchedulesInput{
		WalletID: r.URL.Query().Get("wallet_id"),
		Limit:    parseIntQuery(r, "limit", 50),
		Offset:   parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list schedules", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SchedulesFromDomain(schedules))
}

// Delete deletes a scheduled transaction.
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing schedule ID", "")
		return
	}

	if err := h.scheduleUC.DeleteSchedule(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete schedule", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
