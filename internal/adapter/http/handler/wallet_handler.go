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

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	CreateWallet(ctx context.Context, input usecase.CreateWalletInput) (*domain.Wallet, error)
	GetWallet(ctx context.Context, id string) (*domain.Wallet, error)
	ListWallets(ctx context.Context, input usecase.ListWalletsInput) ([]*domain.Wallet, error)
	DeleteWallet(ctx context.Context, id string) error
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Wallet, error)
	CreateGroup(ctx context.Context, input usecase.CreateGroupInput) (*domain.WalletGroup, error)
	ListGroups(ctx context.Context, limit, offset int) ([]*domain.WalletGroup, error)
	ListActivity(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error)
}

// WalletHandler handles wallet-related HTTP requests.
type WalletHandler struct {
	walletUC WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC WalletService) *WalletHandler {
	return &WalletHandler{walletUC: walletUC}
}

// Create creates a new wallet.
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wallet, err := h.walletUC.CreateWallet(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.WalletFromDomain(wallet))
}

// Get retrieves a wallet by ID.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	wallet, err := h.walletUC.GetWallet(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// List lists wallets, optionally scoped to a group.
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	wallets, err := h.walletUC.ListWallets(r.Context(), usecase.ListWalletsInput{
		GroupID: r.URL.Query().Get("group_id"),
		Limit:   parseIntQuery(r, "limit", 50),
		Offset:  parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list wallets", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListWalletsResponse{
		Wallets: dto.WalletsFromDomain(wallets),
		Total:   int64(len(wallets)),
	})
}

// Delete deletes a wallet.
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	if err := h.walletUC.DeleteWallet(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete wallet", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Withdraw removes an amount from a wallet's balance.
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wallet, err := h.walletUC.Withdraw(r.Context(), usecase.WithdrawInput{
		WalletID: id,
		Amount:   req.Amount,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to withdraw", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// ListActivity lists the activity log for a wallet.
func (h *WalletHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	logs, err := h.walletUC.ListActivity(r.Context(), domain.ActivityFilter{
		WalletID: id,
		Action:   r.URL.Query().Get("action"),
		Limit:    parseIntQuery(r, "limit", 50),
		Offset:   parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list activity", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ActivitiesFromDomain(logs))
}

// CreateGroup creates a new wallet group.
func (h *WalletHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	group, err := h.walletUC.CreateGroup(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create group", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.GroupFromDomain(group))
}

// ListGroups lists wallet groups.
func (h *WalletHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.walletUC.ListGroups(r.Context(), parseIntQuery(r, "limit", 50), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list groups", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GroupsFromDomain(groups))
}
