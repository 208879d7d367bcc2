package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finwallet/internal/domain"
	"github.com/iho/finwallet/internal/infrastructure/metrics"
)

// WalletUseCase handles wallet and wallet-group business logic.
type WalletUseCase struct {
	txManager    TransactionManager
	walletRepo   WalletRepository
	groupRepo    GroupRepository
	activityRepo ActivityRepository
	idGen        IDGenerator
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	groupRepo GroupRepository,
	activityRepo ActivityRepository,
	idGen IDGenerator,
) *WalletUseCase {
	return &WalletUseCase{
		txManager:    txManager,
		walletRepo:   walletRepo,
		groupRepo:    groupRepo,
		activityRepo: activityRepo,
		idGen:        idGen,
	}
}

// CreateWalletInput represents input for creating a wallet.
type CreateWalletInput struct {
	Name           string
	Currency       string
	GroupID        *string
	InitialBalance decimal.Decimal
}

// CreateWallet creates a new wallet. The initial balance, if any, is rounded
// to the currency's native precision.
func (uc *WalletUseCase) CreateWallet(ctx context.Context, input CreateWalletInput) (*domain.Wallet, error) {
	if err := domain.ValidateWalletName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	if input.InitialBalance.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	now := time.Now().UTC()

	wallet := &domain.Wallet{
		ID:               uc.idGen.Generate(),
		Name:             strings.TrimSpace(input.Name),
		Currency:         currency,
		GroupID:          input.GroupID,
		Balance:          domain.RoundToCurrency(input.InitialBalance, currency),
		TransactionCount: 0,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := uc.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}

	metrics.WalletsCreated.Inc()

	return wallet, nil
}

// GetWallet retrieves a wallet by ID.
func (uc *WalletUseCase) GetWallet(ctx context.Context, id string) (*domain.Wallet, error) {
	return uc.walletRepo.GetByID(ctx, id)
}

// ListWalletsInput represents input for listing wallets.
type ListWalletsInput struct {
	GroupID string
	Limit   int
	Offset  int
}

// ListWallets lists wallets with pagination, optionally scoped to a group.
func (uc *WalletUseCase) ListWallets(ctx context.Context, input ListWalletsInput) ([]*domain.Wallet, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	if input.GroupID != "" {
		return uc.walletRepo.ListByGroup(ctx, input.GroupID, limit, offset)
	}

	return uc.walletRepo.List(ctx, limit, offset)
}

// DeleteWallet deletes a wallet by explicit user action.
func (uc *WalletUseCase) DeleteWallet(ctx context.Context, id string) error {
	wallet, err := uc.walletRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.walletRepo.Delete(ctx, wallet.ID); err != nil {
		return err
	}

	metrics.WalletsDeleted.Inc()
	uc.logActivity(ctx, domain.ActivityWalletDelete, wallet.ID, domain.MarshalState(wallet), nil)

	return nil
}

// WithdrawInput represents input for withdrawing from a wallet.
type WithdrawInput struct {
	WalletID string
	Amount   decimal.Decimal
}

// Withdraw removes amount from a wallet's balance and bumps its transaction
// count. The balance never goes negative.
func (uc *WalletUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Wallet, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	wallet, err := uc.walletRepo.GetByIDForUpdate(ctx, tx, input.WalletID)
	if err != nil {
		return nil, err
	}

	if err := wallet.ValidateWithdraw(input.Amount); err != nil {
		return nil, err
	}

	before := domain.MarshalState(wallet)
	now := time.Now().UTC()

	wallet.Balance = wallet.ApplyWithdraw(input.Amount)
	wallet.TransactionCount++
	wallet.UpdatedAt = now

	err = uc.walletRepo.UpdateBalance(ctx, tx, wallet.ID, wallet.Balance, wallet.TransactionCount, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.Withdrawals.Inc()
	uc.logActivity(ctx, domain.ActivityWalletWithdraw, wallet.ID, before, domain.MarshalState(wallet))

	return wallet, nil
}

// CreateGroupInput represents input for creating a wallet group.
type CreateGroupInput struct {
	Name        string
	Description string
}

// CreateGroup creates a new wallet group.
func (uc *WalletUseCase) CreateGroup(ctx context.Context, input CreateGroupInput) (*domain.WalletGroup, error) {
	if err := domain.ValidateWalletName(input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	group := &domain.WalletGroup{
		ID:          uc.idGen.Generate(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// ListGroups lists wallet groups with pagination.
func (uc *WalletUseCase) ListGroups(ctx context.Context, limit, offset int) ([]*domain.WalletGroup, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.groupRepo.List(ctx, limit, offset)
}

// ListActivity lists activity entries for a wallet.
func (uc *WalletUseCase) ListActivity(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.activityRepo.List(ctx, filter)
}

// logActivity records an activity entry; logging failures never fail the
// operation itself.
func (uc *WalletUseCase) logActivity(ctx context.Context, action domain.ActivityAction, walletID string, before, after domain.JSON) {
	_ = uc.activityRepo.Create(ctx, &domain.ActivityLog{
		Action:       string(action),
		WalletID:     walletID,
		ResourceType: "wallet",
		ResourceID:   walletID,
		BeforeState:  before,
		AfterState:   after,
		Status:       domain.ActivityStatusSuccess,
		CreatedAt:    time.Now().UTC(),
	})
}
