package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finwallet/internal/domain"
	"github.com/iho/finwallet/internal/infrastructure/metrics"
)

// TransferUseCase handles wallet-to-wallet transfer previews and execution.
type TransferUseCase struct {
	txManager    TransactionManager
	walletRepo   WalletRepository
	activityRepo ActivityRepository
	rates        *RateUseCase
	retrier      Retrier
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	activityRepo ActivityRepository,
	rates *RateUseCase,
	retrier Retrier,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:    txManager,
		walletRepo:   walletRepo,
		activityRepo: activityRepo,
		rates:        rates,
		retrier:      retrier,
	}
}

// TransferInput represents a transfer intent from the caller. Amount is in
// the source wallet's currency.
type TransferInput struct {
	SourceWalletID string
	TargetWalletID string
	Amount         decimal.Decimal
}

func (i TransferInput) intent() *domain.TransferIntent {
	return &domain.TransferIntent{
		SourceWalletID: i.SourceWalletID,
		TargetWalletID: i.TargetWalletID,
		Amount:         i.Amount,
	}
}

// TransferResult is the outcome of an executed transfer.
type TransferResult struct {
	Source  *domain.Wallet
	Target  *domain.Wallet
	Preview *domain.TransferPreview
}

// Preview computes the transfer outcome without applying it.
func (uc *TransferUseCase) Preview(ctx context.Context, input TransferInput) (*domain.TransferPreview, error) {
	if err := input.intent().Validate(); err != nil {
		return nil, err
	}

	source, err := uc.walletRepo.GetByID(ctx, input.SourceWalletID)
	if err != nil {
		return nil, err
	}

	target, err := uc.walletRepo.GetByID(ctx, input.TargetWalletID)
	if err != nil {
		return nil, err
	}

	return domain.PreviewTransfer(source, target, input.Amount, uc.rates.Table(ctx))
}

// Execute applies a transfer: the source wallet is debited by amount, the
// target credited with the converted amount, and both transaction counts are
// incremented.
func (uc *TransferUseCase) Execute(ctx context.Context, input TransferInput) (*TransferResult, error) {
	// 0. Validate before touching the database.
	if err := input.intent().Validate(); err != nil {
		return nil, err
	}

	table := uc.rates.Table(ctx)

	// 1. Lock wallets in sorted ID order (deadlock prevention).
	ids := []string{input.SourceWalletID, input.TargetWalletID}
	sort.Strings(ids)

	var result *TransferResult

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		wallets, err := uc.walletRepo.GetByIDsForUpdate(ctx, tx, ids)
		if err != nil {
			return err
		}

		walletMap := make(map[string]*domain.Wallet, len(wallets))
		for _, w := range wallets {
			walletMap[w.ID] = w
		}

		source := walletMap[input.SourceWalletID]
		target := walletMap[input.TargetWalletID]

		if source == nil || target == nil {
			return domain.ErrWalletNotFound
		}

		// 2. Compute the preview against the locked snapshots; preconditions
		// (positive amount, sufficient balance) are enforced here.
		preview, err := domain.PreviewTransfer(source, target, input.Amount, table)
		if err != nil {
			return err
		}

		before := domain.JSON{
			"source": domain.MarshalState(source),
			"target": domain.MarshalState(target),
		}

		now := time.Now().UTC()

		// 3. Apply both sides inside the same transaction.
		err = uc.walletRepo.UpdateBalance(ctx, tx, source.ID, preview.Source.After, source.TransactionCount+1, now)
		if err != nil {
			return err
		}

		err = uc.walletRepo.UpdateBalance(ctx, tx, target.ID, preview.Target.After, target.TransactionCount+1, now)
		if err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		src := *source
		src.Balance = preview.Source.After
		src.TransactionCount++
		src.UpdatedAt = now

		dst := *target
		dst.Balance = preview.Target.After
		dst.TransactionCount++
		dst.UpdatedAt = now

		result = &TransferResult{Source: &src, Target: &dst, Preview: preview}

		uc.logActivity(ctx, before, result)

		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.TransfersExecuted.Inc()
	if result.Preview.RateUsed != "" {
		metrics.ConversionsApplied.Inc()
	}

	return result, nil
}

func (uc *TransferUseCase) logActivity(ctx context.Context, before domain.JSON, result *TransferResult) {
	_ = uc.activityRepo.Create(ctx, &domain.ActivityLog{
		Action:       string(domain.ActivityTransferExecute),
		WalletID:     result.Source.ID,
		ResourceType: "wallet",
		ResourceID:   result.Target.ID,
		BeforeState:  before,
		AfterState: domain.JSON{
			"source": domain.MarshalState(result.Source),
			"target": domain.MarshalState(result.Target),
		},
		Status:    domain.ActivityStatusSuccess,
		CreatedAt: time.Now().UTC(),
	})
}
