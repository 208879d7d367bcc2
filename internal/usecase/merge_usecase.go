package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/iho/finwallet/internal/domain"
	"github.com/iho/finwallet/internal/infrastructure/metrics"
)

// MergeUseCase handles wallet merge previews and execution.
type MergeUseCase struct {
	txManager    TransactionManager
	walletRepo   WalletRepository
	activityRepo ActivityRepository
	rates        *RateUseCase
	retrier      Retrier
}

// NewMergeUseCase creates a new MergeUseCase.
func NewMergeUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	activityRepo ActivityRepository,
	rates *RateUseCase,
	retrier Retrier,
) *MergeUseCase {
	return &MergeUseCase{
		txManager:    txManager,
		walletRepo:   walletRepo,
		activityRepo: activityRepo,
		rates:        rates,
		retrier:      retrier,
	}
}

// MergeInput represents a merge intent from the caller.
type MergeInput struct {
	SourceWalletID string
	TargetWalletID string
	Keep           domain.KeepCurrency
}

func (i MergeInput) intent() *domain.MergeIntent {
	return &domain.MergeIntent{
		SourceWalletID: i.SourceWalletID,
		TargetWalletID: i.TargetWalletID,
		Keep:           i.Keep,
	}
}

// MergeResult is the outcome of an executed merge: the surviving wallet plus
// the preview that was applied.
type MergeResult struct {
	Wallet  *domain.Wallet
	Preview *domain.MergePreview
}

// Preview computes the merge outcome without applying it.
func (uc *MergeUseCase) Preview(ctx context.Context, input MergeInput) (*domain.MergePreview, error) {
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

	return domain.PreviewMerge(source, target, input.Keep, uc.rates.Table(ctx)), nil
}

// Execute applies a merge: the target wallet receives the merged balance and
// transaction count (in the kept currency) and the source wallet is deleted.
// Irreversible once committed.
func (uc *MergeUseCase) Execute(ctx context.Context, input MergeInput) (*MergeResult, error) {
	// 0. Validate before touching the database.
	if err := input.intent().Validate(); err != nil {
		return nil, err
	}

	table := uc.rates.Table(ctx)

	// 1. Lock wallets in sorted ID order (deadlock prevention).
	ids := []string{input.SourceWalletID, input.TargetWalletID}
	sort.Strings(ids)

	var result *MergeResult

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

		// 2. Compute the preview against the locked snapshots.
		preview := domain.PreviewMerge(source, target, input.Keep, table)
		now := time.Now().UTC()

		// 3. Apply: target survives with the kept currency, source goes away.
		err = uc.walletRepo.UpdateMerged(ctx, tx, target.ID, preview.Currency, preview.NewBalance, preview.TotalTransactionCount, now)
		if err != nil {
			return err
		}

		if err := uc.walletRepo.DeleteTx(ctx, tx, source.ID); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		merged := *target
		merged.Currency = preview.Currency
		merged.Balance = preview.NewBalance
		merged.TransactionCount = preview.TotalTransactionCount
		merged.UpdatedAt = now

		result = &MergeResult{Wallet: &merged, Preview: preview}

		uc.logActivity(ctx, source, target, result)

		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.MergesExecuted.WithLabelValues(string(input.Keep)).Inc()
	if result.Preview.RateUsed != "" {
		metrics.ConversionsApplied.Inc()
	}

	return result, nil
}

func (uc *MergeUseCase) logActivity(ctx context.Context, source, target *domain.Wallet, result *MergeResult) {
	_ = uc.activityRepo.Create(ctx, &domain.ActivityLog{
		Action:       string(domain.ActivityMergeExecute),
		WalletID:     target.ID,
		ResourceType: "wallet",
		ResourceID:   source.ID,
		BeforeState: domain.JSON{
			"source": domain.MarshalState(source),
			"target": domain.MarshalState(target),
		},
		AfterState: domain.MarshalState(result.Wallet),
		Status:     domain.ActivityStatusSuccess,
		CreatedAt:  time.Now().UTC(),
	})
}
