package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/finwallet/internal/domain"
	"github.com/iho/finwallet/internal/infrastructure/metrics"
)

// ScheduleUseCase handles scheduled transactions and their execution.
type ScheduleUseCase struct {
	txManager    TransactionManager
	scheduleRepo ScheduleRepository
	walletUC     *WalletUseCase
	transferUC   *TransferUseCase
	activityRepo ActivityRepository
	idGen        IDGenerator
}

// NewScheduleUseCase creates a new ScheduleUseCase.
func NewScheduleUseCase(
	txManager TransactionManager,
	scheduleRepo ScheduleRepository,
	walletUC *WalletUseCase,
	transferUC *TransferUseCase,
	activityRepo ActivityRepository,
	idGen IDGenerator,
) *ScheduleUseCase {
	return &ScheduleUseCase{
		txManager:    txManager,
		scheduleRepo: scheduleRepo,
		walletUC:     walletUC,
		transferUC:   transferUC,
		activityRepo: activityRepo,
		idGen:        idGen,
	}
}

// CreateScheduleInput represents input for creating a scheduled transaction.
type CreateScheduleInput struct {
	WalletID       string
	TargetWalletID *string
	Amount         decimal.Decimal
	Kind           domain.ScheduleKind
	Recurrence     domain.Recurrence
	FirstRun       time.Time
}

// CreateSchedule creates a new scheduled transaction.
func (uc *ScheduleUseCase) CreateSchedule(ctx context.Context, input CreateScheduleInput) (*domain.ScheduledTransaction, error) {
	now := time.Now().UTC()

	firstRun := input.FirstRun
	if firstRun.IsZero() {
		firstRun = now
	}

	schedule := &domain.ScheduledTransaction{
		ID:             uc.idGen.Generate(),
		WalletID:       input.WalletID,
		TargetWalletID: input.TargetWalletID,
		Amount:         input.Amount,
		Kind:           input.Kind,
		Recurrence:     input.Recurrence,
		NextRun:        firstRun,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.walletUC.GetWallet(ctx, input.WalletID); err != nil {
		return nil, err
	}

	if input.TargetWalletID != nil {
		if _, err := uc.walletUC.GetWallet(ctx, *input.TargetWalletID); err != nil {
			return nil, err
		}
	}

	if err := uc.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}

// ListSchedulesInput represents input for listing schedules.
type ListSchedulesInput struct {
	WalletID string
	Limit    int
	Offset   int
}

// ListSchedules lists scheduled transactions, optionally scoped to a wallet.
func (uc *ScheduleUseCase) ListSchedules(ctx context.Context, input ListSchedulesInput) ([]*domain.ScheduledTransaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.scheduleRepo.List(ctx, input.WalletID, limit, offset)
}

// DeleteSchedule deletes a scheduled transaction.
func (uc *ScheduleUseCase) DeleteSchedule(ctx context.Context, id string) error {
	if _, err := uc.scheduleRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return uc.scheduleRepo.Delete(ctx, id)
}

// RunDue claims schedules due at now and executes each one. A claim advances
// NextRun in the claiming transaction, so a due row is executed at most once
// even with concurrent runners. Returns the number of schedules executed.
func (uc *ScheduleUseCase) RunDue(ctx context.Context, now time.Time) (int, error) {
	// 1. Claim due rows and advance their NextRun atomically.
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	due, err := uc.scheduleRepo.ClaimDue(ctx, tx, now, DefaultScheduleBatch)
	if err != nil {
		return 0, err
	}

	for _, s := range due {
		next := s.Advance(now)
		if err := uc.scheduleRepo.UpdateNextRun(ctx, tx, s.ID, next, now); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	// 2. Execute the claimed schedules. Failures are logged per schedule and
	// do not abort the batch; the next occurrence will try again.
	executed := 0

	for _, s := range due {
		if err := uc.execute(ctx, s); err != nil {
			metrics.SchedulesRun.WithLabelValues("failure").Inc()
			log.Warn().Err(err).Str("schedule_id", s.ID).Msg("scheduled transaction failed")

			uc.logRun(ctx, s, domain.ActivityStatusFailure, err.Error())

			continue
		}

		metrics.SchedulesRun.WithLabelValues("success").Inc()
		uc.logRun(ctx, s, domain.ActivityStatusSuccess, "")
		executed++
	}

	return executed, nil
}

func (uc *ScheduleUseCase) execute(ctx context.Context, s *domain.ScheduledTransaction) error {
	switch s.Kind {
	case domain.ScheduleTransfer:
		_, err := uc.transferUC.Execute(ctx, TransferInput{
			SourceWalletID: s.WalletID,
			TargetWalletID: *s.TargetWalletID,
			Amount:         s.Amount,
		})

		return err
	default:
		_, err := uc.walletUC.Withdraw(ctx, WithdrawInput{
			WalletID: s.WalletID,
			Amount:   s.Amount,
		})

		return err
	}
}

func (uc *ScheduleUseCase) logRun(ctx context.Context, s *domain.ScheduledTransaction, status, errMsg string) {
	_ = uc.activityRepo.Create(ctx, &domain.ActivityLog{
		Action:       string(domain.ActivityScheduleRun),
		WalletID:     s.WalletID,
		ResourceType: "schedule",
		ResourceID:   s.ID,
		AfterState:   domain.MarshalState(s),
		Status:       status,
		ErrorMessage: errMsg,
		CreatedAt:    time.Now().UTC(),
	})
}
