package update_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	slotRepo "github.com/m04kA/jobfair-interviews/internal/infra/storage/slot"
	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
)

const (
	conflictKindOverlap = "slot_overlap"
	transitionEdited    = domain.SlotStatus("edited")
)

// UseCase use case для редактирования свободного слота
type UseCase struct {
	slotRepo    SlotRepository
	conflicts   ConflictDetector
	eventClient EventServiceClient
	txManager   TransactionManager
	metrics     MetricsRecorder
	rules       domain.SlotRules
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	conflicts ConflictDetector,
	eventClient EventServiceClient,
	txManager TransactionManager,
	metrics MetricsRecorder,
	rules domain.SlotRules,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:    slotRepo,
		conflicts:   conflicts,
		eventClient: eventClient,
		txManager:   txManager,
		metrics:     metrics,
		rules:       rules,
		logger:      logger,
	}
}

// Execute выполняет use case редактирования слота
// Редактировать можно только свободный слот. Пересечения проверяются заново без учёта самого слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Slot, error) {
	uc.logger.Info("UpdateSlot: slot id=%s by recruiter=%d, %s %s-%s",
		req.SlotID, req.RecruiterID, req.Date, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	input, err := validateRequest(req, uc.rules)
	if err != nil {
		uc.logger.Warn("UpdateSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Слот и права (без блокировки, мероприятие слота не меняется)
	current, err := uc.getSlot(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Окно интервью мероприятия
	if uc.rules.RequireEventWindow {
		if err := uc.checkEventWindow(ctx, current.EventID, input); err != nil {
			return nil, err
		}
	}

	// 4. Проверка пересечений и сохранение под блокировкой рекрутера
	var result *domain.Slot

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.slotRepo.LockRecruiter(txCtx, req.RecruiterID); err != nil {
			uc.logger.Error("UpdateSlot: failed to lock recruiter=%d: %v", req.RecruiterID, err)
			return fmt.Errorf("%w: lock recruiter: %w", ErrInternal, err)
		}

		slot, err := uc.getSlot(txCtx, req)
		if err != nil {
			return err
		}

		if !slot.CanBeEdited() {
			uc.logger.Warn("UpdateSlot: slot id=%s in status=%s cannot be edited", slot.ID, slot.Status)
			return domain.NewSlotTransitionError(slot.ID, slot.Status, transitionEdited)
		}

		timeRange := domain.TimeRange{Start: req.StartTime, End: req.EndTime}
		conflict, err := uc.conflicts.HasConflict(txCtx, slot.RecruiterID, input.date, timeRange, &slot.ID)
		if err != nil {
			return fmt.Errorf("%w: conflict check: %w", ErrInternal, err)
		}
		if conflict != nil {
			uc.logger.Warn("UpdateSlot: slot id=%s would overlap slot id=%s", slot.ID, conflict.ID)
			return domain.NewSlotConflictError(conflict)
		}

		slot.Date = input.date
		slot.StartTime = req.StartTime
		slot.EndTime = req.EndTime
		slot.DurationMinutes = input.minutes
		slot.Medium = domain.Medium(req.Medium)
		slot.Description = req.Description
		slot.ContactPhone = req.ContactPhone
		slot.Notes = req.Notes

		if err := uc.slotRepo.Update(txCtx, slot); err != nil {
			uc.logger.Error("UpdateSlot: failed to save slot id=%s: %v", slot.ID, err)
			return fmt.Errorf("%w: update slot: %w", ErrInternal, err)
		}

		result = slot
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			uc.metrics.IncConflict(conflictKindOverlap)
		}
		return nil, err
	}

	uc.logger.Info("UpdateSlot: slot id=%s updated", result.ID)
	return result, nil
}

func (uc *UseCase) getSlot(ctx context.Context, req *Request) (*domain.Slot, error) {
	slot, err := uc.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("UpdateSlot: slot id=%s not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("UpdateSlot: failed to get slot id=%s: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: get slot: %w", ErrInternal, err)
	}

	if !slot.IsOwnedBy(req.RecruiterID) {
		uc.logger.Warn("UpdateSlot: recruiter=%d does not own slot id=%s", req.RecruiterID, req.SlotID)
		return nil, ErrAccessDenied
	}
	return slot, nil
}

func (uc *UseCase) checkEventWindow(ctx context.Context, eventID int64, input *validated) error {
	event, err := uc.eventClient.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, eventservice.ErrEventNotFound) {
			uc.logger.Warn("UpdateSlot: event id=%d not found", eventID)
			return ErrEventNotFound
		}
		uc.logger.Error("UpdateSlot: failed to get event id=%d: %v", eventID, err)
		return fmt.Errorf("%w: failed to get event: %w", ErrInternal, err)
	}

	if err := validateEventWindow(event, input.date); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			uc.logger.Warn("UpdateSlot: %v", err)
			return err
		}
		uc.logger.Error("UpdateSlot: event id=%d has a broken interview window: %v", eventID, err)
		return fmt.Errorf("%w: event window: %w", ErrInternal, err)
	}
	return nil
}
