package create_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
)

const conflictKindOverlap = "slot_overlap"

// UseCase use case для создания слотов рекрутером
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

// Execute выполняет use case создания слотов
// Слоты рекрутера создаются под его advisory-блокировкой, поэтому параллельные запросы
// не могут вставить пересекающиеся слоты. Любое пересечение отменяет весь пакет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSlots: recruiter=%d, event=%d, count=%d", req.RecruiterID, req.EventID, len(req.Slots))

	// 1. Валидация входных данных
	slots, err := validateRequest(req, uc.rules)
	if err != nil {
		uc.logger.Warn("CreateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Мероприятие: участие рекрутера и окно интервью
	event, err := uc.eventClient.GetEvent(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, eventservice.ErrEventNotFound) {
			uc.logger.Warn("CreateSlots: event id=%d not found", req.EventID)
			return nil, ErrEventNotFound
		}
		uc.logger.Error("CreateSlots: failed to get event id=%d: %v", req.EventID, err)
		return nil, fmt.Errorf("%w: failed to get event: %w", ErrInternal, err)
	}

	if !event.HasRecruiter(req.RecruiterID) {
		uc.logger.Warn("CreateSlots: recruiter=%d does not participate in event id=%d", req.RecruiterID, req.EventID)
		return nil, ErrNotEventRecruiter
	}

	if uc.rules.RequireEventWindow {
		if err := validateEventWindow(event, slots); err != nil {
			if errors.Is(err, domain.ErrValidation) {
				uc.logger.Warn("CreateSlots: %v", err)
				return nil, err
			}
			uc.logger.Error("CreateSlots: event id=%d has a broken interview window: %v", req.EventID, err)
			return nil, fmt.Errorf("%w: event window: %w", ErrInternal, err)
		}
	}

	// 3. Проверка пересечений и вставка в одной транзакции
	created := make([]*domain.Slot, 0, len(slots))

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created = created[:0]

		if err := uc.slotRepo.LockRecruiter(txCtx, req.RecruiterID); err != nil {
			uc.logger.Error("CreateSlots: failed to lock recruiter=%d: %v", req.RecruiterID, err)
			return fmt.Errorf("%w: lock recruiter: %w", ErrInternal, err)
		}

		for _, slot := range slots {
			// Детектор видит и слоты, вставленные ранее в этом же пакете
			conflict, err := uc.conflicts.HasConflict(txCtx, slot.RecruiterID, slot.Date, slot.Range(), nil)
			if err != nil {
				return fmt.Errorf("%w: conflict check: %w", ErrInternal, err)
			}
			if conflict != nil {
				uc.logger.Warn("CreateSlots: slot %s %s-%s overlaps slot id=%s",
					slot.Date.Format(domain.DateFormat), slot.StartTime, slot.EndTime, conflict.ID)
				return domain.NewSlotConflictError(conflict)
			}

			saved, err := uc.slotRepo.Create(txCtx, slot)
			if err != nil {
				uc.logger.Error("CreateSlots: failed to create slot: %v", err)
				return fmt.Errorf("%w: create slot: %w", ErrInternal, err)
			}
			created = append(created, saved)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			uc.metrics.IncConflict(conflictKindOverlap)
		}
		return nil, err
	}

	uc.metrics.AddSlotsCreated(len(created))
	uc.logger.Info("CreateSlots: created %d slots for recruiter=%d in event=%d", len(created), req.RecruiterID, req.EventID)

	return &Response{Slots: created}, nil
}
