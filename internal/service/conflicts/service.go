package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
)

// Service проверка пересечений слотов рекрутера
type Service struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса
func NewService(slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// HasConflict возвращает первый активный слот рекрутера на дату, пересекающийся с timeRange
// Учитываются слоты всех мероприятий. excludeSlotID пропускается (редактирование слота)
// Должен вызываться в транзакции вызывающего кода под блокировкой рекрутера
func (s *Service) HasConflict(
	ctx context.Context,
	recruiterID int64,
	date time.Time,
	timeRange domain.TimeRange,
	excludeSlotID *uuid.UUID,
) (*domain.Slot, error) {
	existing, err := s.slotRepo.ListActiveByRecruiterAndDate(ctx, recruiterID, date)
	if err != nil {
		s.logger.Error("HasConflict: failed to list slots for recruiter=%d, date=%s: %v",
			recruiterID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: HasConflict - list active slots: %w", ErrInternal, err)
	}

	conflict := domain.FindConflict(existing, timeRange, excludeSlotID)
	if conflict != nil {
		s.logger.Info("HasConflict: recruiter=%d, %s %s-%s overlaps slot id=%s (event=%d, %s-%s)",
			recruiterID, date.Format(domain.DateFormat), timeRange.Start, timeRange.End,
			conflict.ID, conflict.EventID, conflict.StartTime, conflict.EndTime)
	}

	return conflict, nil
}
