package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	slotRepo "github.com/m04kA/jobfair-interviews/internal/infra/storage/slot"
	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
)

// Service определяет, кто из рекрутеров распоряжается заявкой
type Service struct {
	slotRepo    SlotRepository
	eventClient EventServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса
func NewService(slotRepo SlotRepository, eventClient EventServiceClient, logger Logger) *Service {
	return &Service{
		slotRepo:    slotRepo,
		eventClient: eventClient,
		logger:      logger,
	}
}

// ApplicationRecruiter возвращает рекрутера, который принимает решение по заявке:
// владелец выбранного слота, а если слот не выбран (или удалён) рекрутер вакансии
func (s *Service) ApplicationRecruiter(ctx context.Context, app *domain.Application) (int64, error) {
	if app.SlotID != nil {
		slot, err := s.slotRepo.GetByID(ctx, *app.SlotID)
		switch {
		case err == nil:
			return slot.RecruiterID, nil
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("ApplicationRecruiter: slot id=%s of application id=%s not found, falling back to posting",
				*app.SlotID, app.ID)
		default:
			s.logger.Error("ApplicationRecruiter: failed to get slot id=%s: %v", *app.SlotID, err)
			return 0, fmt.Errorf("%w: ApplicationRecruiter - get slot: %w", ErrInternal, err)
		}
	}

	posting, err := s.eventClient.GetPosting(ctx, app.PostingID)
	if err != nil {
		if errors.Is(err, eventservice.ErrPostingNotFound) {
			s.logger.Warn("ApplicationRecruiter: posting id=%d of application id=%s not found", app.PostingID, app.ID)
			return 0, nil
		}
		s.logger.Error("ApplicationRecruiter: failed to get posting id=%d: %v", app.PostingID, err)
		return 0, fmt.Errorf("%w: ApplicationRecruiter - get posting: %w", ErrInternal, err)
	}

	return posting.RecruiterID, nil
}

// IsApplicationRecruiter проверяет, что userID распоряжается заявкой
func (s *Service) IsApplicationRecruiter(ctx context.Context, app *domain.Application, userID int64) (bool, error) {
	recruiterID, err := s.ApplicationRecruiter(ctx, app)
	if err != nil {
		return false, err
	}
	return recruiterID != 0 && recruiterID == userID, nil
}

// CanView проверяет, что userID может видеть заявку: это её кандидат или ответственный рекрутер
func (s *Service) CanView(ctx context.Context, app *domain.Application, userID int64) (bool, error) {
	if app.IsOwnedBy(userID) {
		return true, nil
	}
	return s.IsApplicationRecruiter(ctx, app, userID)
}
