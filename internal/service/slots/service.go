package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	slotRepo "github.com/m04kA/jobfair-interviews/internal/infra/storage/slot"
	"github.com/m04kA/jobfair-interviews/internal/service/slots/models"
)

// Service сервис чтения слотов
type Service struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// GetByID получает слот по ID
// Приватные поля слота видны только владельцу и забронировавшему кандидату
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, viewerID int64) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%s not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainSlot(slot, viewerID), nil
}

// List получает слоты по фильтру
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: found %d slots for viewer=%d", len(slots), req.ViewerID)
	return models.FromDomainSlotList(slots, req.ViewerID), nil
}

// Stats возвращает количество слотов по статусам
func (s *Service) Stats(ctx context.Context, req *models.StatsRequest) (*models.StatsResponse, error) {
	filter, err := (&models.ListSlotsRequest{EventID: req.EventID, RecruiterID: req.RecruiterID}).ToDomainFilter()
	if err != nil {
		return nil, err
	}

	stats, err := s.slotRepo.CountByStatus(ctx, filter)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainStats(stats), nil
}
