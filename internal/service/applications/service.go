package applications

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	applicationRepo "github.com/m04kA/jobfair-interviews/internal/infra/storage/application"
	"github.com/m04kA/jobfair-interviews/internal/service/applications/models"
)

// Service сервис для чтения заявок и административного обновления статуса
type Service struct {
	applicationRepo ApplicationRepository
	access          AccessChecker
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	applicationRepo ApplicationRepository,
	access AccessChecker,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		applicationRepo: applicationRepo,
		access:          access,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает заявку по ID
// Видна кандидату-автору и рекрутеру, который принимает по ней решение
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID int64) (*models.ApplicationResponse, error) {
	app, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkViewAccess(ctx, "GetByID", app, userID, nil); err != nil {
		return nil, err
	}

	return models.FromDomainApplication(app, userID), nil
}

// List получает заявки по фильтру
// В ответ попадают только заявки, которые пользователь может видеть
func (s *Service) List(ctx context.Context, req *models.ListApplicationsRequest) (*models.ApplicationListResponse, error) {
	if !req.HasFilter() {
		verr := domain.NewValidationError()
		verr.Add("filter", "one of candidateId, postingId, eventId, slotId is required")
		return nil, verr
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	apps, err := s.applicationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	// Ответственный рекрутер определяется по слоту или вакансии, результаты кешируются на время запроса
	recruiters := make(map[string]int64)
	visible := make([]*domain.Application, 0, len(apps))
	for _, app := range apps {
		err := s.checkViewAccess(ctx, "List", app, req.ViewerID, recruiters)
		if errors.Is(err, ErrAccessDenied) {
			continue
		}
		if err != nil {
			return nil, err
		}
		visible = append(visible, app)
	}

	s.logger.Info("List: viewer=%d, found %d applications, visible %d", req.ViewerID, len(apps), len(visible))
	return models.FromDomainApplicationList(visible, req.ViewerID), nil
}

// UpdateStatus административное обновление статуса и заметок рекрутером
// Разрешены только pending -> reviewed и reviewed -> reviewed, слоты не затрагиваются
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.ApplicationResponse, error) {
	s.logger.Info("UpdateStatus: application id=%s to status=%s by user=%d", id, req.Status, req.UserID)

	newStatus, err := models.ToDomainApplicationStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxRecruiterNotesLength {
		verr := domain.NewValidationError()
		verr.Add("notes", fmt.Sprintf("must be at most %d characters", domain.MaxRecruiterNotesLength))
		return nil, verr
	}

	app, err := s.get(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	recruiterID, err := s.access.ApplicationRecruiter(ctx, app)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to resolve recruiter for application id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - resolve recruiter: %w", ErrInternal, err)
	}
	if recruiterID == 0 || recruiterID != req.UserID {
		s.logger.Warn("UpdateStatus: access denied for user=%d to application id=%s", req.UserID, id)
		return nil, ErrAccessDenied
	}

	var result *domain.Application
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		locked, err := s.get(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		if !locked.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: application id=%s cannot move from %s to %s", id, locked.Status, newStatus)
			return domain.NewApplicationTransitionError(id, locked.Status, newStatus)
		}

		locked.Status = newStatus
		if req.Notes != nil {
			locked.RecruiterNotes = *req.Notes
		}

		if err := s.applicationRepo.UpdateStatus(txCtx, locked); err != nil {
			s.logger.Error("UpdateStatus: repository error for application id=%s: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}

		result = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: application id=%s is now %s", id, result.Status)
	return models.FromDomainApplication(result, req.UserID), nil
}

// Вспомогательные методы

func (s *Service) get(ctx context.Context, method string, id uuid.UUID) (*domain.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, applicationRepo.ErrApplicationNotFound) {
			s.logger.Warn("%s: application id=%s not found", method, id)
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("%s: repository error for application id=%s: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, method, err)
	}
	return app, nil
}

// checkViewAccess проверяет, что пользователь автор заявки или ответственный рекрутер
func (s *Service) checkViewAccess(
	ctx context.Context,
	method string,
	app *domain.Application,
	userID int64,
	cache map[string]int64,
) error {
	if app.IsOwnedBy(userID) {
		return nil
	}

	key := fmt.Sprintf("posting:%d", app.PostingID)
	if app.SlotID != nil {
		key = "slot:" + app.SlotID.String()
	}

	recruiterID, cached := cache[key]
	if !cached {
		var err error
		recruiterID, err = s.access.ApplicationRecruiter(ctx, app)
		if err != nil {
			s.logger.Error("%s: failed to resolve recruiter for application id=%s: %v", method, app.ID, err)
			return fmt.Errorf("%w: %s - resolve recruiter: %w", ErrInternal, method, err)
		}
		if cache != nil {
			cache[key] = recruiterID
		}
	}

	if recruiterID == 0 || recruiterID != userID {
		s.logger.Warn("%s: access denied for user=%d to application id=%s", method, userID, app.ID)
		return ErrAccessDenied
	}
	return nil
}
