package submit_application

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	applicationRepo "github.com/m04kA/jobfair-interviews/internal/infra/storage/application"
	slotRepo "github.com/m04kA/jobfair-interviews/internal/infra/storage/slot"
	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
	"github.com/m04kA/jobfair-interviews/internal/integrations/notifier"
)

// UseCase use case подачи заявки кандидатом
type UseCase struct {
	applicationRepo ApplicationRepository
	slotRepo        SlotRepository
	eventClient     EventServiceClient
	notifier        Notifier
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	applicationRepo ApplicationRepository,
	slotRepo SlotRepository,
	eventClient EventServiceClient,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		applicationRepo: applicationRepo,
		slotRepo:        slotRepo,
		eventClient:     eventClient,
		notifier:        notifier,
		logger:          logger,
	}
}

// Execute создает заявку в статусе pending
// Выбранный слот только проверяется: резервируется он при принятии заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Application, error) {
	uc.logger.Info("SubmitApplication: candidate=%d, event=%d, posting=%d, slot=%v",
		req.CandidateID, req.EventID, req.PostingID, req.SlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitApplication: validation failed: %v", err)
		return nil, err
	}

	// 2. Вакансия
	posting, err := uc.getPosting(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Анкета
	if err := validateAnswers(posting, req.Answers); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			uc.logger.Warn("SubmitApplication: answers rejected: %v", err)
		} else {
			uc.logger.Error("SubmitApplication: %v", err)
		}
		return nil, err
	}

	// 4. Повторная заявка
	existing, err := uc.applicationRepo.GetByCandidateAndPosting(ctx, req.CandidateID, req.PostingID)
	switch {
	case err == nil:
		uc.logger.Warn("SubmitApplication: candidate=%d already applied to posting=%d (application id=%s)",
			req.CandidateID, req.PostingID, existing.ID)
		return nil, ErrAlreadyApplied
	case !errors.Is(err, applicationRepo.ErrApplicationNotFound):
		uc.logger.Error("SubmitApplication: failed to check existing application: %v", err)
		return nil, fmt.Errorf("%w: check existing: %w", ErrInternal, err)
	}

	// 5. Выбранный слот
	if req.SlotID != nil {
		if err := uc.checkSlot(ctx, req, posting); err != nil {
			return nil, err
		}
	}

	// 6. Сохранение
	app, err := uc.applicationRepo.Create(ctx, &domain.Application{
		CandidateID: req.CandidateID,
		PostingID:   req.PostingID,
		EventID:     req.EventID,
		SlotID:      req.SlotID,
		Answers:     req.Answers,
		Status:      domain.ApplicationStatusPending,
	})
	if err != nil {
		if errors.Is(err, applicationRepo.ErrAlreadyExists) {
			uc.logger.Warn("SubmitApplication: concurrent duplicate for candidate=%d, posting=%d",
				req.CandidateID, req.PostingID)
			return nil, ErrAlreadyApplied
		}
		uc.logger.Error("SubmitApplication: failed to create application: %v", err)
		return nil, fmt.Errorf("%w: create application: %w", ErrInternal, err)
	}

	uc.logger.Info("SubmitApplication: application id=%s created", app.ID)

	uc.notifier.Notify(ctx, notifier.Notification{
		UserID:  posting.RecruiterID,
		Kind:    notifier.KindApplicationSubmitted,
		Title:   "New application",
		Message: fmt.Sprintf("A candidate applied to %q.", posting.Title),
		RelatedEntity: notifier.RelatedEntity{
			Type: "application",
			ID:   app.ID.String(),
		},
	})

	return app, nil
}

func (uc *UseCase) getPosting(ctx context.Context, req *Request) (*eventservice.Posting, error) {
	posting, err := uc.eventClient.GetPosting(ctx, req.PostingID)
	if err != nil {
		if errors.Is(err, eventservice.ErrPostingNotFound) {
			uc.logger.Warn("SubmitApplication: posting id=%d not found", req.PostingID)
			return nil, ErrPostingNotFound
		}
		uc.logger.Error("SubmitApplication: failed to get posting id=%d: %v", req.PostingID, err)
		return nil, fmt.Errorf("%w: failed to get posting: %w", ErrInternal, err)
	}

	if posting.EventID != req.EventID {
		uc.logger.Warn("SubmitApplication: posting id=%d belongs to event=%d, not %d",
			req.PostingID, posting.EventID, req.EventID)
		verr := domain.NewValidationError()
		verr.Add("postingId", "does not belong to the event")
		return nil, verr
	}

	if !posting.IsOpen {
		uc.logger.Warn("SubmitApplication: posting id=%d is closed", req.PostingID)
		return nil, ErrPostingClosed
	}

	return posting, nil
}

func (uc *UseCase) checkSlot(ctx context.Context, req *Request, posting *eventservice.Posting) error {
	slot, err := uc.slotRepo.GetByID(ctx, *req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("SubmitApplication: slot id=%s not found", *req.SlotID)
			return ErrSlotNotFound
		}
		uc.logger.Error("SubmitApplication: failed to get slot id=%s: %v", *req.SlotID, err)
		return fmt.Errorf("%w: get slot: %w", ErrInternal, err)
	}

	if slot.EventID != req.EventID {
		uc.logger.Warn("SubmitApplication: slot id=%s belongs to event=%d, not %d", slot.ID, slot.EventID, req.EventID)
		verr := domain.NewValidationError()
		verr.Add("slotId", "does not belong to the event")
		return verr
	}

	// Слот должен принадлежать рекрутеру вакансии
	if slot.RecruiterID != posting.RecruiterID {
		uc.logger.Warn("SubmitApplication: slot id=%s belongs to recruiter=%d, posting id=%d to recruiter=%d",
			slot.ID, slot.RecruiterID, posting.ID, posting.RecruiterID)
		verr := domain.NewValidationError()
		verr.Add("slotId", "does not belong to the posting recruiter")
		return verr
	}

	if !slot.IsAvailable() {
		uc.logger.Warn("SubmitApplication: slot id=%s is %s", slot.ID, slot.Status)
		return ErrSlotUnavailable
	}

	return nil
}
