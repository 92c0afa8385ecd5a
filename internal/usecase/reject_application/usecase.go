package reject_application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	applicationRepo "github.com/m04kA/jobfair-interviews/internal/infra/storage/application"
	"github.com/m04kA/jobfair-interviews/internal/integrations/notifier"
	"github.com/m04kA/jobfair-interviews/pkg/validation"
)

// UseCase use case отклонения заявки рекрутером
type UseCase struct {
	applicationRepo ApplicationRepository
	access          RecruiterResolver
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	applicationRepo ApplicationRepository,
	access RecruiterResolver,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		applicationRepo: applicationRepo,
		access:          access,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute отклоняет заявку, слот при этом не меняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Application, error) {
	uc.logger.Info("RejectApplication: application id=%s by recruiter=%d", req.ApplicationID, req.RecruiterID)

	verr := domain.NewValidationError()
	for field, msg := range validation.Struct(req) {
		verr.Add(field, msg)
	}
	if req.ApplicationID == uuid.Nil {
		verr.Add("applicationId", "is required")
	}
	if err := verr.OrNil(); err != nil {
		uc.logger.Warn("RejectApplication: validation failed: %v", err)
		return nil, err
	}

	app, err := uc.getApplication(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}

	owner, err := uc.access.ApplicationRecruiter(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve recruiter: %w", ErrInternal, err)
	}
	if owner == 0 || owner != req.RecruiterID {
		uc.logger.Warn("RejectApplication: recruiter=%d may not decide application id=%s", req.RecruiterID, app.ID)
		return nil, ErrAccessDenied
	}

	var result *domain.Application

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		app, err := uc.getApplication(txCtx, req.ApplicationID)
		if err != nil {
			return err
		}

		if !app.CanBeDecided() {
			uc.logger.Warn("RejectApplication: application id=%s is %s", app.ID, app.Status)
			return domain.NewApplicationTransitionError(app.ID, app.Status, domain.ApplicationStatusRejected)
		}

		now := uc.timeProvider.Now()
		app.Status = domain.ApplicationStatusRejected
		app.DecidedAt = &now
		if req.Notes != nil {
			app.RecruiterNotes = *req.Notes
		}

		if err := uc.applicationRepo.UpdateStatus(txCtx, app); err != nil {
			uc.logger.Error("RejectApplication: failed to save application id=%s: %v", app.ID, err)
			return fmt.Errorf("%w: update application: %w", ErrInternal, err)
		}

		result = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RejectApplication: application id=%s rejected", result.ID)

	uc.notifier.Notify(ctx, notifier.Notification{
		UserID:  result.CandidateID,
		Kind:    notifier.KindApplicationRejected,
		Title:   "Application rejected",
		Message: "Unfortunately your application was not accepted.",
		RelatedEntity: notifier.RelatedEntity{
			Type: "application",
			ID:   result.ID.String(),
		},
	})

	return result, nil
}

func (uc *UseCase) getApplication(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, applicationRepo.ErrApplicationNotFound) {
			uc.logger.Warn("RejectApplication: application id=%s not found", id)
			return nil, ErrApplicationNotFound
		}
		uc.logger.Error("RejectApplication: failed to get application id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: get application: %w", ErrInternal, err)
	}
	return app, nil
}
