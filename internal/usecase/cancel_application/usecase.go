package cancel_application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	applicationRepo "github.com/m04kA/jobfair-interviews/internal/infra/storage/application"
	"github.com/m04kA/jobfair-interviews/internal/integrations/notifier"
)

// UseCase use case отмены заявки кандидатом или рекрутером
type UseCase struct {
	applicationRepo ApplicationRepository
	access          RecruiterResolver
	slots           SlotReleaser
	notifier        Notifier
	txManager       TransactionManager
	metrics         MetricsRecorder
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	applicationRepo ApplicationRepository,
	access RecruiterResolver,
	slots SlotReleaser,
	notifier Notifier,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		applicationRepo: applicationRepo,
		access:          access,
		slots:           slots,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute отменяет заявку
// Слот принятой заявки освобождается, только если его держит кандидат этой заявки
// и у кандидата нет другой принятой заявки на тот же слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelApplication: application id=%s by user=%d", req.ApplicationID, req.UserID)

	if req.ApplicationID == uuid.Nil || req.UserID <= 0 {
		verr := domain.NewValidationError()
		if req.ApplicationID == uuid.Nil {
			verr.Add("applicationId", "is required")
		}
		if req.UserID <= 0 {
			verr.Add("userId", "must be greater than 0")
		}
		uc.logger.Warn("CancelApplication: validation failed: %v", verr)
		return nil, verr
	}

	// 1. Заявка и права
	app, err := uc.getApplication(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}

	recruiterID, err := uc.access.ApplicationRecruiter(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve recruiter: %w", ErrInternal, err)
	}

	byCandidate := app.IsOwnedBy(req.UserID)
	if !byCandidate && (recruiterID == 0 || recruiterID != req.UserID) {
		uc.logger.Warn("CancelApplication: user=%d may not cancel application id=%s", req.UserID, app.ID)
		return nil, ErrAccessDenied
	}

	// 2. Отмена и освобождение слота одной транзакцией
	var resp *Response

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		resp = nil

		app, err := uc.getApplication(txCtx, req.ApplicationID)
		if err != nil {
			return err
		}

		if !app.CanBeCancelled() {
			uc.logger.Warn("CancelApplication: application id=%s is %s", app.ID, app.Status)
			return domain.NewApplicationTransitionError(app.ID, app.Status, domain.ApplicationStatusCancelled)
		}

		released := false
		if app.Status == domain.ApplicationStatusAccepted && app.HasSlot() {
			released, err = uc.releaseSlot(txCtx, app)
			if err != nil {
				return err
			}
		}

		app.Status = domain.ApplicationStatusCancelled
		if err := uc.applicationRepo.UpdateStatus(txCtx, app); err != nil {
			uc.logger.Error("CancelApplication: failed to save application id=%s: %v", app.ID, err)
			return fmt.Errorf("%w: update application: %w", ErrInternal, err)
		}

		resp = &Response{Application: app, SlotReleased: released}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.SlotReleased {
		uc.metrics.IncSlotTransition(transitionRelease)
	}
	uc.logger.Info("CancelApplication: application id=%s cancelled, slot released=%t", resp.Application.ID, resp.SlotReleased)

	// 3. Уведомляем другую сторону
	notifyUser := resp.Application.CandidateID
	message := "Your application was cancelled by the recruiter."
	if byCandidate {
		notifyUser = recruiterID
		message = fmt.Sprintf("Candidate %d withdrew the application.", resp.Application.CandidateID)
	}
	if notifyUser != 0 {
		uc.notifier.Notify(ctx, notifier.Notification{
			UserID:  notifyUser,
			Kind:    notifier.KindApplicationCancelled,
			Title:   "Application cancelled",
			Message: message,
			RelatedEntity: notifier.RelatedEntity{
				Type: "application",
				ID:   resp.Application.ID.String(),
			},
		})
	}

	return resp, nil
}

// releaseSlot освобождает слот принятой заявки
func (uc *UseCase) releaseSlot(ctx context.Context, app *domain.Application) (bool, error) {
	other, err := uc.applicationRepo.HasOtherAccepted(ctx, *app.SlotID, app.CandidateID, app.ID)
	if err != nil {
		uc.logger.Error("CancelApplication: failed to check other applications of slot id=%s: %v", *app.SlotID, err)
		return false, fmt.Errorf("%w: check other accepted: %w", ErrInternal, err)
	}
	if other {
		uc.logger.Info("CancelApplication: candidate=%d still holds slot id=%s through another application",
			app.CandidateID, *app.SlotID)
		return false, nil
	}

	return uc.slots.Release(ctx, *app.SlotID, app.CandidateID)
}

func (uc *UseCase) getApplication(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, applicationRepo.ErrApplicationNotFound) {
			uc.logger.Warn("CancelApplication: application id=%s not found", id)
			return nil, ErrApplicationNotFound
		}
		uc.logger.Error("CancelApplication: failed to get application id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: get application: %w", ErrInternal, err)
	}
	return app, nil
}
