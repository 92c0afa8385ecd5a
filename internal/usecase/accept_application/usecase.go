package accept_application

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

// UseCase use case принятия заявки рекрутером
type UseCase struct {
	applicationRepo ApplicationRepository
	access          RecruiterResolver
	slots           SlotBooker
	notifier        Notifier
	txManager       TransactionManager
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	applicationRepo ApplicationRepository,
	access RecruiterResolver,
	slots SlotBooker,
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
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute принимает заявку и бронирует выбранный слот за кандидатом
// Бронирование и смена статуса заявки фиксируются одной транзакцией.
// Встреча создаётся после коммита, её ошибка не откатывает бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AcceptApplication: application id=%s by recruiter=%d", req.ApplicationID, req.RecruiterID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AcceptApplication: validation failed: %v", err)
		return nil, err
	}

	// 2. Заявка и права
	app, err := uc.getApplication(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(ctx, app, req.RecruiterID); err != nil {
		return nil, err
	}

	// 3. Переход под блокировками заявки и слота
	var (
		resp       *Response
		transition bool
	)

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		resp, transition = nil, false

		app, err := uc.getApplication(txCtx, req.ApplicationID)
		if err != nil {
			return err
		}

		alreadyAccepted := app.Status == domain.ApplicationStatusAccepted
		if !alreadyAccepted && !app.CanBeDecided() {
			uc.logger.Warn("AcceptApplication: application id=%s is %s", app.ID, app.Status)
			return domain.NewApplicationTransitionError(app.ID, app.Status, domain.ApplicationStatusAccepted)
		}

		resp = &Response{Application: app}

		if app.HasSlot() {
			booked, err := uc.slots.Book(txCtx, *app.SlotID, app.CandidateID)
			if err != nil {
				return err
			}
			resp.Slot = booked.Slot
			resp.SlotChanged = booked.Changed
		}

		if alreadyAccepted {
			uc.logger.Info("AcceptApplication: application id=%s is already accepted", app.ID)
			return nil
		}

		now := uc.timeProvider.Now()
		app.Status = domain.ApplicationStatusAccepted
		app.DecidedAt = &now
		if req.Notes != nil {
			app.RecruiterNotes = *req.Notes
		}

		if err := uc.applicationRepo.UpdateStatus(txCtx, app); err != nil {
			uc.logger.Error("AcceptApplication: failed to save application id=%s: %v", app.ID, err)
			return fmt.Errorf("%w: update application: %w", ErrInternal, err)
		}

		transition = true
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			uc.metrics.IncConflict(conflictKindBooking)
		}
		uc.logger.Warn("AcceptApplication: application id=%s not accepted: %v", req.ApplicationID, err)
		return nil, err
	}

	if resp.SlotChanged {
		uc.metrics.IncSlotTransition(transitionBook)
	}

	// 4. Видеовстреча: при повторном принятии ссылка создаётся, если её ещё нет
	if resp.Slot != nil {
		resp.Slot = uc.slots.EnsureMeeting(ctx, resp.Slot)
	}

	uc.logger.Info("AcceptApplication: application id=%s accepted, slot changed=%t", resp.Application.ID, resp.SlotChanged)

	if transition {
		uc.notifier.Notify(ctx, acceptedNotifications(resp, req.RecruiterID)...)
	}

	return resp, nil
}

func (uc *UseCase) getApplication(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, applicationRepo.ErrApplicationNotFound) {
			uc.logger.Warn("AcceptApplication: application id=%s not found", id)
			return nil, ErrApplicationNotFound
		}
		uc.logger.Error("AcceptApplication: failed to get application id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: get application: %w", ErrInternal, err)
	}
	return app, nil
}

func (uc *UseCase) authorize(ctx context.Context, app *domain.Application, recruiterID int64) error {
	owner, err := uc.access.ApplicationRecruiter(ctx, app)
	if err != nil {
		return fmt.Errorf("%w: resolve recruiter: %w", ErrInternal, err)
	}
	if owner == 0 || owner != recruiterID {
		uc.logger.Warn("AcceptApplication: recruiter=%d may not decide application id=%s", recruiterID, app.ID)
		return ErrAccessDenied
	}
	return nil
}

func validateRequest(req *Request) error {
	verr := domain.NewValidationError()
	for field, msg := range validation.Struct(req) {
		verr.Add(field, msg)
	}
	if req.ApplicationID == uuid.Nil {
		verr.Add("applicationId", "is required")
	}
	return verr.OrNil()
}

func acceptedNotifications(resp *Response, recruiterID int64) []notifier.Notification {
	app := resp.Application

	candidateMsg := "Your application was accepted."
	recruiterMsg := fmt.Sprintf("You accepted application %s.", app.ID)
	if slot := resp.Slot; slot != nil {
		when := fmt.Sprintf("%s %s-%s", slot.Date.Format(domain.DateFormat), slot.StartTime, slot.EndTime)
		candidateMsg = fmt.Sprintf("Your application was accepted. Interview on %s.", when)
		if slot.HasMeeting() {
			candidateMsg += " Meeting link: " + *slot.MeetingLink
		}
		recruiterMsg = fmt.Sprintf("Interview with candidate %d is booked for %s.", app.CandidateID, when)
	}

	related := notifier.RelatedEntity{Type: "application", ID: app.ID.String()}

	return []notifier.Notification{
		{
			UserID:        app.CandidateID,
			Kind:          notifier.KindApplicationAccepted,
			Title:         "Application accepted",
			Message:       candidateMsg,
			RelatedEntity: related,
		},
		{
			UserID:        recruiterID,
			Kind:          notifier.KindBookingConfirmed,
			Title:         "Booking confirmed",
			Message:       recruiterMsg,
			RelatedEntity: related,
		},
	}
}
