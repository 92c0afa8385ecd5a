package cancel_application

import (
	"errors"
	"net/http"

	"github.com/m04kA/jobfair-interviews/internal/api/handlers"
	"github.com/m04kA/jobfair-interviews/internal/api/middleware"
	"github.com/m04kA/jobfair-interviews/internal/domain"
	cancelApplication "github.com/m04kA/jobfair-interviews/internal/usecase/cancel_application"
)

const (
	msgInvalidApplicationID = "некорректный ID заявки"
	msgApplicationNotFound  = "заявка не найдена"
	msgAccessDenied         = "отменить заявку может только кандидат или ответственный рекрутер"
)

type Handler struct {
	useCase CancelApplicationUseCase
	logger  Logger
}

func NewHandler(useCase CancelApplicationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/applications/{applicationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "")
		return
	}

	appID, err := handlers.PathUUID(r, "applicationId")
	if err != nil {
		h.logger.Warn("PATCH /applications/{applicationId}/cancel - Invalid application ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidApplicationID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelApplication.Request{
		ApplicationID: appID,
		UserID:        userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelApplication.ErrApplicationNotFound):
			h.logger.Warn("PATCH /applications/%s/cancel - Application not found", appID)
			handlers.RespondNotFound(w, msgApplicationNotFound)

		case errors.Is(err, cancelApplication.ErrAccessDenied):
			h.logger.Warn("PATCH /applications/%s/cancel - Access denied: user_id=%d", appID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /applications/%s/cancel - Rejected: %v", appID, err)
			handlers.RespondDomainError(w, err, "")

		default:
			h.logger.Error("PATCH /applications/%s/cancel - Failed to cancel application: %v", appID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /applications/%s/cancel - Application cancelled: user_id=%d, slot_released=%t",
		appID, userID, result.SlotReleased)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, userID))
}
