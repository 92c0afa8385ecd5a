package accept_application

import (
	"errors"
	"net/http"

	"github.com/m04kA/jobfair-interviews/internal/api/handlers"
	"github.com/m04kA/jobfair-interviews/internal/api/middleware"
	"github.com/m04kA/jobfair-interviews/internal/domain"
	acceptApplication "github.com/m04kA/jobfair-interviews/internal/usecase/accept_application"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidApplicationID = "некорректный ID заявки"
	msgApplicationNotFound  = "заявка не найдена"
	msgAccessDenied         = "заявкой распоряжается другой рекрутер"
)

type Handler struct {
	useCase AcceptApplicationUseCase
	logger  Logger
}

func NewHandler(useCase AcceptApplicationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/applications/{applicationId}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "")
		return
	}

	appID, err := handlers.PathUUID(r, "applicationId")
	if err != nil {
		h.logger.Warn("PATCH /applications/{applicationId}/accept - Invalid application ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidApplicationID)
		return
	}

	var req DecisionRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /applications/%s/accept - Invalid request body: %v", appID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &acceptApplication.Request{
		ApplicationID: appID,
		RecruiterID:   recruiterID,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, acceptApplication.ErrApplicationNotFound):
			h.logger.Warn("PATCH /applications/%s/accept - Application not found", appID)
			handlers.RespondNotFound(w, msgApplicationNotFound)

		case errors.Is(err, acceptApplication.ErrAccessDenied):
			h.logger.Warn("PATCH /applications/%s/accept - Access denied: recruiter_id=%d", appID, recruiterID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("PATCH /applications/%s/accept - Booking conflict: %v", appID, err)
			handlers.RespondDomainError(w, err, "")

		case errors.Is(err, domain.ErrValidation),
			errors.Is(err, domain.ErrInvalidTransition),
			errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PATCH /applications/%s/accept - Rejected: %v", appID, err)
			handlers.RespondDomainError(w, err, "")

		default:
			h.logger.Error("PATCH /applications/%s/accept - Failed to accept application: recruiter_id=%d, error=%v",
				appID, recruiterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /applications/%s/accept - Application accepted: recruiter_id=%d, slot_changed=%t",
		appID, recruiterID, result.SlotChanged)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, recruiterID))
}
