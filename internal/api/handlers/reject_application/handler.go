package reject_application

import (
	"errors"
	"net/http"

	"github.com/m04kA/jobfair-interviews/internal/api/handlers"
	"github.com/m04kA/jobfair-interviews/internal/api/middleware"
	"github.com/m04kA/jobfair-interviews/internal/domain"
	appModels "github.com/m04kA/jobfair-interviews/internal/service/applications/models"
	rejectApplication "github.com/m04kA/jobfair-interviews/internal/usecase/reject_application"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidApplicationID = "некорректный ID заявки"
	msgApplicationNotFound  = "заявка не найдена"
	msgAccessDenied         = "заявкой распоряжается другой рекрутер"
)

type Handler struct {
	useCase RejectApplicationUseCase
	logger  Logger
}

func NewHandler(useCase RejectApplicationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/applications/{applicationId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "")
		return
	}

	appID, err := handlers.PathUUID(r, "applicationId")
	if err != nil {
		h.logger.Warn("PATCH /applications/{applicationId}/reject - Invalid application ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidApplicationID)
		return
	}

	var req DecisionRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /applications/%s/reject - Invalid request body: %v", appID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	app, err := h.useCase.Execute(r.Context(), &rejectApplication.Request{
		ApplicationID: appID,
		RecruiterID:   recruiterID,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, rejectApplication.ErrApplicationNotFound):
			h.logger.Warn("PATCH /applications/%s/reject - Application not found", appID)
			handlers.RespondNotFound(w, msgApplicationNotFound)

		case errors.Is(err, rejectApplication.ErrAccessDenied):
			h.logger.Warn("PATCH /applications/%s/reject - Access denied: recruiter_id=%d", appID, recruiterID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /applications/%s/reject - Rejected: %v", appID, err)
			handlers.RespondDomainError(w, err, "")

		default:
			h.logger.Error("PATCH /applications/%s/reject - Failed to reject application: %v", appID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /applications/%s/reject - Application rejected: recruiter_id=%d", appID, recruiterID)
	handlers.RespondJSON(w, http.StatusOK, appModels.FromDomainApplication(app, recruiterID))
}
