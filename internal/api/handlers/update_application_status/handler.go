package update_application_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/jobfair-interviews/internal/api/handlers"
	"github.com/m04kA/jobfair-interviews/internal/api/middleware"
	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/service/applications"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidApplicationID = "некорректный ID заявки"
	msgApplicationNotFound  = "заявка не найдена"
	msgAccessDenied         = "заявкой распоряжается другой рекрутер"
)

type Handler struct {
	service ApplicationService
	logger  Logger
}

func NewHandler(service ApplicationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/applications/{applicationId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "")
		return
	}

	appID, err := handlers.PathUUID(r, "applicationId")
	if err != nil {
		h.logger.Warn("PATCH /applications/{applicationId}/status - Invalid application ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidApplicationID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /applications/%s/status - Invalid request body: %v", appID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	app, err := h.service.UpdateStatus(r.Context(), appID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, applications.ErrApplicationNotFound):
			h.logger.Warn("PATCH /applications/%s/status - Application not found", appID)
			handlers.RespondNotFound(w, msgApplicationNotFound)

		case errors.Is(err, applications.ErrAccessDenied):
			h.logger.Warn("PATCH /applications/%s/status - Access denied: user_id=%d", appID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /applications/%s/status - Rejected: %v", appID, err)
			handlers.RespondDomainError(w, err, "")

		default:
			h.logger.Error("PATCH /applications/%s/status - Failed to update status: %v", appID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /applications/%s/status - Status updated to %s: user_id=%d", appID, app.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, app)
}
