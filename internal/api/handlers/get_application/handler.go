package get_application

import (
	"errors"
	"net/http"

	"github.com/m04kA/jobfair-interviews/internal/api/handlers"
	"github.com/m04kA/jobfair-interviews/internal/api/middleware"
	"github.com/m04kA/jobfair-interviews/internal/service/applications"
)

const (
	msgInvalidApplicationID = "некорректный ID заявки"
	msgApplicationNotFound  = "заявка не найдена"
	msgAccessDenied         = "доступ к заявке запрещен"
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

// Handle GET /api/v1/applications/{applicationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "")
		return
	}

	appID, err := handlers.PathUUID(r, "applicationId")
	if err != nil {
		h.logger.Warn("GET /applications/{applicationId} - Invalid application ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidApplicationID)
		return
	}

	app, err := h.service.GetByID(r.Context(), appID, userID)
	if err != nil {
		switch {
		case errors.Is(err, applications.ErrApplicationNotFound):
			h.logger.Warn("GET /applications/%s - Application not found", appID)
			handlers.RespondNotFound(w, msgApplicationNotFound)

		case errors.Is(err, applications.ErrAccessDenied):
			h.logger.Warn("GET /applications/%s - Access denied: user_id=%d", appID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /applications/%s - Failed to get application: %v", appID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, app)
}
