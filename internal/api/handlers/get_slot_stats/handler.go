package get_slot_stats

import (
	"net/http"

	"github.com/m04kA/jobfair-interviews/internal/api/handlers"
	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/service/slots/models"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	verr := domain.NewValidationError()
	eventID, err := handlers.QueryInt64(r, "eventId")
	if err != nil {
		verr.Add("eventId", "must be a positive integer")
	}
	recruiterID, err := handlers.QueryInt64(r, "recruiterId")
	if err != nil {
		verr.Add("recruiterId", "must be a positive integer")
	}
	if err := verr.OrNil(); err != nil {
		h.logger.Warn("GET /slots/stats - Invalid query: %v", err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	stats, err := h.service.Stats(r.Context(), &models.StatsRequest{EventID: eventID, RecruiterID: recruiterID})
	if err != nil {
		h.logger.Error("GET /slots/stats - Failed to count slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}
