package create_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/jobfair-interviews/internal/api/handlers"
	"github.com/m04kA/jobfair-interviews/internal/api/middleware"
	"github.com/m04kA/jobfair-interviews/internal/domain"
	slotModels "github.com/m04kA/jobfair-interviews/internal/service/slots/models"
	createSlots "github.com/m04kA/jobfair-interviews/internal/usecase/create_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEventNotFound      = "мероприятие не найдено"
	msgNotEventRecruiter  = "рекрутер не участвует в мероприятии"
)

type Handler struct {
	useCase CreateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase CreateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/events/{eventId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "")
		return
	}

	eventID, err := handlers.PathInt64(r, "eventId")
	if err != nil {
		h.logger.Warn("POST /events/{eventId}/slots - Invalid event id: %v", err)
		handlers.RespondValidation(w, "eventId", "must be a positive integer")
		return
	}

	var req CreateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events/%d/slots - Invalid request body: %v", eventID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(recruiterID, eventID))
	if err != nil {
		switch {
		case errors.Is(err, createSlots.ErrEventNotFound):
			h.logger.Warn("POST /events/%d/slots - Event not found", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, createSlots.ErrNotEventRecruiter):
			h.logger.Warn("POST /events/%d/slots - Recruiter %d is not a participant", eventID, recruiterID)
			handlers.RespondForbidden(w, msgNotEventRecruiter)

		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /events/%d/slots - Rejected: recruiter_id=%d, error=%v", eventID, recruiterID, err)
			handlers.RespondDomainError(w, err, "")

		default:
			h.logger.Error("POST /events/%d/slots - Failed to create slots: recruiter_id=%d, error=%v",
				eventID, recruiterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /events/%d/slots - Created %d slots: recruiter_id=%d", eventID, len(result.Slots), recruiterID)
	handlers.RespondJSON(w, http.StatusCreated, slotModels.FromDomainSlotList(result.Slots, recruiterID))
}
