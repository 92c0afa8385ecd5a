package update_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/jobfair-interviews/internal/api/handlers"
	"github.com/m04kA/jobfair-interviews/internal/api/middleware"
	"github.com/m04kA/jobfair-interviews/internal/domain"
	slotModels "github.com/m04kA/jobfair-interviews/internal/service/slots/models"
	updateSlot "github.com/m04kA/jobfair-interviews/internal/usecase/update_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный ID слота"
	msgSlotNotFound       = "слот не найден"
	msgEventNotFound      = "мероприятие слота не найдено"
	msgAccessDenied       = "слот принадлежит другому рекрутеру"
)

type Handler struct {
	useCase UpdateSlotUseCase
	logger  Logger
}

func NewHandler(useCase UpdateSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "")
		return
	}

	slotID, err := handlers.PathUUID(r, "slotId")
	if err != nil {
		h.logger.Warn("PUT /slots/{slotId} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/%s - Invalid request body: %v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(slotID, recruiterID))
	if err != nil {
		switch {
		case errors.Is(err, updateSlot.ErrSlotNotFound):
			h.logger.Warn("PUT /slots/%s - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, updateSlot.ErrEventNotFound):
			h.logger.Warn("PUT /slots/%s - Event not found", slotID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, updateSlot.ErrAccessDenied):
			h.logger.Warn("PUT /slots/%s - Access denied: recruiter_id=%d", slotID, recruiterID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, domain.ErrValidation),
			errors.Is(err, domain.ErrConflict),
			errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PUT /slots/%s - Rejected: %v", slotID, err)
			handlers.RespondDomainError(w, err, "")

		default:
			h.logger.Error("PUT /slots/%s - Failed to update slot: recruiter_id=%d, error=%v", slotID, recruiterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slots/%s - Slot updated: recruiter_id=%d", slotID, recruiterID)
	handlers.RespondJSON(w, http.StatusOK, slotModels.FromDomainSlot(slot, recruiterID))
}
