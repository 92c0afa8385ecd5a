package complete_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/jobfair-interviews/internal/api/handlers"
	"github.com/m04kA/jobfair-interviews/internal/api/middleware"
	"github.com/m04kA/jobfair-interviews/internal/domain"
	slotModels "github.com/m04kA/jobfair-interviews/internal/service/slots/models"
	slotLifecycle "github.com/m04kA/jobfair-interviews/internal/usecase/slot_lifecycle"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgSlotNotFound  = "слот не найден"
	msgAccessDenied  = "слот принадлежит другому рекрутеру"
)

type Handler struct {
	slots  SlotCompleter
	logger Logger
}

func NewHandler(slots SlotCompleter, logger Logger) *Handler {
	return &Handler{
		slots:  slots,
		logger: logger,
	}
}

// Handle PATCH /api/v1/slots/{slotId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "")
		return
	}

	slotID, err := handlers.PathUUID(r, "slotId")
	if err != nil {
		h.logger.Warn("PATCH /slots/{slotId}/complete - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	slot, err := h.slots.Complete(r.Context(), slotID, recruiterID)
	if err != nil {
		switch {
		case errors.Is(err, slotLifecycle.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/%s/complete - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotLifecycle.ErrAccessDenied):
			h.logger.Warn("PATCH /slots/%s/complete - Access denied: recruiter_id=%d", slotID, recruiterID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /slots/%s/complete - Invalid transition: %v", slotID, err)
			handlers.RespondDomainError(w, err, "")

		default:
			h.logger.Error("PATCH /slots/%s/complete - Failed to complete slot: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/%s/complete - Slot completed: recruiter_id=%d", slotID, recruiterID)
	handlers.RespondJSON(w, http.StatusOK, slotModels.FromDomainSlot(slot, recruiterID))
}
