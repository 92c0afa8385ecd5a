package delete_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/jobfair-interviews/internal/api/handlers"
	"github.com/m04kA/jobfair-interviews/internal/api/middleware"
	"github.com/m04kA/jobfair-interviews/internal/domain"
	slotLifecycle "github.com/m04kA/jobfair-interviews/internal/usecase/slot_lifecycle"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgSlotNotFound  = "слот не найден"
	msgAccessDenied  = "слот принадлежит другому рекрутеру"
)

type Handler struct {
	slots  SlotDeleter
	logger Logger
}

func NewHandler(slots SlotDeleter, logger Logger) *Handler {
	return &Handler{
		slots:  slots,
		logger: logger,
	}
}

// Handle DELETE /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "")
		return
	}

	slotID, err := handlers.PathUUID(r, "slotId")
	if err != nil {
		h.logger.Warn("DELETE /slots/{slotId} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.slots.Delete(r.Context(), slotID, recruiterID); err != nil {
		switch {
		case errors.Is(err, slotLifecycle.ErrSlotNotFound):
			h.logger.Warn("DELETE /slots/%s - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotLifecycle.ErrAccessDenied):
			h.logger.Warn("DELETE /slots/%s - Access denied: recruiter_id=%d", slotID, recruiterID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("DELETE /slots/%s - Invalid transition: %v", slotID, err)
			handlers.RespondDomainError(w, err, "")

		default:
			h.logger.Error("DELETE /slots/%s - Failed to delete slot: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /slots/%s - Slot deleted: recruiter_id=%d", slotID, recruiterID)
	w.WriteHeader(http.StatusNoContent)
}
