package cancel_slot

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
	slots  SlotCanceller
	logger Logger
}

func NewHandler(slots SlotCanceller, logger Logger) *Handler {
	return &Handler{
		slots:  slots,
		logger: logger,
	}
}

// Handle PATCH /api/v1/slots/{slotId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "")
		return
	}

	slotID, err := handlers.PathUUID(r, "slotId")
	if err != nil {
		h.logger.Warn("PATCH /slots/{slotId}/cancel - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.slots.Cancel(r.Context(), slotID, recruiterID)
	if err != nil {
		switch {
		case errors.Is(err, slotLifecycle.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/%s/cancel - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotLifecycle.ErrAccessDenied):
			h.logger.Warn("PATCH /slots/%s/cancel - Access denied: recruiter_id=%d", slotID, recruiterID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /slots/%s/cancel - Invalid transition: %v", slotID, err)
			handlers.RespondDomainError(w, err, "")

		default:
			h.logger.Error("PATCH /slots/%s/cancel - Failed to cancel slot: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/%s/cancel - Slot cancelled: recruiter_id=%d, cancelled_applications=%d",
		slotID, recruiterID, len(result.CancelledApplications))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, recruiterID))
}
