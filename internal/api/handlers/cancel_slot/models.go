package cancel_slot

import (
	"github.com/google/uuid"

	slotModels "github.com/m04kA/jobfair-interviews/internal/service/slots/models"
	slotLifecycle "github.com/m04kA/jobfair-interviews/internal/usecase/slot_lifecycle"
)

// CancelSlotResponse HTTP response model
type CancelSlotResponse struct {
	Slot                  *slotModels.SlotResponse `json:"slot"`
	CancelledApplications []uuid.UUID              `json:"cancelledApplications"`
}

// FromUseCaseResponse конвертирует результат отмены в HTTP response
func FromUseCaseResponse(result *slotLifecycle.CancelResult, viewerID int64) *CancelSlotResponse {
	resp := &CancelSlotResponse{
		Slot:                  slotModels.FromDomainSlot(result.Slot, viewerID),
		CancelledApplications: make([]uuid.UUID, 0, len(result.CancelledApplications)),
	}
	for _, app := range result.CancelledApplications {
		resp.CancelledApplications = append(resp.CancelledApplications, app.ID)
	}
	return resp
}
