package update_slot

import (
	"github.com/google/uuid"

	updateSlot "github.com/m04kA/jobfair-interviews/internal/usecase/update_slot"
	"github.com/m04kA/jobfair-interviews/pkg/types"
)

// UpdateSlotRequest HTTP request model
type UpdateSlotRequest struct {
	Date         string           `json:"date"`      // "2025-03-14"
	StartTime    types.TimeString `json:"startTime"` // "10:00"
	EndTime      types.TimeString `json:"endTime"`
	Medium       string           `json:"medium"`
	Description  string           `json:"description"`
	ContactPhone *string          `json:"contactPhone,omitempty"`
	Notes        string           `json:"notes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateSlotRequest) ToUseCaseRequest(slotID uuid.UUID, recruiterID int64) *updateSlot.Request {
	return &updateSlot.Request{
		SlotID:       slotID,
		RecruiterID:  recruiterID,
		Date:         r.Date,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Medium:       r.Medium,
		Description:  r.Description,
		ContactPhone: r.ContactPhone,
		Notes:        r.Notes,
	}
}
