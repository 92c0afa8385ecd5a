package create_slots

import (
	createSlots "github.com/m04kA/jobfair-interviews/internal/usecase/create_slots"
)

// CreateSlotsRequest HTTP request model
// Рекрутер берётся из X-User-ID, мероприятие из пути
type CreateSlotsRequest struct {
	Slots []createSlots.SlotInput `json:"slots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSlotsRequest) ToUseCaseRequest(recruiterID, eventID int64) *createSlots.Request {
	return &createSlots.Request{
		RecruiterID: recruiterID,
		EventID:     eventID,
		Slots:       r.Slots,
	}
}
