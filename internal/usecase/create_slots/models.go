package create_slots

import (
	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/pkg/types"
)

// Request модель запроса на создание слотов
// Слоты создаются все вместе или ни одного
type Request struct {
	RecruiterID int64       `json:"recruiterId" validate:"gt=0"`
	EventID     int64       `json:"eventId" validate:"gt=0"`
	Slots       []SlotInput `json:"slots" validate:"required,min=1,dive"`
}

// SlotInput данные одного слота
type SlotInput struct {
	Date         string           `json:"date" validate:"required,datetime=2006-01-02"` // "2025-03-14"
	StartTime    types.TimeString `json:"startTime" validate:"required"`
	EndTime      types.TimeString `json:"endTime" validate:"required"`
	Medium       string           `json:"medium" validate:"required,oneof=video phone"`
	Description  string           `json:"description" validate:"max=1000"`
	ContactPhone *string          `json:"contactPhone" validate:"omitempty,max=32"`
	Notes        string           `json:"notes" validate:"max=2000"`
}

// Response модель ответа с созданными слотами
type Response struct {
	Slots []*domain.Slot
}
