package update_slot

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/pkg/types"
)

// Request модель запроса на редактирование слота
// Поля заменяются целиком, статус и кандидат не меняются
type Request struct {
	SlotID       uuid.UUID        `json:"slotId"`
	RecruiterID  int64            `json:"recruiterId" validate:"gt=0"`
	Date         string           `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    types.TimeString `json:"startTime" validate:"required"`
	EndTime      types.TimeString `json:"endTime" validate:"required"`
	Medium       string           `json:"medium" validate:"required,oneof=video phone"`
	Description  string           `json:"description" validate:"max=1000"`
	ContactPhone *string          `json:"contactPhone" validate:"omitempty,max=32"`
	Notes        string           `json:"notes" validate:"max=2000"`
}

// validated данные запроса после проверки
type validated struct {
	date    time.Time
	minutes int
}
