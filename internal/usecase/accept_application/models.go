package accept_application

import (
	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
)

const (
	transitionBook      = "book"
	conflictKindBooking = "booking"
)

// Request модель запроса на принятие заявки
type Request struct {
	ApplicationID uuid.UUID
	RecruiterID   int64   `json:"recruiterId" validate:"gt=0"`
	Notes         *string `json:"notes" validate:"omitempty,max=2000"`
}

// Response результат принятия заявки
type Response struct {
	Application *domain.Application
	Slot        *domain.Slot // nil, если слот не выбран
	SlotChanged bool         // false при повторном принятии или без слота
}
