package reject_application

import (
	"github.com/google/uuid"
)

// Request модель запроса на отклонение заявки
type Request struct {
	ApplicationID uuid.UUID
	RecruiterID   int64   `json:"recruiterId" validate:"gt=0"`
	Notes         *string `json:"notes" validate:"omitempty,max=2000"`
}
