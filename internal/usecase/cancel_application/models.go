package cancel_application

import (
	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
)

const transitionRelease = "release"

// Request модель запроса на отмену заявки
type Request struct {
	ApplicationID uuid.UUID
	UserID        int64 // кандидат-владелец или ответственный рекрутер
}

// Response результат отмены
type Response struct {
	Application  *domain.Application
	SlotReleased bool
}
