package slot_lifecycle

import (
	"github.com/m04kA/jobfair-interviews/internal/domain"
)

// Переходы для метрик
const (
	transitionBook     = "book"
	transitionRelease  = "release"
	transitionCancel   = "cancel"
	transitionComplete = "complete"
	transitionDelete   = "delete"
)

// BookResult результат бронирования
type BookResult struct {
	Slot    *domain.Slot
	Changed bool // false, если слот уже был забронирован тем же кандидатом
}

// CancelResult результат отмены слота рекрутером
type CancelResult struct {
	Slot                  *domain.Slot
	CancelledApplications []*domain.Application
}
