package accept_application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/integrations/notifier"
	"github.com/m04kA/jobfair-interviews/internal/usecase/slot_lifecycle"
)

// ApplicationRepository интерфейс репозитория заявок
type ApplicationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	UpdateStatus(ctx context.Context, app *domain.Application) error
}

// RecruiterResolver определяет рекрутера, принимающего решение по заявке
type RecruiterResolver interface {
	ApplicationRecruiter(ctx context.Context, app *domain.Application) (int64, error)
}

// SlotBooker переходы слота при принятии заявки
type SlotBooker interface {
	Book(ctx context.Context, slotID uuid.UUID, candidateID int64) (*slot_lifecycle.BookResult, error)
	EnsureMeeting(ctx context.Context, slot *domain.Slot) *domain.Slot
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	Notify(ctx context.Context, notifications ...notifier.Notification)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder доменные счётчики
type MetricsRecorder interface {
	IncSlotTransition(transition string)
	IncConflict(kind string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
