package cancel_application

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/integrations/notifier"
)

// ApplicationRepository интерфейс репозитория заявок
type ApplicationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	UpdateStatus(ctx context.Context, app *domain.Application) error
	HasOtherAccepted(ctx context.Context, slotID uuid.UUID, candidateID int64, excludeID uuid.UUID) (bool, error)
}

// RecruiterResolver определяет рекрутера, принимающего решение по заявке
type RecruiterResolver interface {
	ApplicationRecruiter(ctx context.Context, app *domain.Application) (int64, error)
}

// SlotReleaser освобождение слота при отмене принятой заявки
type SlotReleaser interface {
	Release(ctx context.Context, slotID uuid.UUID, candidateID int64) (bool, error)
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
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
