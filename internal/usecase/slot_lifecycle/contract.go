package slot_lifecycle

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/integrations/meetingprovider"
	"github.com/m04kA/jobfair-interviews/internal/integrations/notifier"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
	UpdateStatus(ctx context.Context, slot *domain.Slot) error
	SetMeeting(ctx context.Context, id uuid.UUID, candidateID int64, link, providerMeetingID string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ApplicationRepository интерфейс репозитория заявок
type ApplicationRepository interface {
	CancelAcceptedBySlot(ctx context.Context, slotID uuid.UUID) ([]*domain.Application, error)
}

// MeetingProvisioner интерфейс провайдера видеовстреч
type MeetingProvisioner interface {
	CreateMeeting(ctx context.Context, req meetingprovider.MeetingRequest) (*meetingprovider.Meeting, error)
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
	IncProvisioningFailure()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
