package create_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	LockRecruiter(ctx context.Context, recruiterID int64) error
}

// ConflictDetector поиск пересечений со слотами рекрутера
type ConflictDetector interface {
	HasConflict(ctx context.Context, recruiterID int64, date time.Time, timeRange domain.TimeRange, excludeSlotID *uuid.UUID) (*domain.Slot, error)
}

// EventServiceClient интерфейс клиента справочника мероприятий
type EventServiceClient interface {
	GetEvent(ctx context.Context, eventID int64) (*eventservice.Event, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder доменные счётчики
type MetricsRecorder interface {
	AddSlotsCreated(n int)
	IncConflict(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
