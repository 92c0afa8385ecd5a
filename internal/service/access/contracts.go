package access

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error)
}

// EventServiceClient интерфейс клиента справочника мероприятий
type EventServiceClient interface {
	GetPosting(ctx context.Context, postingID int64) (*eventservice.Posting, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
