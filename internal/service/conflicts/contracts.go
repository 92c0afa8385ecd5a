package conflicts

import (
	"context"
	"time"

	"github.com/m04kA/jobfair-interviews/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListActiveByRecruiterAndDate(ctx context.Context, recruiterID int64, date time.Time) ([]*domain.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
