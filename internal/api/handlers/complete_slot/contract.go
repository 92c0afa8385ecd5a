package complete_slot

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
)

type SlotCompleter interface {
	Complete(ctx context.Context, slotID uuid.UUID, recruiterID int64) (*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
