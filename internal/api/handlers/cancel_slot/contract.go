package cancel_slot

import (
	"context"

	"github.com/google/uuid"

	slotLifecycle "github.com/m04kA/jobfair-interviews/internal/usecase/slot_lifecycle"
)

type SlotCanceller interface {
	Cancel(ctx context.Context, slotID uuid.UUID, recruiterID int64) (*slotLifecycle.CancelResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
