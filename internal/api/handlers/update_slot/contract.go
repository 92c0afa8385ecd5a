package update_slot

import (
	"context"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	updateSlot "github.com/m04kA/jobfair-interviews/internal/usecase/update_slot"
)

type UpdateSlotUseCase interface {
	Execute(ctx context.Context, req *updateSlot.Request) (*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
