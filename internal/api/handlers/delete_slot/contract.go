package delete_slot

import (
	"context"

	"github.com/google/uuid"
)

type SlotDeleter interface {
	Delete(ctx context.Context, slotID uuid.UUID, recruiterID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
