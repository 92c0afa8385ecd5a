package get_slot

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/service/slots/models"
)

type SlotService interface {
	GetByID(ctx context.Context, id uuid.UUID, viewerID int64) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
