package get_slot_stats

import (
	"context"

	"github.com/m04kA/jobfair-interviews/internal/service/slots/models"
)

type SlotService interface {
	Stats(ctx context.Context, req *models.StatsRequest) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
