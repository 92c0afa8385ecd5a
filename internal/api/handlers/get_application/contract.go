package get_application

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/service/applications/models"
)

type ApplicationService interface {
	GetByID(ctx context.Context, id uuid.UUID, userID int64) (*models.ApplicationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
