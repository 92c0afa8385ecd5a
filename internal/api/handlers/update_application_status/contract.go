package update_application_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/service/applications/models"
)

type ApplicationService interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.ApplicationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
