package submit_application

import (
	"context"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	submitApplication "github.com/m04kA/jobfair-interviews/internal/usecase/submit_application"
)

type SubmitApplicationUseCase interface {
	Execute(ctx context.Context, req *submitApplication.Request) (*domain.Application, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
