package reject_application

import (
	"context"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	rejectApplication "github.com/m04kA/jobfair-interviews/internal/usecase/reject_application"
)

type RejectApplicationUseCase interface {
	Execute(ctx context.Context, req *rejectApplication.Request) (*domain.Application, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
