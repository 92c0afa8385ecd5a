package accept_application

import (
	"context"

	acceptApplication "github.com/m04kA/jobfair-interviews/internal/usecase/accept_application"
)

type AcceptApplicationUseCase interface {
	Execute(ctx context.Context, req *acceptApplication.Request) (*acceptApplication.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
