package accept_application

import (
	"errors"
	"fmt"

	"github.com/m04kA/jobfair-interviews/internal/domain"
)

var (
	// ErrApplicationNotFound возвращается, когда заявка не найдена
	ErrApplicationNotFound = fmt.Errorf("accept_application: application %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда заявкой распоряжается другой рекрутер
	ErrAccessDenied = fmt.Errorf("accept_application: %w", domain.ErrAccessDenied)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("accept_application: internal error")
)
