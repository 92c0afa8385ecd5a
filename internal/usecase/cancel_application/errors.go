package cancel_application

import (
	"errors"
	"fmt"

	"github.com/m04kA/jobfair-interviews/internal/domain"
)

var (
	// ErrApplicationNotFound возвращается, когда заявка не найдена
	ErrApplicationNotFound = fmt.Errorf("cancel_application: application %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не кандидат и не ответственный рекрутер
	ErrAccessDenied = fmt.Errorf("cancel_application: %w", domain.ErrAccessDenied)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_application: internal error")
)
