package applications

import (
	"errors"
	"fmt"

	"github.com/m04kA/jobfair-interviews/internal/domain"
)

var (
	// ErrApplicationNotFound возвращается, когда заявка не найдена
	ErrApplicationNotFound = fmt.Errorf("applications: application %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = fmt.Errorf("applications: %w", domain.ErrAccessDenied)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("applications: internal error")
)
