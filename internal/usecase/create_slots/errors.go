package create_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/jobfair-interviews/internal/domain"
)

var (
	// ErrEventNotFound возвращается, когда мероприятие не найдено
	ErrEventNotFound = fmt.Errorf("create_slots: event %w", domain.ErrNotFound)

	// ErrNotEventRecruiter возвращается, когда рекрутер не участвует в мероприятии
	ErrNotEventRecruiter = fmt.Errorf("create_slots: recruiter is not a participant of the event: %w", domain.ErrAccessDenied)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_slots: internal error")
)
