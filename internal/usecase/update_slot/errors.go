package update_slot

import (
	"errors"
	"fmt"

	"github.com/m04kA/jobfair-interviews/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("update_slot: slot %w", domain.ErrNotFound)

	// ErrEventNotFound возвращается, когда мероприятие слота не найдено
	ErrEventNotFound = fmt.Errorf("update_slot: event %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда слот принадлежит другому рекрутеру
	ErrAccessDenied = fmt.Errorf("update_slot: %w", domain.ErrAccessDenied)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_slot: internal error")
)
