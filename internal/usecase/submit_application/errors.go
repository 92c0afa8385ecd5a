package submit_application

import (
	"errors"
	"fmt"

	"github.com/m04kA/jobfair-interviews/internal/domain"
)

var (
	// ErrPostingNotFound возвращается, когда вакансия не найдена
	ErrPostingNotFound = fmt.Errorf("submit_application: posting %w", domain.ErrNotFound)

	// ErrSlotNotFound возвращается, когда выбранный слот не найден
	ErrSlotNotFound = fmt.Errorf("submit_application: slot %w", domain.ErrNotFound)

	// ErrPostingClosed возвращается, когда вакансия больше не принимает заявки
	ErrPostingClosed = fmt.Errorf("submit_application: posting is closed: %w", domain.ErrConflict)

	// ErrAlreadyApplied возвращается при повторной заявке на ту же вакансию
	ErrAlreadyApplied = fmt.Errorf("submit_application: candidate already applied to this posting: %w", domain.ErrConflict)

	// ErrSlotUnavailable возвращается, когда выбранный слот уже занят или снят
	ErrSlotUnavailable = fmt.Errorf("submit_application: selected slot is not available: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_application: internal error")
)
