package slot_lifecycle

import (
	"errors"
	"fmt"

	"github.com/m04kA/jobfair-interviews/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("slot_lifecycle: slot %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда слотом распоряжается другой рекрутер
	ErrAccessDenied = fmt.Errorf("slot_lifecycle: %w", domain.ErrAccessDenied)

	// ErrNotInTransaction возвращается, когда Book или Release вызваны вне транзакции
	ErrNotInTransaction = errors.New("slot_lifecycle: operation requires an active transaction")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("slot_lifecycle: internal error")
)
