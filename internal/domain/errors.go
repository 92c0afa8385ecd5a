package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/pkg/types"
)

// Виды ошибок. Ошибки пакетов оборачивают один из них, обработчики сопоставляют вид с HTTP статусом
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrAccessDenied      = errors.New("access denied")
)

// ErrEmptyRange возвращается, когда начало интервала не раньше конца
var ErrEmptyRange = errors.New("start time must be before end time")

// Kind названия видов ошибок для ответов API
const (
	KindValidation        = "validation"
	KindNotFound          = "not_found"
	KindConflict          = "conflict"
	KindInvalidTransition = "invalid_transition"
	KindAccessDenied      = "access_denied"
	KindInternal          = "internal"
)

// KindOf возвращает вид ошибки
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrAccessDenied):
		return KindAccessDenied
	default:
		return KindInternal
	}
}

// ValidationError ошибка валидации с детализацией по полям
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError создает пустую ошибку валидации
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add добавляет ошибку поля. Первая ошибка поля сохраняется
func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = message
}

// HasErrors returns true if at least one field failed validation
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil возвращает nil, если ошибок нет
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

// Is позволяет errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// SlotConflictError пересечение с существующим активным слотом рекрутера
type SlotConflictError struct {
	SlotID    uuid.UUID
	EventID   int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// NewSlotConflictError создает ошибку пересечения по существующему слоту
func NewSlotConflictError(existing *Slot) *SlotConflictError {
	return &SlotConflictError{
		SlotID:    existing.ID,
		EventID:   existing.EventID,
		Date:      existing.Date,
		StartTime: existing.StartTime,
		EndTime:   existing.EndTime,
	}
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%s: overlaps slot %s (event %d, %s %s-%s)",
		ErrConflict, e.SlotID, e.EventID, e.Date.Format(DateFormat), e.StartTime, e.EndTime)
}

// Is позволяет errors.Is(err, ErrConflict)
func (e *SlotConflictError) Is(target error) bool {
	return target == ErrConflict
}

// BookingConflictError слот уже забронирован другим кандидатом
type BookingConflictError struct {
	SlotID uuid.UUID
}

func (e *BookingConflictError) Error() string {
	return fmt.Sprintf("%s: slot %s is already booked by another candidate", ErrConflict, e.SlotID)
}

// Is позволяет errors.Is(err, ErrConflict)
func (e *BookingConflictError) Is(target error) bool {
	return target == ErrConflict
}

// TransitionError недопустимый переход состояния
type TransitionError struct {
	Entity string // slot | application
	ID     uuid.UUID
	From   string
	To     string
}

// NewSlotTransitionError создает ошибку перехода для слота
func NewSlotTransitionError(id uuid.UUID, from, to SlotStatus) *TransitionError {
	return &TransitionError{Entity: "slot", ID: id, From: string(from), To: string(to)}
}

// NewApplicationTransitionError создает ошибку перехода для заявки
func NewApplicationTransitionError(id uuid.UUID, from, to ApplicationStatus) *TransitionError {
	return &TransitionError{Entity: "application", ID: id, From: string(from), To: string(to)}
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s %s cannot move from %s to %s", ErrInvalidTransition, e.Entity, e.ID, e.From, e.To)
}

// Is позволяет errors.Is(err, ErrInvalidTransition)
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
