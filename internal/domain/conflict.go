package domain

import (
	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/pkg/types"
)

// TimeRange полуинтервал [Start, End) внутри одних суток
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate проверяет формат и порядок границ
func (r TimeRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return err
	}
	if err := r.End.Validate(); err != nil {
		return err
	}
	if !r.Start.IsBefore(r.End) {
		return ErrEmptyRange
	}
	return nil
}

// Minutes returns the length of the range in minutes
func (r TimeRange) Minutes() (int, error) {
	return r.Start.MinutesUntil(r.End)
}

// Overlaps returns true if the two ranges share at least one minute.
// Touching ranges (10:00-10:30 and 10:30-11:00) do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return other.End.IsAfter(r.Start) && other.Start.IsBefore(r.End)
}

// FindConflict возвращает первый активный слот из existing, пересекающийся с candidate
// Слот с идентификатором exclude пропускается (повторная проверка при редактировании)
// Фильтрация по мероприятию не выполняется: рекрутер один на все мероприятия
func FindConflict(existing []*Slot, candidate TimeRange, exclude *uuid.UUID) *Slot {
	for _, slot := range existing {
		if slot == nil || !slot.IsActive() {
			continue
		}
		if exclude != nil && slot.ID == *exclude {
			continue
		}
		if slot.Range().Overlaps(candidate) {
			return slot
		}
	}
	return nil
}
