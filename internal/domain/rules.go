package domain

import (
	"errors"
	"fmt"
)

// SlotRules настраиваемые ограничения на слоты
type SlotRules struct {
	RequireEventWindow bool // дата слота должна попадать в окно интервью мероприятия
	MaxSlotsPerRequest int
	MinSlotMinutes     int
	MaxSlotMinutes     int
}

// DefaultSlotRules возвращает ограничения по умолчанию
func DefaultSlotRules() SlotRules {
	return SlotRules{
		RequireEventWindow: true,
		MaxSlotsPerRequest: DefaultMaxSlotsPerRequest,
		MinSlotMinutes:     DefaultMinSlotMinutes,
		MaxSlotMinutes:     DefaultMaxSlotMinutes,
	}
}

// ValidateRange проверяет границы и длительность интервала, ошибки пишутся в verr с префиксом поля
// Возвращает длительность в минутах (0, если интервал некорректен)
func (r SlotRules) ValidateRange(tr TimeRange, prefix string, verr *ValidationError) int {
	if err := tr.Start.Validate(); err != nil {
		verr.Add(prefix+"startTime", "must be in HH:MM format")
		return 0
	}
	if err := tr.End.Validate(); err != nil {
		verr.Add(prefix+"endTime", "must be in HH:MM format")
		return 0
	}

	if err := tr.Validate(); err != nil {
		if errors.Is(err, ErrEmptyRange) {
			verr.Add(prefix+"endTime", "must be after startTime")
		} else {
			verr.Add(prefix+"startTime", err.Error())
		}
		return 0
	}

	minutes, err := tr.Minutes()
	if err != nil {
		verr.Add(prefix+"endTime", err.Error())
		return 0
	}

	if minutes < r.MinSlotMinutes || minutes > r.MaxSlotMinutes {
		verr.Add(prefix+"endTime",
			fmt.Sprintf("slot duration must be between %d and %d minutes", r.MinSlotMinutes, r.MaxSlotMinutes))
		return 0
	}

	return minutes
}
