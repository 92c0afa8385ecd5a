package create_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
	"github.com/m04kA/jobfair-interviews/pkg/validation"
)

// validateRequest проверяет запрос и собирает слоты для сохранения
// Все ошибки возвращаются одной domain.ValidationError с путями полей
func validateRequest(req *Request, rules domain.SlotRules) ([]*domain.Slot, error) {
	verr := domain.NewValidationError()
	for field, msg := range validation.Struct(req) {
		verr.Add(field, msg)
	}

	if rules.MaxSlotsPerRequest > 0 && len(req.Slots) > rules.MaxSlotsPerRequest {
		verr.Add("slots", fmt.Sprintf("must contain at most %d items", rules.MaxSlotsPerRequest))
	}

	slots := make([]*domain.Slot, 0, len(req.Slots))
	for i, input := range req.Slots {
		prefix := fmt.Sprintf("slots[%d].", i)

		date, err := time.Parse(domain.DateFormat, input.Date)
		if err != nil {
			verr.Add(prefix+"date", "must be a date in YYYY-MM-DD format")
		}

		timeRange := domain.TimeRange{Start: input.StartTime, End: input.EndTime}
		minutes := rules.ValidateRange(timeRange, prefix, verr)

		slots = append(slots, &domain.Slot{
			RecruiterID:     req.RecruiterID,
			EventID:         req.EventID,
			Date:            domain.DateOnly(date),
			StartTime:       input.StartTime,
			EndTime:         input.EndTime,
			Medium:          domain.Medium(input.Medium),
			DurationMinutes: minutes,
			Description:     input.Description,
			Status:          domain.SlotStatusAvailable,
			ContactPhone:    input.ContactPhone,
			Notes:           input.Notes,
		})
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return slots, nil
}

// validateEventWindow проверяет, что даты слотов попадают в окно интервью мероприятия
func validateEventWindow(event *eventservice.Event, slots []*domain.Slot) error {
	verr := domain.NewValidationError()

	for i, slot := range slots {
		inside, err := event.ContainsDate(slot.Date)
		if err != nil {
			return err
		}
		if !inside {
			verr.Add(fmt.Sprintf("slots[%d].date", i),
				fmt.Sprintf("must be within the event interview window %s..%s", event.InterviewStart, event.InterviewEnd))
		}
	}

	return verr.OrNil()
}
