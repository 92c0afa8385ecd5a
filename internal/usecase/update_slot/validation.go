package update_slot

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
	"github.com/m04kA/jobfair-interviews/pkg/validation"
)

// validateRequest проверяет запрос на редактирование
func validateRequest(req *Request, rules domain.SlotRules) (*validated, error) {
	verr := domain.NewValidationError()
	for field, msg := range validation.Struct(req) {
		verr.Add(field, msg)
	}

	if req.SlotID == uuid.Nil {
		verr.Add("slotId", "is required")
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		verr.Add("date", "must be a date in YYYY-MM-DD format")
	}

	minutes := rules.ValidateRange(domain.TimeRange{Start: req.StartTime, End: req.EndTime}, "", verr)

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return &validated{date: domain.DateOnly(date), minutes: minutes}, nil
}

// validateEventWindow проверяет, что новая дата попадает в окно интервью мероприятия
func validateEventWindow(event *eventservice.Event, date time.Time) error {
	inside, err := event.ContainsDate(date)
	if err != nil {
		return err
	}
	if !inside {
		verr := domain.NewValidationError()
		verr.Add("date", fmt.Sprintf("must be within the event interview window %s..%s",
			event.InterviewStart, event.InterviewEnd))
		return verr
	}
	return nil
}
