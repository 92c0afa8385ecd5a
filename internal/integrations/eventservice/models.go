package eventservice

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Event модель мероприятия из EventService
type Event struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	InterviewStart string  `json:"interview_start"` // YYYY-MM-DD, включительно
	InterviewEnd   string  `json:"interview_end"`   // YYYY-MM-DD, включительно
	RecruiterIDs   []int64 `json:"recruiter_ids"`
	IsVirtual      bool    `json:"is_virtual"`
}

// HasRecruiter returns true if the recruiter participates in the event
func (e *Event) HasRecruiter(recruiterID int64) bool {
	for _, id := range e.RecruiterIDs {
		if id == recruiterID {
			return true
		}
	}
	return false
}

// ContainsDate проверяет, что дата попадает в окно интервью мероприятия
// Пустая граница окна означает отсутствие ограничения с этой стороны
func (e *Event) ContainsDate(date time.Time) (bool, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	if e.InterviewStart != "" {
		start, err := time.Parse(dateLayout, e.InterviewStart)
		if err != nil {
			return false, fmt.Errorf("%w: interview_start %q", ErrInvalidResponse, e.InterviewStart)
		}
		if day.Before(start) {
			return false, nil
		}
	}

	if e.InterviewEnd != "" {
		end, err := time.Parse(dateLayout, e.InterviewEnd)
		if err != nil {
			return false, fmt.Errorf("%w: interview_end %q", ErrInvalidResponse, e.InterviewEnd)
		}
		if day.After(end) {
			return false, nil
		}
	}

	return true, nil
}

// Posting модель вакансии из EventService
type Posting struct {
	ID                  int64           `json:"id"`
	EventID             int64           `json:"event_id"`
	RecruiterID         int64           `json:"recruiter_id"`
	Title               string          `json:"title"`
	IsOpen              bool            `json:"is_open"`
	QuestionnaireSchema json.RawMessage `json:"questionnaire_schema,omitempty"` // JSON Schema ответов, опционально
}

// HasQuestionnaire returns true if answers must be validated against a schema
func (p *Posting) HasQuestionnaire() bool {
	return len(p.QuestionnaireSchema) > 0 && string(p.QuestionnaireSchema) != "null"
}

// ErrorResponse модель ошибки от EventService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
