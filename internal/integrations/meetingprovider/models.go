package meetingprovider

import (
	"fmt"

	"github.com/google/uuid"
)

// MeetingRequest запрос на создание встречи для забронированного слота
type MeetingRequest struct {
	SlotID      uuid.UUID `json:"slot_id"`
	RecruiterID int64     `json:"recruiter_id"`
	CandidateID int64     `json:"candidate_id"`
	Date        string    `json:"date"`       // YYYY-MM-DD
	StartTime   string    `json:"start_time"` // HH:MM
	EndTime     string    `json:"end_time"`   // HH:MM
	Title       string    `json:"title,omitempty"`
}

// IdempotencyKey ключ идемпотентности брони: слот и кандидат
func (r MeetingRequest) IdempotencyKey() string {
	return fmt.Sprintf("%s:%d", r.SlotID, r.CandidateID)
}

// Meeting созданная встреча
type Meeting struct {
	Link              string `json:"meeting_link"`
	ProviderMeetingID string `json:"provider_meeting_id"`
}
