package submit_application

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Request модель запроса на подачу заявки
type Request struct {
	CandidateID int64           `json:"candidateId" validate:"gt=0"`
	EventID     int64           `json:"eventId" validate:"gt=0"`
	PostingID   int64           `json:"postingId" validate:"gt=0"`
	SlotID      *uuid.UUID      `json:"slotId"`
	Answers     json.RawMessage `json:"answers"`
}
