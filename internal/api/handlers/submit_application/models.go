package submit_application

import (
	"encoding/json"

	"github.com/google/uuid"

	submitApplication "github.com/m04kA/jobfair-interviews/internal/usecase/submit_application"
)

// SubmitApplicationRequest HTTP request model
// Кандидат берётся из X-User-ID
type SubmitApplicationRequest struct {
	EventID   int64           `json:"eventId"`
	PostingID int64           `json:"postingId"`
	SlotID    *uuid.UUID      `json:"slotId,omitempty"`
	Answers   json.RawMessage `json:"answers,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitApplicationRequest) ToUseCaseRequest(candidateID int64) *submitApplication.Request {
	return &submitApplication.Request{
		CandidateID: candidateID,
		EventID:     r.EventID,
		PostingID:   r.PostingID,
		SlotID:      r.SlotID,
		Answers:     r.Answers,
	}
}
