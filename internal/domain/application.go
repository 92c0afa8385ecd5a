package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Application represents a candidate's application to a posting
type Application struct {
	ID          uuid.UUID
	CandidateID int64
	PostingID   int64
	EventID     int64
	SlotID      *uuid.UUID // выбранный слот, резервируется только при принятии
	Answers     json.RawMessage
	Status      ApplicationStatus

	RecruiterNotes string
	DecidedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSlot returns true if the candidate pre-selected a slot
func (a *Application) HasSlot() bool {
	return a.SlotID != nil
}

// IsOpen returns true if the application is still waiting for a decision
func (a *Application) IsOpen() bool {
	return a.Status == ApplicationStatusPending || a.Status == ApplicationStatusReviewed
}

// IsTerminal returns true if no further workflow transitions are possible
func (a *Application) IsTerminal() bool {
	return a.Status == ApplicationStatusRejected || a.Status == ApplicationStatusCancelled
}

// CanBeDecided returns true if the application can be accepted or rejected
func (a *Application) CanBeDecided() bool {
	return a.IsOpen()
}

// CanBeCancelled returns true if either party may cancel the application
func (a *Application) CanBeCancelled() bool {
	return a.IsOpen() || a.Status == ApplicationStatusAccepted
}

// IsOwnedBy returns true if the application belongs to the candidate
func (a *Application) IsOwnedBy(candidateID int64) bool {
	return a.CandidateID == candidateID
}

// CanTransitionTo проверяет переход по административному пути UpdateStatus
// Разрешены только pending -> reviewed и reviewed -> reviewed (обновление заметок)
func (a *Application) CanTransitionTo(next ApplicationStatus) bool {
	return next == ApplicationStatusReviewed && a.IsOpen()
}

// ApplicationFilter фильтр для получения заявок
type ApplicationFilter struct {
	CandidateID *int64
	PostingID   *int64
	EventID     *int64
	SlotID      *uuid.UUID
	Status      *ApplicationStatus
}
