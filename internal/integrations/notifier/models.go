package notifier

import (
	"time"
)

// Kind тип уведомления
type Kind string

const (
	KindApplicationSubmitted Kind = "application_submitted"
	KindApplicationAccepted  Kind = "application_accepted"
	KindBookingConfirmed     Kind = "booking_confirmed"
	KindApplicationRejected  Kind = "application_rejected"
	KindApplicationCancelled Kind = "application_cancelled"
	KindSlotCancelled        Kind = "slot_cancelled"
)

// RelatedEntity сущность, к которой относится уведомление
type RelatedEntity struct {
	Type string `json:"type"` // slot | application
	ID   string `json:"id"`
}

// Notification уведомление пользователю
type Notification struct {
	UserID        int64         `json:"user_id"`
	Kind          Kind          `json:"kind"`
	Title         string        `json:"title"`
	Message       string        `json:"message"`
	RelatedEntity RelatedEntity `json:"related_entity"`
	CreatedAt     time.Time     `json:"created_at"`
}
