package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/pkg/types"
)

// Slot represents a recruiter-owned interview time slot
type Slot struct {
	ID              uuid.UUID
	RecruiterID     int64
	EventID         int64
	Date            time.Time // календарная дата, время не используется
	StartTime       types.TimeString
	EndTime         types.TimeString
	Medium          Medium
	DurationMinutes int // вычисляется из StartTime/EndTime
	Description     string
	Status          SlotStatus

	CandidateID       *int64 // задан только в статусе booked
	MeetingLink       *string
	ProviderMeetingID *string
	ContactPhone      *string
	Notes             string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the slot time range
func (s *Slot) Range() TimeRange {
	return TimeRange{Start: s.StartTime, End: s.EndTime}
}

// IsActive returns true if the slot participates in conflict checks
func (s *Slot) IsActive() bool {
	return s.Status == SlotStatusAvailable || s.Status == SlotStatusBooked
}

// IsAvailable returns true if the slot can be selected or booked
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotStatusAvailable
}

// IsBookedBy returns true if the slot is booked by the given candidate
func (s *Slot) IsBookedBy(candidateID int64) bool {
	return s.Status == SlotStatusBooked && s.CandidateID != nil && *s.CandidateID == candidateID
}

// HasMeeting returns true if a meeting link is already attached
func (s *Slot) HasMeeting() bool {
	return s.MeetingLink != nil && *s.MeetingLink != ""
}

// NeedsMeeting returns true if a video meeting has to be provisioned for the slot
func (s *Slot) NeedsMeeting() bool {
	return s.Medium == MediumVideo && s.Status == SlotStatusBooked && !s.HasMeeting()
}

// IsOwnedBy returns true if the recruiter owns the slot
func (s *Slot) IsOwnedBy(recruiterID int64) bool {
	return s.RecruiterID == recruiterID
}

// CanBeDeleted returns true if the slot may be deleted
func (s *Slot) CanBeDeleted() bool {
	return s.IsActive()
}

// CanBeEdited returns true if the slot time and details may still be changed
func (s *Slot) CanBeEdited() bool {
	return s.Status == SlotStatusAvailable
}

// DateOnly приводит время к началу календарного дня в UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SlotFilter фильтр для получения слотов
type SlotFilter struct {
	EventID       *int64
	RecruiterID   *int64
	Date          *time.Time
	Status        *SlotStatus
	AvailableOnly bool // только available, перекрывает Status
}

// SlotStats количество слотов по статусам
type SlotStats struct {
	Total     int
	Available int
	Booked    int
	Cancelled int
	Completed int
}

// Add учитывает count слотов в статусе status
func (s *SlotStats) Add(status SlotStatus, count int) {
	switch status {
	case SlotStatusAvailable:
		s.Available += count
	case SlotStatusBooked:
		s.Booked += count
	case SlotStatusCancelled:
		s.Cancelled += count
	case SlotStatusCompleted:
		s.Completed += count
	default:
		return
	}
	s.Total += count
}
