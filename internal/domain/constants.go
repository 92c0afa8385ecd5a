package domain

// SlotStatus represents the status of an interview slot
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusCancelled SlotStatus = "cancelled"
	SlotStatusCompleted SlotStatus = "completed"
)

// Medium способ проведения интервью
type Medium string

const (
	MediumVideo Medium = "video"
	MediumPhone Medium = "phone"
)

// ApplicationStatus represents the status of an application
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusReviewed  ApplicationStatus = "reviewed"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusCancelled ApplicationStatus = "cancelled"
)

// Business validation constants
const (
	DefaultMinSlotMinutes     = 10
	DefaultMaxSlotMinutes     = 240 // 4 hours
	DefaultMaxSlotsPerRequest = 50
	MaxDescriptionLength      = 1000
	MaxNotesLength            = 2000
	MaxContactPhoneLength     = 32
	MaxRecruiterNotesLength   = 2000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveSlotStatuses статусы, участвующие в проверке пересечений
var ActiveSlotStatuses = []SlotStatus{
	SlotStatusAvailable,
	SlotStatusBooked,
}

// IsValid returns true if the status is one of the known slot statuses
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusAvailable, SlotStatusBooked, SlotStatusCancelled, SlotStatusCompleted:
		return true
	}
	return false
}

// IsValid returns true if the medium is supported
func (m Medium) IsValid() bool {
	return m == MediumVideo || m == MediumPhone
}

// IsValid returns true if the status is one of the known application statuses
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusAccepted,
		ApplicationStatusRejected, ApplicationStatusCancelled:
		return true
	}
	return false
}
