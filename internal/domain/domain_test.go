package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/jobfair-interviews/pkg/types"
)

func newSlot(start, end string, status SlotStatus) *Slot {
	return &Slot{
		ID:          uuid.New(),
		RecruiterID: 1,
		EventID:     10,
		Date:        time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		Medium:      MediumVideo,
		Status:      status,
	}
}

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     TimeRange
		expected bool
	}{
		{"partial overlap", TimeRange{"10:00", "10:30"}, TimeRange{"10:15", "10:45"}, true},
		{"contained", TimeRange{"10:00", "11:00"}, TimeRange{"10:15", "10:30"}, true},
		{"identical", TimeRange{"10:00", "10:30"}, TimeRange{"10:00", "10:30"}, true},
		{"touching end", TimeRange{"10:00", "10:30"}, TimeRange{"10:30", "11:00"}, false},
		{"touching start", TimeRange{"10:30", "11:00"}, TimeRange{"10:00", "10:30"}, false},
		{"disjoint", TimeRange{"09:00", "09:30"}, TimeRange{"14:00", "15:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.expected, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTimeRange_Validate(t *testing.T) {
	assert.NoError(t, TimeRange{"10:00", "10:30"}.Validate())
	assert.ErrorIs(t, TimeRange{"10:30", "10:30"}.Validate(), ErrEmptyRange)
	assert.ErrorIs(t, TimeRange{"11:00", "10:30"}.Validate(), ErrEmptyRange)
	assert.ErrorIs(t, TimeRange{"25:00", "10:30"}.Validate(), types.ErrInvalidTimeFormat)
}

func TestFindConflict(t *testing.T) {
	a := newSlot("10:00", "10:30", SlotStatusAvailable)
	cancelled := newSlot("10:00", "12:00", SlotStatusCancelled)
	completed := newSlot("10:00", "12:00", SlotStatusCompleted)
	otherEvent := newSlot("11:00", "11:30", SlotStatusBooked)
	otherEvent.EventID = 99

	existing := []*Slot{cancelled, completed, a, otherEvent}

	t.Run("overlap with slot from another event", func(t *testing.T) {
		conflict := FindConflict(existing, TimeRange{"11:15", "11:45"}, nil)
		require.NotNil(t, conflict)
		assert.Equal(t, otherEvent.ID, conflict.ID)
	})

	t.Run("inactive slots are ignored", func(t *testing.T) {
		assert.Nil(t, FindConflict([]*Slot{cancelled, completed}, TimeRange{"10:00", "11:00"}, nil))
	})

	t.Run("excluded slot is skipped", func(t *testing.T) {
		assert.Nil(t, FindConflict(existing, TimeRange{"10:00", "10:45"}, &a.ID))
	})

	t.Run("free range", func(t *testing.T) {
		assert.Nil(t, FindConflict(existing, TimeRange{"10:30", "11:00"}, nil))
	})
}

func TestSlot_Book(t *testing.T) {
	t.Run("available slot is booked", func(t *testing.T) {
		slot := newSlot("10:00", "10:30", SlotStatusAvailable)

		changed, err := slot.Book(7)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, SlotStatusBooked, slot.Status)
		require.NotNil(t, slot.CandidateID)
		assert.Equal(t, int64(7), *slot.CandidateID)
		assert.True(t, slot.NeedsMeeting())
	})

	t.Run("same candidate is a no-op", func(t *testing.T) {
		slot := newSlot("10:00", "10:30", SlotStatusAvailable)
		_, _ = slot.Book(7)

		changed, err := slot.Book(7)

		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("other candidate gets conflict", func(t *testing.T) {
		slot := newSlot("10:00", "10:30", SlotStatusAvailable)
		_, _ = slot.Book(7)

		_, err := slot.Book(8)

		var conflict *BookingConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, slot.ID, conflict.SlotID)
		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, int64(7), *slot.CandidateID)
	})

	t.Run("cancelled slot cannot be booked", func(t *testing.T) {
		slot := newSlot("10:00", "10:30", SlotStatusCancelled)

		_, err := slot.Book(7)

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, KindInvalidTransition, KindOf(err))
	})
}

func TestSlot_Release(t *testing.T) {
	slot := newSlot("10:00", "10:30", SlotStatusAvailable)
	_, _ = slot.Book(7)
	slot.MeetingLink = ptrString("https://meet.example/abc")

	assert.False(t, slot.Release(8), "stale release must not clear the holder")
	assert.Equal(t, SlotStatusBooked, slot.Status)

	assert.True(t, slot.Release(7))
	assert.Equal(t, SlotStatusAvailable, slot.Status)
	assert.Nil(t, slot.CandidateID)
	assert.Nil(t, slot.MeetingLink)

	assert.False(t, slot.Release(7))
}

func TestSlot_CancelAndComplete(t *testing.T) {
	slot := newSlot("10:00", "10:30", SlotStatusAvailable)
	_, _ = slot.Book(7)
	link, meetingID := "https://meet.test/1", "m-1"
	slot.MeetingLink = &link
	slot.ProviderMeetingID = &meetingID

	holder, err := slot.Cancel()
	require.NoError(t, err)
	require.NotNil(t, holder)
	assert.Equal(t, int64(7), *holder)
	assert.Nil(t, slot.CandidateID)
	assert.Nil(t, slot.MeetingLink)
	assert.Nil(t, slot.ProviderMeetingID)
	assert.False(t, slot.HasMeeting())

	_, err = slot.Cancel()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	available := newSlot("10:00", "10:30", SlotStatusAvailable)
	assert.ErrorIs(t, available.Complete(), ErrInvalidTransition)

	_, _ = available.Book(3)
	require.NoError(t, available.Complete())
	assert.Equal(t, SlotStatusCompleted, available.Status)
	assert.False(t, available.IsActive())
}

func TestApplication_Transitions(t *testing.T) {
	app := &Application{Status: ApplicationStatusPending}
	assert.True(t, app.CanBeDecided())
	assert.True(t, app.CanTransitionTo(ApplicationStatusReviewed))
	assert.False(t, app.CanTransitionTo(ApplicationStatusAccepted))

	app.Status = ApplicationStatusAccepted
	assert.False(t, app.CanBeDecided())
	assert.True(t, app.CanBeCancelled())
	assert.False(t, app.CanTransitionTo(ApplicationStatusReviewed))

	app.Status = ApplicationStatusRejected
	assert.True(t, app.IsTerminal())
	assert.False(t, app.CanBeCancelled())
}

func TestValidationError(t *testing.T) {
	verr := NewValidationError()
	assert.NoError(t, verr.OrNil())

	verr.Add("startTime", "required")
	verr.Add("startTime", "ignored")
	verr.Add("medium", "must be video or phone")

	err := verr.OrNil()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "required", verr.Fields["startTime"])
	assert.Equal(t, "validation failed: medium: must be video or phone; startTime: required", err.Error())
}

func TestSlotConflictError(t *testing.T) {
	existing := newSlot("10:00", "10:30", SlotStatusAvailable)
	err := error(NewSlotConflictError(existing))

	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Contains(t, err.Error(), existing.ID.String())
}

func ptrString(s string) *string {
	return &s
}

func TestSlotRules_ValidateRange(t *testing.T) {
	rules := SlotRules{MinSlotMinutes: 15, MaxSlotMinutes: 120}

	tests := []struct {
		name    string
		start   types.TimeString
		end     types.TimeString
		minutes int
		field   string
		message string
	}{
		{name: "ok", start: "10:00", end: "10:45", minutes: 45},
		{name: "bad start", start: "10am", end: "11:00", field: "slots[0].startTime", message: "must be in HH:MM format"},
		{name: "bad end", start: "10:00", end: "24:30", field: "slots[0].endTime", message: "must be in HH:MM format"},
		{name: "empty range", start: "10:00", end: "10:00", field: "slots[0].endTime", message: "must be after startTime"},
		{name: "too short", start: "10:00", end: "10:05", field: "slots[0].endTime", message: "slot duration must be between 15 and 120 minutes"},
		{name: "too long", start: "08:00", end: "12:00", field: "slots[0].endTime", message: "slot duration must be between 15 and 120 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := NewValidationError()
			minutes := rules.ValidateRange(TimeRange{Start: tt.start, End: tt.end}, "slots[0].", verr)

			assert.Equal(t, tt.minutes, minutes)
			if tt.field == "" {
				assert.False(t, verr.HasErrors())
				return
			}
			assert.Equal(t, tt.message, verr.Fields[tt.field])
		})
	}
}
