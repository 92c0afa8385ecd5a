package update_slot

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
	"github.com/m04kA/jobfair-interviews/internal/service/conflicts"
	"github.com/m04kA/jobfair-interviews/internal/testutil"
	"github.com/m04kA/jobfair-interviews/pkg/logger"
	"github.com/m04kA/jobfair-interviews/pkg/ptr"
	"github.com/m04kA/jobfair-interviews/pkg/types"
)

type fixture struct {
	store   *testutil.Store
	metrics *testutil.Metrics
	uc      *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewStore()
	directory := testutil.NewDirectory()
	directory.AddEvent(&eventservice.Event{
		ID: 1, Title: "Spring Fair", InterviewStart: "2025-03-10", InterviewEnd: "2025-03-20",
		RecruiterIDs: []int64{5},
	})
	metrics := &testutil.Metrics{}

	uc := NewUseCase(
		store.Slots(),
		conflicts.NewService(store.Slots(), logger.Nop()),
		directory,
		store,
		metrics,
		domain.DefaultSlotRules(),
		logger.Nop(),
	)
	return &fixture{store: store, metrics: metrics, uc: uc}
}

func (f *fixture) slot(start, end types.TimeString, status domain.SlotStatus) *domain.Slot {
	return f.store.PutSlot(&domain.Slot{
		RecruiterID: 5, EventID: 1, Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime: start, EndTime: end, Medium: domain.MediumVideo, Status: status,
	})
}

func request(slotID uuid.UUID, start, end types.TimeString) *Request {
	return &Request{
		SlotID: slotID, RecruiterID: 5, Date: "2025-03-14",
		StartTime: start, EndTime: end, Medium: "phone",
		Description: "Tech screen", ContactPhone: ptr.Ptr("+10000000000"),
	}
}

func TestUseCase_Execute_UpdatesSlot(t *testing.T) {
	f := newFixture(t)
	slot := f.slot("10:00", "10:30", domain.SlotStatusAvailable)

	updated, err := f.uc.Execute(context.Background(), request(slot.ID, "10:15", "11:00"))
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("10:15"), updated.StartTime)
	assert.Equal(t, 45, updated.DurationMinutes)
	assert.Equal(t, domain.MediumPhone, updated.Medium)

	stored := f.store.Slot(slot.ID)
	assert.Equal(t, "Tech screen", stored.Description)
	assert.Equal(t, "+10000000000", *stored.ContactPhone)
	assert.Equal(t, domain.SlotStatusAvailable, stored.Status)
}

func TestUseCase_Execute_IgnoresItself(t *testing.T) {
	f := newFixture(t)
	slot := f.slot("10:00", "11:00", domain.SlotStatusAvailable)

	_, err := f.uc.Execute(context.Background(), request(slot.ID, "10:30", "11:30"))
	assert.NoError(t, err)
}

func TestUseCase_Execute_Conflict(t *testing.T) {
	f := newFixture(t)
	other := f.slot("11:00", "12:00", domain.SlotStatusBooked)
	slot := f.slot("10:00", "10:30", domain.SlotStatusAvailable)

	_, err := f.uc.Execute(context.Background(), request(slot.ID, "10:30", "11:15"))

	var conflict *domain.SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, other.ID, conflict.SlotID)
	assert.Equal(t, 1, f.metrics.Conflicts["slot_overlap"])
	assert.Equal(t, types.TimeString("10:00"), f.store.Slot(slot.ID).StartTime)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   domain.SlotStatus
		mutate   func(req *Request)
		expected error
	}{
		{
			name:     "booked slot",
			status:   domain.SlotStatusBooked,
			expected: domain.ErrInvalidTransition,
		},
		{
			name:     "cancelled slot",
			status:   domain.SlotStatusCancelled,
			expected: domain.ErrInvalidTransition,
		},
		{
			name:     "foreign recruiter",
			status:   domain.SlotStatusAvailable,
			mutate:   func(req *Request) { req.RecruiterID = 6 },
			expected: ErrAccessDenied,
		},
		{
			name:     "unknown slot",
			status:   domain.SlotStatusAvailable,
			mutate:   func(req *Request) { req.SlotID = uuid.New() },
			expected: ErrSlotNotFound,
		},
		{
			name:     "outside event window",
			status:   domain.SlotStatusAvailable,
			mutate:   func(req *Request) { req.Date = "2025-04-01" },
			expected: domain.ErrValidation,
		},
		{
			name:     "end before start",
			status:   domain.SlotStatusAvailable,
			mutate:   func(req *Request) { req.EndTime = "09:00" },
			expected: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			slot := f.slot("10:00", "10:30", tt.status)

			req := request(slot.ID, "14:00", "14:30")
			if tt.mutate != nil {
				tt.mutate(req)
			}

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.expected)
			assert.Equal(t, types.TimeString("10:00"), f.store.Slot(slot.ID).StartTime)
		})
	}
}

func TestUseCase_Execute_ValidationFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{RecruiterID: 5, Date: "14.03.2025", StartTime: "25:00", EndTime: "10:00", Medium: "fax"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "slotId")
	assert.Contains(t, verr.Fields, "date")
	assert.Contains(t, verr.Fields, "startTime")
	assert.Contains(t, verr.Fields, "medium")
}
