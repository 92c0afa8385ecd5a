package cancel_application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
	"github.com/m04kA/jobfair-interviews/internal/service/access"
	"github.com/m04kA/jobfair-interviews/internal/testutil"
	"github.com/m04kA/jobfair-interviews/internal/usecase/slot_lifecycle"
	"github.com/m04kA/jobfair-interviews/pkg/logger"
	"github.com/m04kA/jobfair-interviews/pkg/ptr"
)

type fixture struct {
	store   *testutil.Store
	notes   *testutil.Notifications
	metrics *testutil.Metrics
	uc      *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:   testutil.NewStore(),
		notes:   &testutil.Notifications{},
		metrics: &testutil.Metrics{},
	}

	directory := testutil.NewDirectory()
	directory.AddPosting(&eventservice.Posting{ID: 3, EventID: 1, RecruiterID: 5, IsOpen: true})

	manager := slot_lifecycle.NewManager(
		f.store.Slots(), f.store.Applications(), nil, f.notes, f.store, f.metrics, logger.Nop(),
	)
	f.uc = NewUseCase(
		f.store.Applications(),
		access.NewService(f.store.Slots(), directory, logger.Nop()),
		manager,
		f.notes,
		f.store,
		f.metrics,
		logger.Nop(),
	)
	return f
}

func (f *fixture) bookedSlot(candidateID int64) *domain.Slot {
	return f.store.PutSlot(&domain.Slot{
		RecruiterID: 5, EventID: 1, Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00", EndTime: "10:30", Medium: domain.MediumVideo,
		Status: domain.SlotStatusBooked, CandidateID: ptr.Ptr(candidateID),
		MeetingLink: ptr.Ptr("https://meet.test/x"), ProviderMeetingID: ptr.Ptr("x"),
	})
}

func (f *fixture) application(candidateID int64, slotID *uuid.UUID, status domain.ApplicationStatus) *domain.Application {
	return f.store.PutApplication(&domain.Application{
		CandidateID: candidateID, PostingID: 3, EventID: 1, SlotID: slotID, Status: status,
	})
}

func TestUseCase_Execute_ReleasesHeldSlot(t *testing.T) {
	f := newFixture(t)
	slot := f.bookedSlot(100)
	app := f.application(100, &slot.ID, domain.ApplicationStatusAccepted)

	resp, err := f.uc.Execute(context.Background(), &Request{ApplicationID: app.ID, UserID: 100})
	require.NoError(t, err)

	assert.True(t, resp.SlotReleased)
	assert.Equal(t, domain.ApplicationStatusCancelled, f.store.Application(app.ID).Status)

	stored := f.store.Slot(slot.ID)
	assert.Equal(t, domain.SlotStatusAvailable, stored.Status)
	assert.Nil(t, stored.CandidateID)
	assert.Nil(t, stored.MeetingLink)

	assert.Equal(t, 1, f.metrics.Transitions["release"])
	// кандидат отменил сам, уведомляется рекрутер
	assert.Equal(t, []string{"5:application_cancelled"}, f.notes.Kinds())
}

func TestUseCase_Execute_StaleCancelKeepsHolder(t *testing.T) {
	f := newFixture(t)
	slot := f.bookedSlot(200)
	stale := f.application(100, &slot.ID, domain.ApplicationStatusAccepted)

	resp, err := f.uc.Execute(context.Background(), &Request{ApplicationID: stale.ID, UserID: 5})
	require.NoError(t, err)

	assert.False(t, resp.SlotReleased)
	assert.Equal(t, domain.ApplicationStatusCancelled, f.store.Application(stale.ID).Status)

	stored := f.store.Slot(slot.ID)
	assert.Equal(t, domain.SlotStatusBooked, stored.Status)
	assert.Equal(t, int64(200), *stored.CandidateID)
	assert.Equal(t, 0, f.metrics.Transitions["release"])
	assert.Equal(t, []string{"100:application_cancelled"}, f.notes.Kinds())
}

func TestUseCase_Execute_OtherAcceptedKeepsSlot(t *testing.T) {
	f := newFixture(t)
	slot := f.bookedSlot(100)
	first := f.application(100, &slot.ID, domain.ApplicationStatusAccepted)
	f.store.PutApplication(&domain.Application{
		CandidateID: 100, PostingID: 4, EventID: 1, SlotID: &slot.ID, Status: domain.ApplicationStatusAccepted,
	})

	resp, err := f.uc.Execute(context.Background(), &Request{ApplicationID: first.ID, UserID: 100})
	require.NoError(t, err)

	assert.False(t, resp.SlotReleased)
	assert.Equal(t, domain.SlotStatusBooked, f.store.Slot(slot.ID).Status)
}

func TestUseCase_Execute_PendingNeverTouchesSlot(t *testing.T) {
	f := newFixture(t)
	slot := f.bookedSlot(200)
	app := f.application(100, &slot.ID, domain.ApplicationStatusPending)

	resp, err := f.uc.Execute(context.Background(), &Request{ApplicationID: app.ID, UserID: 100})
	require.NoError(t, err)

	assert.False(t, resp.SlotReleased)
	assert.Equal(t, int64(200), *f.store.Slot(slot.ID).CandidateID)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   domain.ApplicationStatus
		userID   int64
		expected error
	}{
		{"already cancelled", domain.ApplicationStatusCancelled, 100, domain.ErrInvalidTransition},
		{"rejected", domain.ApplicationStatusRejected, 5, domain.ErrInvalidTransition},
		{"stranger", domain.ApplicationStatusPending, 999, ErrAccessDenied},
		{"missing user", domain.ApplicationStatusPending, 0, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			app := f.application(100, nil, tt.status)

			_, err := f.uc.Execute(context.Background(), &Request{ApplicationID: app.ID, UserID: tt.userID})
			assert.ErrorIs(t, err, tt.expected)
			assert.Equal(t, tt.status, f.store.Application(app.ID).Status)
			assert.Empty(t, f.notes.Sent())
		})
	}
}

func TestUseCase_Execute_RollbackOnFailure(t *testing.T) {
	f := newFixture(t)
	slot := f.bookedSlot(100)
	app := f.application(100, &slot.ID, domain.ApplicationStatusAccepted)
	f.store.FailOn("Applications.UpdateStatus", nil)

	_, err := f.uc.Execute(context.Background(), &Request{ApplicationID: app.ID, UserID: 100})
	assert.ErrorIs(t, err, ErrInternal)

	assert.Equal(t, domain.SlotStatusBooked, f.store.Slot(slot.ID).Status)
	assert.Equal(t, domain.ApplicationStatusAccepted, f.store.Application(app.ID).Status)
}
