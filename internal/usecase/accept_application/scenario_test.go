package accept_application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
	"github.com/m04kA/jobfair-interviews/internal/service/access"
	"github.com/m04kA/jobfair-interviews/internal/service/conflicts"
	"github.com/m04kA/jobfair-interviews/internal/testutil"
	"github.com/m04kA/jobfair-interviews/internal/usecase/accept_application"
	"github.com/m04kA/jobfair-interviews/internal/usecase/cancel_application"
	"github.com/m04kA/jobfair-interviews/internal/usecase/create_slots"
	"github.com/m04kA/jobfair-interviews/internal/usecase/slot_lifecycle"
	"github.com/m04kA/jobfair-interviews/internal/usecase/submit_application"
	"github.com/m04kA/jobfair-interviews/pkg/logger"
)

// Рекрутер R=5 участвует в двух мероприятиях, кандидаты C1=100 и C2=200
func TestBookingScenario(t *testing.T) {
	ctx := context.Background()
	log := logger.Nop()

	store := testutil.NewStore()
	provider := &testutil.MeetingProvider{}
	notes := &testutil.Notifications{}
	metrics := &testutil.Metrics{}

	directory := testutil.NewDirectory()
	directory.AddEvent(&eventservice.Event{ID: 1, InterviewStart: "2025-03-10", InterviewEnd: "2025-03-20", RecruiterIDs: []int64{5}})
	directory.AddEvent(&eventservice.Event{ID: 2, InterviewStart: "2025-03-10", InterviewEnd: "2025-03-20", RecruiterIDs: []int64{5}})
	directory.AddPosting(&eventservice.Posting{ID: 3, EventID: 1, RecruiterID: 5, Title: "Backend", IsOpen: true})

	accessSvc := access.NewService(store.Slots(), directory, log)
	manager := slot_lifecycle.NewManager(store.Slots(), store.Applications(), provider, notes, store, metrics, log)

	createSlots := create_slots.NewUseCase(store.Slots(), conflicts.NewService(store.Slots(), log), directory,
		store, metrics, domain.DefaultSlotRules(), log)
	submit := submit_application.NewUseCase(store.Applications(), store.Slots(), directory, notes, log)
	acceptApp := accept_application.NewUseCase(store.Applications(), accessSvc, manager, notes, store, metrics, log)
	cancelApp := cancel_application.NewUseCase(store.Applications(), accessSvc, manager, notes, store, metrics, log)

	// Слот A в первом мероприятии
	created, err := createSlots.Execute(ctx, &create_slots.Request{
		RecruiterID: 5, EventID: 1,
		Slots: []create_slots.SlotInput{{Date: "2025-03-14", StartTime: "10:00", EndTime: "10:30", Medium: "video"}},
	})
	require.NoError(t, err)
	slotA := created.Slots[0]

	// Слот B во втором мероприятии пересекается с A
	_, err = createSlots.Execute(ctx, &create_slots.Request{
		RecruiterID: 5, EventID: 2,
		Slots: []create_slots.SlotInput{{Date: "2025-03-14", StartTime: "10:15", EndTime: "10:45", Medium: "phone"}},
	})
	var overlap *domain.SlotConflictError
	require.ErrorAs(t, err, &overlap)
	assert.Equal(t, slotA.ID, overlap.SlotID)

	// C1 и C2 подают заявки на A, слот остаётся свободным
	app1, err := submit.Execute(ctx, &submit_application.Request{CandidateID: 100, EventID: 1, PostingID: 3, SlotID: &slotA.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusPending, app1.Status)

	app2, err := submit.Execute(ctx, &submit_application.Request{CandidateID: 200, EventID: 1, PostingID: 3, SlotID: &slotA.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusAvailable, store.Slot(slotA.ID).Status)

	// Рекрутер принимает заявку C1
	accepted, err := acceptApp.Execute(ctx, &accept_application.Request{ApplicationID: app1.ID, RecruiterID: 5})
	require.NoError(t, err)
	assert.True(t, accepted.SlotChanged)

	slot := store.Slot(slotA.ID)
	assert.Equal(t, domain.SlotStatusBooked, slot.Status)
	assert.Equal(t, int64(100), *slot.CandidateID)
	assert.True(t, slot.HasMeeting())

	// Заявку C2 на тот же слот принять нельзя
	_, err = acceptApp.Execute(ctx, &accept_application.Request{ApplicationID: app2.ID, RecruiterID: 5})
	var booked *domain.BookingConflictError
	require.ErrorAs(t, err, &booked)
	assert.Equal(t, slotA.ID, booked.SlotID)
	assert.Equal(t, domain.ApplicationStatusPending, store.Application(app2.ID).Status)

	// Занятый слот нельзя выбрать в новой заявке
	_, err = submit.Execute(ctx, &submit_application.Request{CandidateID: 300, EventID: 1, PostingID: 3, SlotID: &slotA.ID})
	assert.ErrorIs(t, err, submit_application.ErrSlotUnavailable)

	// Рекрутер отменяет заявку C1, слот освобождается
	cancelled, err := cancelApp.Execute(ctx, &cancel_application.Request{ApplicationID: app1.ID, UserID: 5})
	require.NoError(t, err)
	assert.True(t, cancelled.SlotReleased)

	slot = store.Slot(slotA.ID)
	assert.Equal(t, domain.SlotStatusAvailable, slot.Status)
	assert.Nil(t, slot.CandidateID)

	// Теперь заявку C2 можно принять
	accepted, err = acceptApp.Execute(ctx, &accept_application.Request{ApplicationID: app2.ID, RecruiterID: 5})
	require.NoError(t, err)
	assert.True(t, accepted.SlotChanged)
	assert.Equal(t, int64(200), *store.Slot(slotA.ID).CandidateID)
	assert.Equal(t, 2, provider.Calls())
}
