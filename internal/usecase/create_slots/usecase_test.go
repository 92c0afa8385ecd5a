package create_slots

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
	"github.com/m04kA/jobfair-interviews/internal/service/conflicts"
	"github.com/m04kA/jobfair-interviews/internal/testutil"
	"github.com/m04kA/jobfair-interviews/pkg/logger"
	"github.com/m04kA/jobfair-interviews/pkg/types"
)

type fixture struct {
	store     *testutil.Store
	directory *testutil.Directory
	metrics   *testutil.Metrics
	uc        *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewStore()
	directory := testutil.NewDirectory()
	directory.AddEvent(&eventservice.Event{
		ID: 1, Title: "Spring Fair", InterviewStart: "2025-03-10", InterviewEnd: "2025-03-20",
		RecruiterIDs: []int64{5}, IsVirtual: true,
	})
	directory.AddEvent(&eventservice.Event{
		ID: 2, Title: "Tech Week", InterviewStart: "2025-03-01", InterviewEnd: "2025-03-31",
		RecruiterIDs: []int64{5, 6},
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

	return &fixture{store: store, directory: directory, metrics: metrics, uc: uc}
}

func slotInput(start, end, medium string) SlotInput {
	return SlotInput{Date: "2025-03-14", StartTime: types.TimeString(start), EndTime: types.TimeString(end), Medium: medium}
}

func TestUseCase_Execute_CreatesSlots(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		RecruiterID: 5,
		EventID:     1,
		Slots: []SlotInput{
			slotInput("10:00", "10:30", "video"),
			slotInput("10:30", "11:00", "phone"),
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)

	first := resp.Slots[0]
	assert.Equal(t, domain.SlotStatusAvailable, first.Status)
	assert.Equal(t, 30, first.DurationMinutes)
	assert.Equal(t, "2025-03-14", first.Date.Format(domain.DateFormat))
	assert.Equal(t, 2, f.store.SlotCount())
	assert.Equal(t, 2, f.metrics.SlotsCreated)
}

func TestUseCase_Execute_CrossEventConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.uc.Execute(ctx, &Request{RecruiterID: 5, EventID: 1, Slots: []SlotInput{slotInput("10:00", "10:30", "video")}})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{RecruiterID: 5, EventID: 2, Slots: []SlotInput{slotInput("10:15", "10:45", "phone")}})

	var conflict *domain.SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, a.Slots[0].ID, conflict.SlotID)
	assert.Equal(t, int64(1), conflict.EventID)
	assert.Equal(t, 1, f.store.SlotCount())
	assert.Equal(t, 1, f.metrics.Conflicts["slot_overlap"])
}

func TestUseCase_Execute_BatchIsAtomic(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		RecruiterID: 5,
		EventID:     1,
		Slots: []SlotInput{
			slotInput("09:00", "09:30", "video"),
			slotInput("10:00", "11:00", "video"),
			slotInput("10:30", "11:30", "phone"),
		},
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 0, f.store.SlotCount())
	assert.Equal(t, 0, f.metrics.SlotsCreated)
}

func TestUseCase_Execute_ConcurrentOverlaps(t *testing.T) {
	f := newFixture(t)

	const workers = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		succeeded  int
		conflicted int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), &Request{
				RecruiterID: 5, EventID: 2, Slots: []SlotInput{slotInput("14:00", "15:00", "video")},
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if assert.ErrorIs(t, err, domain.ErrConflict) {
				conflicted++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicted)
	assert.Equal(t, 1, f.store.SlotCount())
}

func TestUseCase_Execute_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		RecruiterID: 5,
		EventID:     1,
		Slots: []SlotInput{
			{Date: "2025-03-14", StartTime: "10:30", EndTime: "10:00", Medium: "video"},
			{Date: "14/03/2025", StartTime: "25:00", EndTime: "10:00", Medium: "fax"},
			{Date: "2025-03-14", StartTime: "10:00", EndTime: "10:05", Medium: "phone"},
		},
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be after startTime", verr.Fields["slots[0].endTime"])
	assert.Contains(t, verr.Fields, "slots[1].date")
	assert.Contains(t, verr.Fields, "slots[1].medium")
	assert.Equal(t, "must be in HH:MM format", verr.Fields["slots[1].startTime"])
	assert.Contains(t, verr.Fields["slots[2].endTime"], "between 10 and 240 minutes")

	_, err = f.uc.Execute(context.Background(), &Request{RecruiterID: 5, EventID: 1})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "slots")
}

func TestUseCase_Execute_EventChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{RecruiterID: 5, EventID: 9, Slots: []SlotInput{slotInput("10:00", "10:30", "video")}})
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = f.uc.Execute(ctx, &Request{RecruiterID: 6, EventID: 1, Slots: []SlotInput{slotInput("10:00", "10:30", "video")}})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	outside := slotInput("10:00", "10:30", "video")
	outside.Date = "2025-03-25"
	_, err = f.uc.Execute(ctx, &Request{RecruiterID: 5, EventID: 1, Slots: []SlotInput{outside}})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["slots[0].date"], "2025-03-10..2025-03-20")

	f.directory.Err = eventservice.ErrInternal
	_, err = f.uc.Execute(ctx, &Request{RecruiterID: 5, EventID: 1, Slots: []SlotInput{slotInput("10:00", "10:30", "video")}})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0, f.store.SlotCount())
}
