package submit_application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
	"github.com/m04kA/jobfair-interviews/internal/testutil"
	"github.com/m04kA/jobfair-interviews/pkg/logger"
)

const questionnaire = `{
	"type": "object",
	"required": ["experience"],
	"properties": {
		"experience": {"type": "integer", "minimum": 0},
		"remote": {"type": "boolean"}
	}
}`

type fixture struct {
	store     *testutil.Store
	directory *testutil.Directory
	notes     *testutil.Notifications
	uc        *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:     testutil.NewStore(),
		directory: testutil.NewDirectory(),
		notes:     &testutil.Notifications{},
	}
	f.directory.AddPosting(&eventservice.Posting{ID: 3, EventID: 1, RecruiterID: 5, Title: "Backend", IsOpen: true})
	f.directory.AddPosting(&eventservice.Posting{
		ID: 4, EventID: 1, RecruiterID: 5, Title: "Data", IsOpen: true,
		QuestionnaireSchema: json.RawMessage(questionnaire),
	})
	f.directory.AddPosting(&eventservice.Posting{ID: 8, EventID: 1, RecruiterID: 5, Title: "Closed"})

	f.uc = NewUseCase(f.store.Applications(), f.store.Slots(), f.directory, f.notes, logger.Nop())
	return f
}

func (f *fixture) slot(eventID int64, status domain.SlotStatus) *domain.Slot {
	return f.store.PutSlot(&domain.Slot{
		RecruiterID: 5, EventID: eventID, Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00", EndTime: "10:30", Medium: domain.MediumVideo, Status: status,
	})
}

func TestUseCase_Execute_CreatesPending(t *testing.T) {
	f := newFixture(t)
	slot := f.slot(1, domain.SlotStatusAvailable)

	app, err := f.uc.Execute(context.Background(), &Request{
		CandidateID: 100, EventID: 1, PostingID: 3, SlotID: &slot.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ApplicationStatusPending, app.Status)
	assert.Equal(t, slot.ID, *app.SlotID)
	assert.NotNil(t, f.store.Application(app.ID))

	// слот не резервируется при подаче
	assert.Equal(t, domain.SlotStatusAvailable, f.store.Slot(slot.ID).Status)
	assert.Equal(t, []string{"5:application_submitted"}, f.notes.Kinds())
}

func TestUseCase_Execute_Questionnaire(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{
		CandidateID: 100, EventID: 1, PostingID: 4, Answers: json.RawMessage(`{"experience": "many"}`),
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "answers.experience")

	_, err = f.uc.Execute(ctx, &Request{CandidateID: 100, EventID: 1, PostingID: 4})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "answers")

	app, err := f.uc.Execute(ctx, &Request{
		CandidateID: 100, EventID: 1, PostingID: 4, Answers: json.RawMessage(`{"experience": 3, "remote": true}`),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"experience": 3, "remote": true}`, string(app.Answers))
}

func TestUseCase_Execute_Duplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{CandidateID: 100, EventID: 1, PostingID: 3})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{CandidateID: 100, EventID: 1, PostingID: 3})
	assert.ErrorIs(t, err, ErrAlreadyApplied)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	missing := uuid.New()

	tests := []struct {
		name     string
		build    func(f *fixture) *Request
		expected error
	}{
		{
			name:     "missing ids",
			build:    func(f *fixture) *Request { return &Request{} },
			expected: domain.ErrValidation,
		},
		{
			name: "broken answers",
			build: func(f *fixture) *Request {
				return &Request{CandidateID: 100, EventID: 1, PostingID: 3, Answers: json.RawMessage(`{`)}
			},
			expected: domain.ErrValidation,
		},
		{
			name:     "unknown posting",
			build:    func(f *fixture) *Request { return &Request{CandidateID: 100, EventID: 1, PostingID: 99} },
			expected: ErrPostingNotFound,
		},
		{
			name:     "posting of another event",
			build:    func(f *fixture) *Request { return &Request{CandidateID: 100, EventID: 2, PostingID: 3} },
			expected: domain.ErrValidation,
		},
		{
			name:     "closed posting",
			build:    func(f *fixture) *Request { return &Request{CandidateID: 100, EventID: 1, PostingID: 8} },
			expected: ErrPostingClosed,
		},
		{
			name: "unknown slot",
			build: func(f *fixture) *Request {
				return &Request{CandidateID: 100, EventID: 1, PostingID: 3, SlotID: &missing}
			},
			expected: ErrSlotNotFound,
		},
		{
			name: "slot of another event",
			build: func(f *fixture) *Request {
				slot := f.slot(2, domain.SlotStatusAvailable)
				return &Request{CandidateID: 100, EventID: 1, PostingID: 3, SlotID: &slot.ID}
			},
			expected: domain.ErrValidation,
		},
		{
			name: "slot of another recruiter",
			build: func(f *fixture) *Request {
				slot := f.store.PutSlot(&domain.Slot{
					RecruiterID: 20, EventID: 1, Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
					StartTime: "10:00", EndTime: "10:30", Medium: domain.MediumVideo, Status: domain.SlotStatusAvailable,
				})
				return &Request{CandidateID: 100, EventID: 1, PostingID: 3, SlotID: &slot.ID}
			},
			expected: domain.ErrValidation,
		},
		{
			name: "booked slot",
			build: func(f *fixture) *Request {
				slot := f.slot(1, domain.SlotStatusBooked)
				return &Request{CandidateID: 100, EventID: 1, PostingID: 3, SlotID: &slot.ID}
			},
			expected: ErrSlotUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.uc.Execute(context.Background(), tt.build(f))
			assert.ErrorIs(t, err, tt.expected)
			assert.Empty(t, f.notes.Sent())
		})
	}
}

func TestUseCase_Execute_DirectoryFailure(t *testing.T) {
	f := newFixture(t)
	f.directory.Err = assert.AnError

	_, err := f.uc.Execute(context.Background(), &Request{CandidateID: 100, EventID: 1, PostingID: 3})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_Execute_SlotOfAnotherRecruiter(t *testing.T) {
	f := newFixture(t)
	foreign := f.store.PutSlot(&domain.Slot{
		RecruiterID: 20, EventID: 1, Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime: "11:00", EndTime: "11:30", Medium: domain.MediumPhone, Status: domain.SlotStatusAvailable,
	})

	_, err := f.uc.Execute(context.Background(), &Request{
		CandidateID: 100, EventID: 1, PostingID: 3, SlotID: &foreign.ID,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "slotId")

	// заявка не создана, повторная подача со своим слотом проходит
	own := f.slot(1, domain.SlotStatusAvailable)
	app, err := f.uc.Execute(context.Background(), &Request{
		CandidateID: 100, EventID: 1, PostingID: 3, SlotID: &own.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, own.ID, *app.SlotID)
}
