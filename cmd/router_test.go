package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
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

const (
	recruiterID = int64(5)
	candidateID = int64(42)
)

type apiFixture struct {
	store    *testutil.Store
	provider *testutil.MeetingProvider
	notes    *testutil.Notifications
	router   http.Handler
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	directory := testutil.NewDirectory()
	directory.AddEvent(&eventservice.Event{
		ID: 1, Title: "Spring fair", InterviewStart: "2025-03-10", InterviewEnd: "2025-03-20",
		RecruiterIDs: []int64{recruiterID}, IsVirtual: true,
	})
	directory.AddPosting(&eventservice.Posting{ID: 3, EventID: 1, RecruiterID: recruiterID, Title: "Backend", IsOpen: true})

	f := &apiFixture{
		store:    testutil.NewStore(),
		provider: &testutil.MeetingProvider{},
		notes:    &testutil.Notifications{},
	}
	f.router = newRouter(&dependencies{
		slots:        f.store.Slots(),
		applications: f.store.Applications(),
		events:       directory,
		provisioner:  f.provider,
		notifier:     f.notes,
		txManager:    f.store,
		metrics:      &testutil.Metrics{},
		rules:        domain.DefaultSlotRules(),
		logger:       logger.Nop(),
	}, routerOptions{})
	return f
}

func (f *apiFixture) do(t *testing.T, method, path string, userID int64, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	if userID > 0 {
		req.Header.Set("X-User-ID", fmt.Sprint(userID))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestRouter_BookingFlow(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/events/1/slots", recruiterID, map[string]interface{}{
		"slots": []map[string]string{
			{"date": "2025-03-14", "startTime": "10:00", "endTime": "10:30", "medium": "video"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Slots []struct {
			ID uuid.UUID `json:"id"`
		} `json:"slots"`
	}
	decode(t, rec, &created)
	require.Len(t, created.Slots, 1)
	slotID := created.Slots[0].ID

	rec = f.do(t, http.MethodPost, "/api/v1/applications", candidateID, map[string]interface{}{
		"eventId": 1, "postingId": 3, "slotId": slotID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var app struct {
		ID     uuid.UUID `json:"id"`
		Status string    `json:"status"`
	}
	decode(t, rec, &app)
	assert.Equal(t, "pending", app.Status)

	rec = f.do(t, http.MethodPatch, "/api/v1/applications/"+app.ID.String()+"/accept", recruiterID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var accepted struct {
		Slot struct {
			Status      string  `json:"status"`
			MeetingLink *string `json:"meetingLink"`
		} `json:"slot"`
		SlotChanged bool `json:"slotChanged"`
	}
	decode(t, rec, &accepted)
	assert.Equal(t, "booked", accepted.Slot.Status)
	require.NotNil(t, accepted.Slot.MeetingLink)
	assert.True(t, accepted.SlotChanged)

	// посторонний пользователь не видит кандидата и ссылку
	rec = f.do(t, http.MethodGet, "/api/v1/slots/"+slotID.String(), 99, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var public map[string]interface{}
	decode(t, rec, &public)
	assert.NotContains(t, public, "candidateId")
	assert.NotContains(t, public, "meetingLink")

	rec = f.do(t, http.MethodGet, "/api/v1/slots/stats?eventId=1", recruiterID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		Total  int `json:"total"`
		Booked int `json:"booked"`
	}
	decode(t, rec, &stats)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Booked)

	rec = f.do(t, http.MethodPatch, "/api/v1/applications/"+app.ID.String()+"/cancel", candidateID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cancelled struct {
		SlotReleased bool `json:"slotReleased"`
	}
	decode(t, rec, &cancelled)
	assert.True(t, cancelled.SlotReleased)
	assert.Equal(t, domain.SlotStatusAvailable, f.store.Slot(slotID).Status)

	rec = f.do(t, http.MethodGet, "/api/v1/slots?eventId=1&available=true", candidateID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Slots []struct {
			ID uuid.UUID `json:"id"`
		} `json:"slots"`
	}
	decode(t, rec, &list)
	require.Len(t, list.Slots, 1)
	assert.Equal(t, slotID, list.Slots[0].ID)
}

func TestRouter_CrossEventOverlap(t *testing.T) {
	f := newAPIFixture(t)
	existing := f.store.PutSlot(&domain.Slot{
		RecruiterID: recruiterID, EventID: 2, Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00", EndTime: "11:00", Medium: domain.MediumPhone, Status: domain.SlotStatusAvailable,
	})

	rec := f.do(t, http.MethodPost, "/api/v1/events/1/slots", recruiterID, map[string]interface{}{
		"slots": []map[string]string{
			{"date": "2025-03-14", "startTime": "10:30", "endTime": "11:30", "medium": "video"},
		},
	})
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	var body struct {
		Kind     string `json:"kind"`
		Conflict struct {
			SlotID  uuid.UUID `json:"slotId"`
			EventID int64     `json:"eventId"`
		} `json:"conflict"`
	}
	decode(t, rec, &body)
	assert.Equal(t, domain.KindConflict, body.Kind)
	assert.Equal(t, existing.ID, body.Conflict.SlotID)
	assert.Equal(t, int64(2), body.Conflict.EventID)
	assert.Equal(t, 1, f.store.SlotCount())
}

func TestRouter_Infrastructure(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/health", 0, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/slots", 0, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/slots/not-a-uuid", recruiterID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/applications/"+uuid.NewString(), recruiterID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/v1/slots/"+uuid.NewString(), recruiterID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
