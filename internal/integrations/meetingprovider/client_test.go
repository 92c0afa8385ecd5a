package meetingprovider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateMeeting(t *testing.T) {
	slotID := uuid.New()

	var gotKey, gotAuth string
	var gotReq MeetingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/meetings", r.URL.Path)
		gotKey = r.Header.Get(IdempotencyHeader)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"meeting_link":"https://meet.example/x1","provider_meeting_id":"x1"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", time.Second)

	meeting, err := client.CreateMeeting(context.Background(), MeetingRequest{
		SlotID:      slotID,
		RecruiterID: 1,
		CandidateID: 2,
		Date:        "2025-03-14",
		StartTime:   "10:00",
		EndTime:     "10:30",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://meet.example/x1", meeting.Link)
	assert.Equal(t, "x1", meeting.ProviderMeetingID)
	assert.Equal(t, slotID.String()+":2", gotKey)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, int64(2), gotReq.CandidateID)
}

func TestClient_CreateMeeting_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected error
	}{
		{"server error", http.StatusBadGateway, "", ErrUnavailable},
		{"rate limited", http.StatusTooManyRequests, "", ErrUnavailable},
		{"bad request", http.StatusBadRequest, `{"message":"bad"}`, ErrInvalidResponse},
		{"broken body", http.StatusOK, `{`, ErrInvalidResponse},
		{"empty link", http.StatusOK, `{"provider_meeting_id":"x"}`, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "", time.Second)
			_, err := client.CreateMeeting(context.Background(), MeetingRequest{SlotID: uuid.New()})
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestClient_CreateMeeting_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 50*time.Millisecond)
	_, err := client.CreateMeeting(context.Background(), MeetingRequest{SlotID: uuid.New()})
	assert.ErrorIs(t, err, ErrUnavailable)
}
