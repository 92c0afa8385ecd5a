package eventservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/jobfair-interviews/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/internal/events/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"title":"Spring Fair","interview_start":"2025-03-10","interview_end":"2025-03-20","recruiter_ids":[5,6],"is_virtual":true}`))
	})
	mux.HandleFunc("/internal/postings/3", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":3,"event_id":1,"recruiter_id":5,"title":"Backend","is_open":true,"questionnaire_schema":{"type":"object"}}`))
	})
	mux.HandleFunc("/internal/postings/500", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/internal/postings/777", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetEvent(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, time.Second, logger.Nop())

	event, err := client.GetEvent(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Spring Fair", event.Title)
	assert.True(t, event.HasRecruiter(6))
	assert.False(t, event.HasRecruiter(7))

	inside, err := event.ContainsDate(time.Date(2025, 3, 20, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, inside)

	outside, err := event.ContainsDate(time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, outside)

	_, err = client.GetEvent(context.Background(), 2)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestClient_GetPosting(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, time.Second, logger.Nop())

	posting, err := client.GetPosting(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), posting.RecruiterID)
	assert.True(t, posting.HasQuestionnaire())

	_, err = client.GetPosting(context.Background(), 4)
	assert.ErrorIs(t, err, ErrPostingNotFound)

	_, err = client.GetPosting(context.Background(), 500)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetPosting(context.Background(), 777)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, logger.Nop())

	_, err := client.GetEvent(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestEvent_ContainsDate_OpenWindow(t *testing.T) {
	event := &Event{}
	inside, err := event.ContainsDate(time.Now())
	require.NoError(t, err)
	assert.True(t, inside)

	broken := &Event{InterviewStart: "March"}
	_, err = broken.ContainsDate(time.Now())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
