package accept_application

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/jobfair-interviews/internal/api/handlers"
	"github.com/m04kA/jobfair-interviews/internal/api/middleware"
	"github.com/m04kA/jobfair-interviews/internal/domain"
	acceptApplication "github.com/m04kA/jobfair-interviews/internal/usecase/accept_application"
	"github.com/m04kA/jobfair-interviews/pkg/logger"
)

type stubUseCase struct {
	got  *acceptApplication.Request
	resp *acceptApplication.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *acceptApplication.Request) (*acceptApplication.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(t *testing.T, uc AcceptApplicationUseCase, appID, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/applications/{applicationId}/accept", NewHandler(uc, logger.Nop()).Handle).
		Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/applications/"+appID+"/accept", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 5))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Accepted(t *testing.T) {
	slotID := uuid.New()
	app := &domain.Application{
		ID: uuid.New(), CandidateID: 42, PostingID: 3, EventID: 1, SlotID: &slotID,
		Status: domain.ApplicationStatusAccepted,
	}
	link := "https://meet.test/" + slotID.String()
	candidateID := int64(42)
	slot := &domain.Slot{
		ID: slotID, RecruiterID: 5, EventID: 1, Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00", EndTime: "10:30", Medium: domain.MediumVideo,
		Status: domain.SlotStatusBooked, CandidateID: &candidateID, MeetingLink: &link,
	}
	uc := &stubUseCase{resp: &acceptApplication.Response{Application: app, Slot: slot, SlotChanged: true}}

	// тело необязательно
	rec := serve(t, uc, app.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, app.ID, uc.got.ApplicationID)
	assert.Equal(t, int64(5), uc.got.RecruiterID)
	assert.Nil(t, uc.got.Notes)

	var body struct {
		Application struct {
			Status string `json:"status"`
		} `json:"application"`
		Slot struct {
			Status      string  `json:"status"`
			MeetingLink *string `json:"meetingLink"`
		} `json:"slot"`
		SlotChanged bool `json:"slotChanged"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "accepted", body.Application.Status)
	assert.Equal(t, "booked", body.Slot.Status)
	require.NotNil(t, body.Slot.MeetingLink)
	assert.Equal(t, link, *body.Slot.MeetingLink)
	assert.True(t, body.SlotChanged)

	rec = serve(t, uc, app.ID.String(), `{"notes":"strong candidate"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got.Notes)
	assert.Equal(t, "strong candidate", *uc.got.Notes)
}

func TestHandler_Errors(t *testing.T) {
	slotID := uuid.New()
	appID := uuid.New()

	tests := []struct {
		name   string
		appID  string
		body   string
		err    error
		status int
		kind   string
	}{
		{name: "bad id", appID: "nope", status: http.StatusBadRequest, kind: domain.KindValidation},
		{name: "bad body", appID: appID.String(), body: `{"note":1}`, status: http.StatusBadRequest, kind: domain.KindValidation},
		{name: "not found", appID: appID.String(), err: acceptApplication.ErrApplicationNotFound, status: http.StatusNotFound, kind: domain.KindNotFound},
		{name: "foreign recruiter", appID: appID.String(), err: acceptApplication.ErrAccessDenied, status: http.StatusForbidden, kind: domain.KindAccessDenied},
		{
			name: "slot taken", appID: appID.String(),
			err:    fmt.Errorf("slot_lifecycle: %w", &domain.BookingConflictError{SlotID: slotID}),
			status: http.StatusConflict, kind: domain.KindConflict,
		},
		{
			name: "already rejected", appID: appID.String(),
			err:    domain.NewApplicationTransitionError(appID, domain.ApplicationStatusRejected, domain.ApplicationStatusAccepted),
			status: http.StatusUnprocessableEntity, kind: domain.KindInvalidTransition,
		},
		{name: "internal", appID: appID.String(), err: acceptApplication.ErrInternal, status: http.StatusInternalServerError, kind: domain.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubUseCase{err: tt.err}, tt.appID, tt.body)
			require.Equal(t, tt.status, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Kind)

			if tt.status == http.StatusConflict {
				require.NotNil(t, body.Conflict)
				assert.Equal(t, slotID, body.Conflict.SlotID)
			}
		})
	}
}
