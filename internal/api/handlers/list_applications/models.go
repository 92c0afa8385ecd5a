package list_applications

import (
	"net/http"

	"github.com/m04kA/jobfair-interviews/internal/api/handlers"
	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/service/applications/models"
)

func parseQuery(r *http.Request, viewerID int64) (*models.ListApplicationsRequest, error) {
	verr := domain.NewValidationError()
	req := &models.ListApplicationsRequest{
		ViewerID: viewerID,
		Status:   handlers.QueryString(r, "status"),
	}

	var err error
	if req.CandidateID, err = handlers.QueryInt64(r, "candidateId"); err != nil {
		verr.Add("candidateId", "must be a positive integer")
	}
	if req.PostingID, err = handlers.QueryInt64(r, "postingId"); err != nil {
		verr.Add("postingId", "must be a positive integer")
	}
	if req.EventID, err = handlers.QueryInt64(r, "eventId"); err != nil {
		verr.Add("eventId", "must be a positive integer")
	}
	if req.SlotID, err = handlers.QueryUUID(r, "slotId"); err != nil {
		verr.Add("slotId", "must be a UUID")
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return req, nil
}
