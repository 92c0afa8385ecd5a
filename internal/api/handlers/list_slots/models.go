package list_slots

import (
	"net/http"

	"github.com/m04kA/jobfair-interviews/internal/api/handlers"
	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/internal/service/slots/models"
)

// parseQuery собирает фильтр из query параметров
// Ошибки разбора возвращаются как ValidationError по полям
func parseQuery(r *http.Request, viewerID int64) (*models.ListSlotsRequest, error) {
	verr := domain.NewValidationError()
	req := &models.ListSlotsRequest{
		ViewerID: viewerID,
		Status:   handlers.QueryString(r, "status"),
	}

	var err error
	if req.EventID, err = handlers.QueryInt64(r, "eventId"); err != nil {
		verr.Add("eventId", "must be a positive integer")
	}
	if req.RecruiterID, err = handlers.QueryInt64(r, "recruiterId"); err != nil {
		verr.Add("recruiterId", "must be a positive integer")
	}
	if req.Date, err = handlers.QueryDate(r, "date"); err != nil {
		verr.Add("date", "must be a date in YYYY-MM-DD format")
	}
	if req.AvailableOnly, err = handlers.QueryBool(r, "available"); err != nil {
		verr.Add("available", "must be true or false")
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return req, nil
}
