package submit_application

import (
	"errors"
	"net/http"

	"github.com/m04kA/jobfair-interviews/internal/api/handlers"
	"github.com/m04kA/jobfair-interviews/internal/api/middleware"
	"github.com/m04kA/jobfair-interviews/internal/domain"
	appModels "github.com/m04kA/jobfair-interviews/internal/service/applications/models"
	submitApplication "github.com/m04kA/jobfair-interviews/internal/usecase/submit_application"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgPostingNotFound    = "вакансия не найдена"
	msgSlotNotFound       = "выбранный слот не найден"
	msgPostingClosed      = "вакансия больше не принимает заявки"
	msgAlreadyApplied     = "заявка на эту вакансию уже подана"
	msgSlotUnavailable    = "выбранный слот недоступен"
)

type Handler struct {
	useCase SubmitApplicationUseCase
	logger  Logger
}

func NewHandler(useCase SubmitApplicationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/applications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req SubmitApplicationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /applications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	app, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(candidateID))
	if err != nil {
		switch {
		case errors.Is(err, submitApplication.ErrPostingNotFound):
			h.logger.Warn("POST /applications - Posting not found: posting_id=%d", req.PostingID)
			handlers.RespondNotFound(w, msgPostingNotFound)

		case errors.Is(err, submitApplication.ErrSlotNotFound):
			h.logger.Warn("POST /applications - Slot not found: candidate_id=%d", candidateID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, submitApplication.ErrPostingClosed):
			h.logger.Warn("POST /applications - Posting closed: posting_id=%d", req.PostingID)
			handlers.RespondError(w, http.StatusConflict, msgPostingClosed)

		case errors.Is(err, submitApplication.ErrAlreadyApplied):
			h.logger.Warn("POST /applications - Already applied: candidate_id=%d, posting_id=%d", candidateID, req.PostingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyApplied)

		case errors.Is(err, submitApplication.ErrSlotUnavailable):
			h.logger.Warn("POST /applications - Slot unavailable: candidate_id=%d", candidateID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /applications - Validation failed: %v", err)
			handlers.RespondDomainError(w, err, "")

		default:
			h.logger.Error("POST /applications - Failed to submit application: candidate_id=%d, posting_id=%d, error=%v",
				candidateID, req.PostingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /applications - Application submitted: application_id=%s, candidate_id=%d, posting_id=%d",
		app.ID, candidateID, req.PostingID)
	handlers.RespondJSON(w, http.StatusCreated, appModels.FromDomainApplication(app, candidateID))
}
