package cancel_application

import (
	appModels "github.com/m04kA/jobfair-interviews/internal/service/applications/models"
	cancelApplication "github.com/m04kA/jobfair-interviews/internal/usecase/cancel_application"
)

// CancelApplicationResponse HTTP response model
type CancelApplicationResponse struct {
	Application  *appModels.ApplicationResponse `json:"application"`
	SlotReleased bool                           `json:"slotReleased"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelApplication.Response, viewerID int64) *CancelApplicationResponse {
	return &CancelApplicationResponse{
		Application:  appModels.FromDomainApplication(resp.Application, viewerID),
		SlotReleased: resp.SlotReleased,
	}
}
