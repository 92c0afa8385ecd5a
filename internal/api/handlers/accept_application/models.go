package accept_application

import (
	appModels "github.com/m04kA/jobfair-interviews/internal/service/applications/models"
	slotModels "github.com/m04kA/jobfair-interviews/internal/service/slots/models"
	acceptApplication "github.com/m04kA/jobfair-interviews/internal/usecase/accept_application"
)

// DecisionRequest HTTP request model, тело необязательно
type DecisionRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// AcceptApplicationResponse HTTP response model
type AcceptApplicationResponse struct {
	Application *appModels.ApplicationResponse `json:"application"`
	Slot        *slotModels.SlotResponse       `json:"slot,omitempty"`
	SlotChanged bool                           `json:"slotChanged"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *acceptApplication.Response, viewerID int64) *AcceptApplicationResponse {
	return &AcceptApplicationResponse{
		Application: appModels.FromDomainApplication(resp.Application, viewerID),
		Slot:        slotModels.FromDomainSlot(resp.Slot, viewerID),
		SlotChanged: resp.SlotChanged,
	}
}
