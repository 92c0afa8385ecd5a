package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
)

// Request модели

// ListApplicationsRequest запрос на получение заявок
// Хотя бы один фильтр обязателен
type ListApplicationsRequest struct {
	ViewerID    int64      `json:"viewerId"`
	CandidateID *int64     `json:"candidateId,omitempty"`
	PostingID   *int64     `json:"postingId,omitempty"`
	EventID     *int64     `json:"eventId,omitempty"`
	SlotID      *uuid.UUID `json:"slotId,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

// HasFilter returns true if at least one filter is set
func (r *ListApplicationsRequest) HasFilter() bool {
	return r.CandidateID != nil || r.PostingID != nil || r.EventID != nil || r.SlotID != nil
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListApplicationsRequest) ToDomainFilter() (domain.ApplicationFilter, error) {
	filter := domain.ApplicationFilter{
		CandidateID: r.CandidateID,
		PostingID:   r.PostingID,
		EventID:     r.EventID,
		SlotID:      r.SlotID,
	}

	if r.Status != nil {
		status, err := ToDomainApplicationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest административное обновление статуса и заметок
type UpdateStatusRequest struct {
	UserID int64   `json:"userId"`
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// Response модели

// ApplicationResponse ответ с данными заявки
type ApplicationResponse struct {
	ID             uuid.UUID       `json:"id"`
	CandidateID    int64           `json:"candidateId"`
	PostingID      int64           `json:"postingId"`
	EventID        int64           `json:"eventId"`
	SlotID         *uuid.UUID      `json:"slotId,omitempty"`
	Answers        json.RawMessage `json:"answers,omitempty"`
	Status         string          `json:"status"`
	RecruiterNotes *string         `json:"recruiterNotes,omitempty"` // только для рекрутера
	DecidedAt      *time.Time      `json:"decidedAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ApplicationListResponse ответ со списком заявок
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}

// Методы конвертации

// FromDomainApplication конвертирует domain модель в DTO
// Заметки рекрутера показываются всем, кроме кандидата
func FromDomainApplication(a *domain.Application, viewerID int64) *ApplicationResponse {
	if a == nil {
		return nil
	}

	resp := &ApplicationResponse{
		ID:          a.ID,
		CandidateID: a.CandidateID,
		PostingID:   a.PostingID,
		EventID:     a.EventID,
		SlotID:      a.SlotID,
		Answers:     a.Answers,
		Status:      string(a.Status),
		DecidedAt:   a.DecidedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}

	if !a.IsOwnedBy(viewerID) && a.RecruiterNotes != "" {
		notes := a.RecruiterNotes
		resp.RecruiterNotes = &notes
	}

	return resp
}

// FromDomainApplicationList конвертирует список domain моделей в DTO
func FromDomainApplicationList(apps []*domain.Application, viewerID int64) *ApplicationListResponse {
	resp := &ApplicationListResponse{
		Applications: make([]ApplicationResponse, 0, len(apps)),
	}

	for _, app := range apps {
		if appResp := FromDomainApplication(app, viewerID); appResp != nil {
			resp.Applications = append(resp.Applications, *appResp)
		}
	}

	return resp
}

// ToDomainApplicationStatus конвертирует строку в domain.ApplicationStatus с валидацией
func ToDomainApplicationStatus(status string) (domain.ApplicationStatus, error) {
	s := domain.ApplicationStatus(status)
	if !s.IsValid() {
		verr := domain.NewValidationError()
		verr.Add("status", "must be one of: pending reviewed accepted rejected cancelled")
		return "", verr
	}
	return s, nil
}
