package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
)

// Request модели

// ListSlotsRequest запрос на получение слотов
type ListSlotsRequest struct {
	ViewerID      int64      `json:"viewerId"`
	EventID       *int64     `json:"eventId,omitempty"`
	RecruiterID   *int64     `json:"recruiterId,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	Status        *string    `json:"status,omitempty"`
	AvailableOnly bool       `json:"available,omitempty"` // только свободные слоты
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListSlotsRequest) ToDomainFilter() (domain.SlotFilter, error) {
	filter := domain.SlotFilter{
		EventID:       r.EventID,
		RecruiterID:   r.RecruiterID,
		AvailableOnly: r.AvailableOnly,
	}

	if r.Date != nil {
		date := domain.DateOnly(*r.Date)
		filter.Date = &date
	}

	if r.Status != nil {
		status, err := ToDomainSlotStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// StatsRequest запрос статистики по слотам
type StatsRequest struct {
	EventID     *int64 `json:"eventId,omitempty"`
	RecruiterID *int64 `json:"recruiterId,omitempty"`
}

// Response модели

// SlotResponse ответ с данными слота
// Кандидат, ссылка на встречу и контактный телефон видны только рекрутеру-владельцу и кандидату,
// заметки только владельцу
type SlotResponse struct {
	ID              uuid.UUID `json:"id"`
	RecruiterID     int64     `json:"recruiterId"`
	EventID         int64     `json:"eventId"`
	Date            string    `json:"date"`      // "2025-03-14"
	StartTime       string    `json:"startTime"` // "10:00"
	EndTime         string    `json:"endTime"`
	Medium          string    `json:"medium"`
	DurationMinutes int       `json:"durationMinutes"`
	Description     string    `json:"description,omitempty"`
	Status          string    `json:"status"`

	CandidateID       *int64  `json:"candidateId,omitempty"`
	MeetingLink       *string `json:"meetingLink,omitempty"`
	ProviderMeetingID *string `json:"providerMeetingId,omitempty"`
	ContactPhone      *string `json:"contactPhone,omitempty"`
	Notes             *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// StatsResponse количество слотов по статусам
type StatsResponse struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Booked    int `json:"booked"`
	Cancelled int `json:"cancelled"`
	Completed int `json:"completed"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO с учётом того, кто смотрит
func FromDomainSlot(s *domain.Slot, viewerID int64) *SlotResponse {
	if s == nil {
		return nil
	}

	resp := &SlotResponse{
		ID:              s.ID,
		RecruiterID:     s.RecruiterID,
		EventID:         s.EventID,
		Date:            s.Date.Format(domain.DateFormat),
		StartTime:       s.StartTime.String(),
		EndTime:         s.EndTime.String(),
		Medium:          string(s.Medium),
		DurationMinutes: s.DurationMinutes,
		Description:     s.Description,
		Status:          string(s.Status),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}

	owner := s.IsOwnedBy(viewerID)
	if owner || s.IsBookedBy(viewerID) {
		resp.CandidateID = s.CandidateID
		resp.MeetingLink = s.MeetingLink
		resp.ProviderMeetingID = s.ProviderMeetingID
		resp.ContactPhone = s.ContactPhone
	}
	if owner && s.Notes != "" {
		notes := s.Notes
		resp.Notes = &notes
	}

	return resp
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.Slot, viewerID int64) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		if slotResp := FromDomainSlot(slot, viewerID); slotResp != nil {
			resp.Slots = append(resp.Slots, *slotResp)
		}
	}

	return resp
}

// FromDomainStats конвертирует статистику в DTO
func FromDomainStats(stats *domain.SlotStats) *StatsResponse {
	if stats == nil {
		return &StatsResponse{}
	}
	return &StatsResponse{
		Total:     stats.Total,
		Available: stats.Available,
		Booked:    stats.Booked,
		Cancelled: stats.Cancelled,
		Completed: stats.Completed,
	}
}

// ToDomainSlotStatus конвертирует строку в domain.SlotStatus с валидацией
func ToDomainSlotStatus(status string) (domain.SlotStatus, error) {
	s := domain.SlotStatus(status)
	if !s.IsValid() {
		verr := domain.NewValidationError()
		verr.Add("status", "must be one of: available booked cancelled completed")
		return "", verr
	}
	return s, nil
}
