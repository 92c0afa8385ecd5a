package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	slotRepo "github.com/m04kA/jobfair-interviews/internal/infra/storage/slot"
	"github.com/m04kA/jobfair-interviews/pkg/dbmetrics"
)

// SlotRepository in-memory аналог slot.Repository
type SlotRepository struct {
	store *Store
}

func (r *SlotRepository) Create(_ context.Context, slot *domain.Slot) (*domain.Slot, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("Slots.Create"); err != nil {
		return nil, err
	}

	created := *slot
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now
	s.slots[created.ID] = created
	return &created, nil
}

func (r *SlotRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Slot, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("Slots.GetByID"); err != nil {
		return nil, err
	}

	slot, ok := s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &slot, nil
}

func (r *SlotRepository) List(_ context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("Slots.List"); err != nil {
		return nil, err
	}

	result := make([]*domain.Slot, 0)
	for _, slot := range s.slots {
		if !matchSlot(slot, filter) {
			continue
		}
		slot := slot
		result = append(result, &slot)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (r *SlotRepository) ListActiveByRecruiterAndDate(ctx context.Context, recruiterID int64, date time.Time) ([]*domain.Slot, error) {
	day := domain.DateOnly(date)
	slots, err := r.List(ctx, domain.SlotFilter{RecruiterID: &recruiterID, Date: &day})
	if err != nil {
		return nil, err
	}

	active := make([]*domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.IsActive() {
			active = append(active, slot)
		}
	}
	return active, nil
}

func (r *SlotRepository) Update(_ context.Context, slot *domain.Slot) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("Slots.Update"); err != nil {
		return err
	}

	current, ok := s.slots[slot.ID]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	current.Date = slot.Date
	current.StartTime = slot.StartTime
	current.EndTime = slot.EndTime
	current.Medium = slot.Medium
	current.DurationMinutes = slot.DurationMinutes
	current.Description = slot.Description
	current.ContactPhone = slot.ContactPhone
	current.Notes = slot.Notes
	current.UpdatedAt = time.Now().UTC()
	s.slots[slot.ID] = current
	return nil
}

func (r *SlotRepository) UpdateStatus(_ context.Context, slot *domain.Slot) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("Slots.UpdateStatus"); err != nil {
		return err
	}

	current, ok := s.slots[slot.ID]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	current.Status = slot.Status
	current.CandidateID = slot.CandidateID
	current.MeetingLink = slot.MeetingLink
	current.ProviderMeetingID = slot.ProviderMeetingID
	current.UpdatedAt = time.Now().UTC()
	s.slots[slot.ID] = current
	return nil
}

func (r *SlotRepository) SetMeeting(_ context.Context, id uuid.UUID, candidateID int64, link, providerMeetingID string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("Slots.SetMeeting"); err != nil {
		return false, err
	}

	current, ok := s.slots[id]
	if !ok || !current.IsBookedBy(candidateID) || current.MeetingLink != nil {
		return false, nil
	}
	current.MeetingLink = &link
	current.ProviderMeetingID = &providerMeetingID
	s.slots[id] = current
	return true, nil
}

func (r *SlotRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("Slots.Delete"); err != nil {
		return err
	}

	if _, ok := s.slots[id]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	delete(s.slots, id)

	for appID, app := range s.applications {
		if app.SlotID != nil && *app.SlotID == id {
			app.SlotID = nil
			s.applications[appID] = app
		}
	}
	return nil
}

func (r *SlotRepository) CountByStatus(ctx context.Context, filter domain.SlotFilter) (*domain.SlotStats, error) {
	filter.Status = nil
	filter.AvailableOnly = false

	slots, err := r.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	stats := &domain.SlotStats{}
	for _, slot := range slots {
		stats.Add(slot.Status, 1)
	}
	return stats, nil
}

// LockRecruiter в памяти блокировка уже обеспечена последовательными транзакциями
func (r *SlotRepository) LockRecruiter(ctx context.Context, _ int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return slotRepo.ErrNotInTransaction
	}
	return nil
}

func matchSlot(slot domain.Slot, filter domain.SlotFilter) bool {
	if filter.EventID != nil && slot.EventID != *filter.EventID {
		return false
	}
	if filter.RecruiterID != nil && slot.RecruiterID != *filter.RecruiterID {
		return false
	}
	if filter.Date != nil && !slot.Date.Equal(domain.DateOnly(*filter.Date)) {
		return false
	}
	if filter.AvailableOnly {
		return slot.Status == domain.SlotStatusAvailable
	}
	if filter.Status != nil && slot.Status != *filter.Status {
		return false
	}
	return true
}
