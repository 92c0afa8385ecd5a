package testutil

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	applicationRepo "github.com/m04kA/jobfair-interviews/internal/infra/storage/application"
)

// ApplicationRepository in-memory аналог application.Repository
type ApplicationRepository struct {
	store *Store
}

func (r *ApplicationRepository) Create(_ context.Context, app *domain.Application) (*domain.Application, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("Applications.Create"); err != nil {
		return nil, err
	}

	for _, existing := range s.applications {
		if existing.CandidateID == app.CandidateID && existing.PostingID == app.PostingID {
			return nil, applicationRepo.ErrAlreadyExists
		}
	}

	created := *app
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	if len(created.Answers) == 0 {
		created.Answers = json.RawMessage(`{}`)
	}
	// created_at строго возрастает, чтобы порядок List был детерминированным
	s.seq++
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Second)
	created.CreatedAt = now
	created.UpdatedAt = now
	s.applications[created.ID] = created
	return &created, nil
}

func (r *ApplicationRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Application, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("Applications.GetByID"); err != nil {
		return nil, err
	}

	app, ok := s.applications[id]
	if !ok {
		return nil, applicationRepo.ErrApplicationNotFound
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByCandidateAndPosting(_ context.Context, candidateID, postingID int64) (*domain.Application, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, app := range s.applications {
		if app.CandidateID == candidateID && app.PostingID == postingID {
			app := app
			return &app, nil
		}
	}
	return nil, applicationRepo.ErrApplicationNotFound
}

func (r *ApplicationRepository) List(_ context.Context, filter domain.ApplicationFilter) ([]*domain.Application, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("Applications.List"); err != nil {
		return nil, err
	}

	result := make([]*domain.Application, 0)
	for _, app := range s.applications {
		if !matchApplication(app, filter) {
			continue
		}
		app := app
		result = append(result, &app)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *ApplicationRepository) UpdateStatus(_ context.Context, app *domain.Application) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("Applications.UpdateStatus"); err != nil {
		return err
	}

	current, ok := s.applications[app.ID]
	if !ok {
		return applicationRepo.ErrApplicationNotFound
	}
	current.Status = app.Status
	current.RecruiterNotes = app.RecruiterNotes
	current.DecidedAt = app.DecidedAt
	current.UpdatedAt = time.Now().UTC()
	s.applications[app.ID] = current
	return nil
}

func (r *ApplicationRepository) CancelAcceptedBySlot(_ context.Context, slotID uuid.UUID) ([]*domain.Application, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("Applications.CancelAcceptedBySlot"); err != nil {
		return nil, err
	}

	cancelled := make([]*domain.Application, 0)
	for id, app := range s.applications {
		if app.SlotID == nil || *app.SlotID != slotID || app.Status != domain.ApplicationStatusAccepted {
			continue
		}
		app.Status = domain.ApplicationStatusCancelled
		s.applications[id] = app
		app := app
		cancelled = append(cancelled, &app)
	}
	return cancelled, nil
}

func (r *ApplicationRepository) HasOtherAccepted(_ context.Context, slotID uuid.UUID, candidateID int64, excludeID uuid.UUID) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, app := range s.applications {
		if id == excludeID || app.CandidateID != candidateID || app.Status != domain.ApplicationStatusAccepted {
			continue
		}
		if app.SlotID != nil && *app.SlotID == slotID {
			return true, nil
		}
	}
	return false, nil
}

func matchApplication(app domain.Application, filter domain.ApplicationFilter) bool {
	if filter.CandidateID != nil && app.CandidateID != *filter.CandidateID {
		return false
	}
	if filter.PostingID != nil && app.PostingID != *filter.PostingID {
		return false
	}
	if filter.EventID != nil && app.EventID != *filter.EventID {
		return false
	}
	if filter.SlotID != nil && (app.SlotID == nil || *app.SlotID != *filter.SlotID) {
		return false
	}
	if filter.Status != nil && app.Status != *filter.Status {
		return false
	}
	return true
}
