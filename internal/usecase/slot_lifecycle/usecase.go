package slot_lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	slotRepo "github.com/m04kA/jobfair-interviews/internal/infra/storage/slot"
	"github.com/m04kA/jobfair-interviews/internal/integrations/meetingprovider"
	"github.com/m04kA/jobfair-interviews/pkg/dbmetrics"
)

// Manager единственное место, где меняется статус слота
type Manager struct {
	slotRepo        SlotRepository
	applicationRepo ApplicationRepository
	provisioner     MeetingProvisioner
	notifier        Notifier
	txManager       TransactionManager
	metrics         MetricsRecorder
	logger          Logger
}

// NewManager создает новый экземпляр менеджера жизненного цикла слотов
// provisioner может быть nil, тогда ссылки на встречи не создаются
func NewManager(
	slotRepo SlotRepository,
	applicationRepo ApplicationRepository,
	provisioner MeetingProvisioner,
	notifier Notifier,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *Manager {
	return &Manager{
		slotRepo:        slotRepo,
		applicationRepo: applicationRepo,
		provisioner:     provisioner,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Book бронирует слот за кандидатом
// Вызывается только внутри транзакции: строка слота блокируется до её завершения,
// поэтому из двух параллельных бронирований одного слота успешно только первое
func (m *Manager) Book(ctx context.Context, slotID uuid.UUID, candidateID int64) (*BookResult, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrNotInTransaction
	}

	slot, err := m.getSlot(ctx, "Book", slotID)
	if err != nil {
		return nil, err
	}

	changed, err := slot.Book(candidateID)
	if err != nil {
		m.logger.Warn("Book: slot id=%s (status=%s) cannot be booked by candidate=%d: %v",
			slotID, slot.Status, candidateID, err)
		return nil, err
	}

	if !changed {
		m.logger.Info("Book: slot id=%s is already booked by candidate=%d", slotID, candidateID)
		return &BookResult{Slot: slot, Changed: false}, nil
	}

	if err := m.slotRepo.UpdateStatus(ctx, slot); err != nil {
		m.logger.Error("Book: failed to save slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: Book - update status: %w", ErrInternal, err)
	}

	m.logger.Info("Book: slot id=%s booked by candidate=%d", slotID, candidateID)
	return &BookResult{Slot: slot, Changed: true}, nil
}

// Release освобождает слот, только если его держит candidateID
// Устаревшая отмена (слот уже у другого кандидата или не забронирован) ничего не меняет
func (m *Manager) Release(ctx context.Context, slotID uuid.UUID, candidateID int64) (bool, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return false, ErrNotInTransaction
	}

	slot, err := m.getSlot(ctx, "Release", slotID)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return false, nil
		}
		return false, err
	}

	if !slot.Release(candidateID) {
		m.logger.Info("Release: slot id=%s (status=%s) is not held by candidate=%d, nothing to release",
			slotID, slot.Status, candidateID)
		return false, nil
	}

	if err := m.slotRepo.UpdateStatus(ctx, slot); err != nil {
		m.logger.Error("Release: failed to save slot id=%s: %v", slotID, err)
		return false, fmt.Errorf("%w: Release - update status: %w", ErrInternal, err)
	}

	m.logger.Info("Release: slot id=%s released by candidate=%d", slotID, candidateID)
	return true, nil
}

// EnsureMeeting создает видеовстречу для забронированного слота без ссылки
// Вызывается после коммита. Ошибки провайдера логируются и не возвращаются,
// слот остаётся забронированным, повторная попытка возможна при повторном принятии заявки
func (m *Manager) EnsureMeeting(ctx context.Context, slot *domain.Slot) *domain.Slot {
	if m.provisioner == nil || slot == nil || !slot.NeedsMeeting() {
		return slot
	}

	// Бронирование уже зафиксировано, отмена запроса клиентом не должна прерывать создание встречи
	ctx = context.WithoutCancel(ctx)

	meeting, err := m.provisioner.CreateMeeting(ctx, meetingprovider.MeetingRequest{
		SlotID:      slot.ID,
		RecruiterID: slot.RecruiterID,
		CandidateID: *slot.CandidateID,
		Date:        slot.Date.Format(domain.DateFormat),
		StartTime:   slot.StartTime.String(),
		EndTime:     slot.EndTime.String(),
		Title:       meetingTitle(slot),
	})
	if err != nil {
		m.logger.Warn("EnsureMeeting: failed to provision meeting for slot id=%s: %v", slot.ID, err)
		m.metrics.IncProvisioningFailure()
		return slot
	}

	stored, err := m.slotRepo.SetMeeting(ctx, slot.ID, *slot.CandidateID, meeting.Link, meeting.ProviderMeetingID)
	if err != nil {
		m.logger.Error("EnsureMeeting: failed to store meeting for slot id=%s: %v", slot.ID, err)
		m.metrics.IncProvisioningFailure()
		return slot
	}
	if !stored {
		m.logger.Warn("EnsureMeeting: slot id=%s changed while provisioning, meeting %s not stored",
			slot.ID, meeting.ProviderMeetingID)
		return slot
	}

	updated := *slot
	updated.MeetingLink = &meeting.Link
	updated.ProviderMeetingID = &meeting.ProviderMeetingID

	m.logger.Info("EnsureMeeting: slot id=%s got meeting %s", slot.ID, meeting.ProviderMeetingID)
	return &updated
}

// Cancel отменяет слот рекрутером-владельцем
// Принятые заявки, держащие слот, отменяются в той же транзакции
func (m *Manager) Cancel(ctx context.Context, slotID uuid.UUID, recruiterID int64) (*CancelResult, error) {
	m.logger.Info("CancelSlot: slot id=%s by recruiter=%d", slotID, recruiterID)

	var (
		result *CancelResult
		holder *int64
	)

	err := m.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := m.getOwnedSlot(txCtx, "CancelSlot", slotID, recruiterID)
		if err != nil {
			return err
		}

		holder, err = slot.Cancel()
		if err != nil {
			m.logger.Warn("CancelSlot: %v", err)
			return err
		}

		if err := m.slotRepo.UpdateStatus(txCtx, slot); err != nil {
			m.logger.Error("CancelSlot: failed to save slot id=%s: %v", slotID, err)
			return fmt.Errorf("%w: Cancel - update status: %w", ErrInternal, err)
		}

		cancelled, err := m.applicationRepo.CancelAcceptedBySlot(txCtx, slotID)
		if err != nil {
			m.logger.Error("CancelSlot: failed to cancel applications of slot id=%s: %v", slotID, err)
			return fmt.Errorf("%w: Cancel - cancel applications: %w", ErrInternal, err)
		}

		result = &CancelResult{Slot: slot, CancelledApplications: cancelled}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.metrics.IncSlotTransition(transitionCancel)
	m.logger.Info("CancelSlot: slot id=%s cancelled, %d applications cancelled",
		slotID, len(result.CancelledApplications))

	m.notifier.Notify(ctx, slotRemovedNotifications(result.Slot, holder, result.CancelledApplications)...)
	return result, nil
}

// Complete отмечает проведённое интервью
func (m *Manager) Complete(ctx context.Context, slotID uuid.UUID, recruiterID int64) (*domain.Slot, error) {
	m.logger.Info("CompleteSlot: slot id=%s by recruiter=%d", slotID, recruiterID)

	var result *domain.Slot

	err := m.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := m.getOwnedSlot(txCtx, "CompleteSlot", slotID, recruiterID)
		if err != nil {
			return err
		}

		if err := slot.Complete(); err != nil {
			m.logger.Warn("CompleteSlot: %v", err)
			return err
		}

		if err := m.slotRepo.UpdateStatus(txCtx, slot); err != nil {
			m.logger.Error("CompleteSlot: failed to save slot id=%s: %v", slotID, err)
			return fmt.Errorf("%w: Complete - update status: %w", ErrInternal, err)
		}

		result = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.metrics.IncSlotTransition(transitionComplete)
	m.logger.Info("CompleteSlot: slot id=%s completed", slotID)
	return result, nil
}

// Delete удаляет активный слот
// Принятые заявки, держащие слот, отменяются, остальные заявки теряют ссылку на слот
func (m *Manager) Delete(ctx context.Context, slotID uuid.UUID, recruiterID int64) error {
	m.logger.Info("DeleteSlot: slot id=%s by recruiter=%d", slotID, recruiterID)

	var (
		deleted   *domain.Slot
		cancelled []*domain.Application
	)

	err := m.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := m.getOwnedSlot(txCtx, "DeleteSlot", slotID, recruiterID)
		if err != nil {
			return err
		}

		if !slot.CanBeDeleted() {
			m.logger.Warn("DeleteSlot: slot id=%s in status=%s cannot be deleted", slotID, slot.Status)
			return &domain.TransitionError{Entity: "slot", ID: slotID, From: string(slot.Status), To: "deleted"}
		}

		cancelled, err = m.applicationRepo.CancelAcceptedBySlot(txCtx, slotID)
		if err != nil {
			m.logger.Error("DeleteSlot: failed to cancel applications of slot id=%s: %v", slotID, err)
			return fmt.Errorf("%w: Delete - cancel applications: %w", ErrInternal, err)
		}

		if err := m.slotRepo.Delete(txCtx, slotID); err != nil {
			m.logger.Error("DeleteSlot: failed to delete slot id=%s: %v", slotID, err)
			return fmt.Errorf("%w: Delete - delete slot: %w", ErrInternal, err)
		}

		deleted = slot
		return nil
	})
	if err != nil {
		return err
	}

	m.metrics.IncSlotTransition(transitionDelete)
	m.logger.Info("DeleteSlot: slot id=%s deleted, %d applications cancelled", slotID, len(cancelled))

	m.notifier.Notify(ctx, slotRemovedNotifications(deleted, deleted.CandidateID, cancelled)...)
	return nil
}

// Вспомогательные методы

func (m *Manager) getSlot(ctx context.Context, method string, slotID uuid.UUID) (*domain.Slot, error) {
	slot, err := m.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			m.logger.Warn("%s: slot id=%s not found", method, slotID)
			return nil, ErrSlotNotFound
		}
		m.logger.Error("%s: failed to get slot id=%s: %v", method, slotID, err)
		return nil, fmt.Errorf("%w: %s - get slot: %w", ErrInternal, method, err)
	}
	return slot, nil
}

func (m *Manager) getOwnedSlot(ctx context.Context, method string, slotID uuid.UUID, recruiterID int64) (*domain.Slot, error) {
	slot, err := m.getSlot(ctx, method, slotID)
	if err != nil {
		return nil, err
	}
	if !slot.IsOwnedBy(recruiterID) {
		m.logger.Warn("%s: recruiter=%d does not own slot id=%s", method, recruiterID, slotID)
		return nil, ErrAccessDenied
	}
	return slot, nil
}
