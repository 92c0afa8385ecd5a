// Package testutil in-memory реализации хранилищ и внешних сервисов для тестов usecase и handler слоёв
package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/pkg/dbmetrics"
)

// ErrInjected ошибка, которую возвращает Store после FailOn
var ErrInjected = errors.New("testutil: injected failure")

// Store in-memory база слотов и заявок
// Транзакции выполняются строго последовательно, при ошибке состояние откатывается
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	slots        map[uuid.UUID]domain.Slot
	applications map[uuid.UUID]domain.Application
	failures     map[string]error
	seq          int64
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		slots:        make(map[uuid.UUID]domain.Slot),
		applications: make(map[uuid.UUID]domain.Application),
		failures:     make(map[string]error),
	}
}

// FailOn заставляет метод с именем method вернуть err при следующем вызове
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		err = ErrInjected
	}
	s.failures[method] = err
}

// Do выполняет fn в "транзакции"
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	slots, applications := s.snapshot()

	if err := fn(dbmetrics.WithTx(ctx, fakeTx{})); err != nil {
		s.restore(slots, applications)
		return err
	}
	return nil
}

// Slots возвращает репозиторий слотов
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{store: s}
}

// Applications возвращает репозиторий заявок
func (s *Store) Applications() *ApplicationRepository {
	return &ApplicationRepository{store: s}
}

// Slot возвращает копию слота или nil
func (s *Store) Slot(id uuid.UUID) *domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return nil
	}
	return &slot
}

// Application возвращает копию заявки или nil
func (s *Store) Application(id uuid.UUID) *domain.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.applications[id]
	if !ok {
		return nil
	}
	return &app
}

// SlotCount возвращает количество слотов
func (s *Store) SlotCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

// PutSlot сохраняет слот напрямую, без проверок
func (s *Store) PutSlot(slot *domain.Slot) *domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	if slot.DurationMinutes == 0 {
		slot.DurationMinutes, _ = slot.Range().Minutes()
	}
	s.slots[slot.ID] = *slot
	return slot
}

// PutApplication сохраняет заявку напрямую, без проверок
func (s *Store) PutApplication(app *domain.Application) *domain.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	s.applications[app.ID] = *app
	return app
}

func (s *Store) fail(method string) error {
	err, ok := s.failures[method]
	if !ok {
		return nil
	}
	delete(s.failures, method)
	return err
}

func (s *Store) snapshot() (map[uuid.UUID]domain.Slot, map[uuid.UUID]domain.Application) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make(map[uuid.UUID]domain.Slot, len(s.slots))
	for id, slot := range s.slots {
		slots[id] = slot
	}
	applications := make(map[uuid.UUID]domain.Application, len(s.applications))
	for id, app := range s.applications {
		applications[id] = app
	}
	return slots, applications
}

func (s *Store) restore(slots map[uuid.UUID]domain.Slot, applications map[uuid.UUID]domain.Application) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = slots
	s.applications = applications
}

// fakeTx маркер транзакции в context, методы не вызываются
type fakeTx struct {
	dbmetrics.TxExecutor
}
