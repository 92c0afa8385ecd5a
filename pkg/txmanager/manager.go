// Package txmanager управление транзакциями через context
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/jobfair-interviews/pkg/dbmetrics"
)

const (
	defaultMaxAttempts = 3
	retryBaseDelay     = 10 * time.Millisecond

	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

var (
	// ErrBeginTx возвращается, когда не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается, когда не удалось зафиксировать транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// Beginner источник транзакций (*dbmetrics.DB)
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Manager выполняет функции в транзакции, передавая её через context
type Manager struct {
	db          Beginner
	isolation   sql.IsolationLevel
	maxAttempts int
}

// NewTransactionManager создает менеджер транзакций
// maxAttempts <= 0 означает значение по умолчанию
func NewTransactionManager(db Beginner, isolation sql.IsolationLevel, maxAttempts int) *Manager {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &Manager{
		db:          db,
		isolation:   isolation,
		maxAttempts: maxAttempts,
	}
}

// ParseIsolation переводит значение из конфига в sql.IsolationLevel
// repeatable_read не поддерживается: снимок фиксируется первым запросом транзакции,
// то есть до получения advisory-блокировки, и изменения предыдущего держателя блокировки не видны
func ParseIsolation(value string) (sql.IsolationLevel, error) {
	switch value {
	case "", "read_committed":
		return sql.LevelReadCommitted, nil
	case "serializable":
		return sql.LevelSerializable, nil
	default:
		return sql.LevelDefault, fmt.Errorf("txmanager: unknown isolation level %q", value)
	}
}

// Do выполняет fn в транзакции
// Если в ctx уже есть транзакция, fn выполняется в ней (без вложенных транзакций)
// Ошибки сериализации и дедлоки повторяются до maxAttempts раз: fn должна быть идемпотентной
// в пределах транзакции (всё состояние читается заново)
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		err = m.runOnce(ctx, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(time.Duration(attempt) * retryBaseDelay):
		}
	}
	return err
}

func (m *Manager) runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: m.isolation})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}
	return nil
}

// IsRetryable возвращает true для ошибок, после которых транзакцию можно повторить
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pqSerializationFailure || pqErr.Code == pqDeadlockDetected
}
