// Package migrations схема БД, встроенная в бинарник
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed sql/*.sql
var files embed.FS

// migrationsLockKey ключ advisory lock, чтобы два процесса не применяли миграции одновременно
const migrationsLockKey = 7320114

var (
	// ErrReadMigrations возвращается, когда не удалось прочитать встроенные файлы
	ErrReadMigrations = errors.New("migrations: failed to read embedded files")

	// ErrApplyMigration возвращается, когда миграция завершилась ошибкой
	ErrApplyMigration = errors.New("migrations: failed to apply migration")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migration одна миграция
type Migration struct {
	Version string // имя файла без расширения
	SQL     string
}

// List возвращает встроенные миграции в порядке применения
func List() ([]Migration, error) {
	entries, err := fs.ReadDir(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMigrations, err)
	}

	result := make([]Migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		content, err := fs.ReadFile(files, "sql/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadMigrations, entry.Name(), err)
		}
		result = append(result, Migration{
			Version: strings.TrimSuffix(entry.Name(), ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Version < result[j].Version })
	return result, nil
}

// Up применяет все ещё не применённые миграции. Каждая миграция выполняется в своей транзакции
// Возвращает количество применённых миграций
func Up(ctx context.Context, db *sql.DB, logger Logger) (int, error) {
	migrations, err := List()
	if err != nil {
		return 0, err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: acquire connection: %v", ErrApplyMigration, err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", migrationsLockKey); err != nil {
		return 0, fmt.Errorf("%w: acquire lock: %v", ErrApplyMigration, err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", migrationsLockKey)
	}()

	if _, err := conn.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return 0, fmt.Errorf("%w: create schema_migrations: %v", ErrApplyMigration, err)
	}

	applied := 0
	for _, m := range migrations {
		var exists bool
		err := conn.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", m.Version,
		).Scan(&exists)
		if err != nil {
			return applied, fmt.Errorf("%w: check %s: %v", ErrApplyMigration, m.Version, err)
		}
		if exists {
			continue
		}

		if err := apply(ctx, conn, m); err != nil {
			return applied, err
		}
		logger.Info("Migration %s applied", m.Version)
		applied++
	}

	return applied, nil
}

func apply(ctx context.Context, conn *sql.Conn, m Migration) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %s - begin: %v", ErrApplyMigration, m.Version, err)
	}

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %s - execute: %v", ErrApplyMigration, m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", m.Version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %s - record version: %v", ErrApplyMigration, m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %s - commit: %v", ErrApplyMigration, m.Version, err)
	}
	return nil
}
