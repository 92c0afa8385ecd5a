package application

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/pkg/dbmetrics"
	"github.com/m04kA/jobfair-interviews/pkg/psqlbuilder"
)

const (
	tableName = "interview_applications"

	pqUniqueViolation = "23505"
	emptyAnswers      = "{}"
)

var applicationColumns = []string{
	"id",
	"candidate_id",
	"posting_id",
	"event_id",
	"slot_id",
	"answers",
	"status",
	"recruiter_notes",
	"decided_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками на интервью
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую заявку
// Нарушение уникальности (candidate_id, posting_id) возвращается как ErrAlreadyExists
func (r *Repository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}

	answers := emptyAnswers
	if len(app.Answers) > 0 {
		answers = string(app.Answers)
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"candidate_id",
			"posting_id",
			"event_id",
			"slot_id",
			"answers",
			"status",
		).
		Values(
			app.ID,
			app.CandidateID,
			app.PostingID,
			app.EventID,
			app.SlotID,
			answers,
			app.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	app.Answers = json.RawMessage(answers)
	return app, nil
}

// GetByID получает заявку по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до её завершения
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectByIDQuery(id, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	app, err := scanApplication(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan application: %w", ErrScanRow, err)
	}

	return app, nil
}

// GetByCandidateAndPosting получает заявку кандидата на вакансию
func (r *Repository) GetByCandidateAndPosting(ctx context.Context, candidateID, postingID int64) (*domain.Application, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(applicationColumns...).
		From(tableName).
		Where(squirrel.Eq{"candidate_id": candidateID, "posting_id": postingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCandidateAndPosting - build select query: %v", ErrBuildQuery, err)
	}

	app, err := scanApplication(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCandidateAndPosting - scan application: %w", ErrScanRow, err)
	}

	return app, nil
}

// List получает заявки по фильтру, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.ApplicationFilter) ([]*domain.Application, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(applicationColumns...).From(tableName)

	if filter.CandidateID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"candidate_id": *filter.CandidateID})
	}
	if filter.PostingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"posting_id": *filter.PostingID})
	}
	if filter.EventID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"event_id": *filter.EventID})
	}
	if filter.SlotID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_id": *filter.SlotID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanApplications(rows)
}

// UpdateStatus сохраняет статус, заметки рекрутера и время решения
func (r *Repository) UpdateStatus(ctx context.Context, app *domain.Application) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", app.Status).
		Set("recruiter_notes", app.RecruiterNotes).
		Set("decided_at", app.DecidedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": app.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrApplicationNotFound
	}

	return nil
}

// CancelAcceptedBySlot отменяет принятые заявки, держащие слот
// Используется при отмене и удалении слота рекрутером, возвращает отменённые заявки
func (r *Repository) CancelAcceptedBySlot(ctx context.Context, slotID uuid.UUID) ([]*domain.Application, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := cancelAcceptedBySlotQuery(slotID).ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CancelAcceptedBySlot - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CancelAcceptedBySlot - execute update: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanApplications(rows)
}

// HasOtherAccepted проверяет, держит ли кандидат слот ещё по одной принятой заявке
// (кандидат может откликнуться на разные вакансии одного рекрутера, выбрав один и тот же слот)
func (r *Repository) HasOtherAccepted(ctx context.Context, slotID uuid.UUID, candidateID int64, excludeID uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := hasOtherAcceptedQuery(slotID, candidateID, excludeID).ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasOtherAccepted - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasOtherAccepted - scan count: %w", ErrScanRow, err)
	}

	return count > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(row rowScanner) (*domain.Application, error) {
	var app domain.Application
	var slotID uuid.NullUUID
	var answers []byte
	var decidedAt sql.NullTime

	err := row.Scan(
		&app.ID,
		&app.CandidateID,
		&app.PostingID,
		&app.EventID,
		&slotID,
		&answers,
		&app.Status,
		&app.RecruiterNotes,
		&decidedAt,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if slotID.Valid {
		app.SlotID = &slotID.UUID
	}
	if decidedAt.Valid {
		app.DecidedAt = &decidedAt.Time
	}
	app.Answers = json.RawMessage(answers)

	return &app, nil
}

// scanApplications сканирует результаты запроса в слайс заявок
func scanApplications(rows *sql.Rows) ([]*domain.Application, error) {
	apps := make([]*domain.Application, 0)

	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanApplications - scan row: %v", ErrScanRow, err)
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanApplications - rows error: %w", ErrScanRow, err)
	}

	return apps, nil
}
