package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/pkg/dbmetrics"
	"github.com/m04kA/jobfair-interviews/pkg/psqlbuilder"
)

const tableName = "interview_slots"

var slotColumns = []string{
	"id",
	"recruiter_id",
	"event_id",
	"slot_date",
	"start_time",
	"end_time",
	"medium",
	"duration_minutes",
	"description",
	"status",
	"candidate_id",
	"meeting_link",
	"provider_meeting_id",
	"contact_phone",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами интервью
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый слот
// ID генерируется, если не задан
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"recruiter_id",
			"event_id",
			"slot_date",
			"start_time",
			"end_time",
			"medium",
			"duration_minutes",
			"description",
			"status",
			"candidate_id",
			"contact_phone",
			"notes",
		).
		Values(
			slot.ID,
			slot.RecruiterID,
			slot.EventID,
			slot.Date,
			slot.StartTime,
			slot.EndTime,
			slot.Medium,
			slot.DurationMinutes,
			slot.Description,
			slot.Status,
			slot.CandidateID,
			slot.ContactPhone,
			slot.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&slot.CreatedAt, &slot.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return slot, nil
}

// GetByID получает слот по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до её завершения
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectByIDQuery(id, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return slot, nil
}

// List получает слоты по фильтру, отсортированные по дате и времени начала
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(slotColumns...).From(tableName), filter).
		OrderBy("slot_date ASC", "start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListActiveByRecruiterAndDate получает все активные слоты рекрутера на дату по всем мероприятиям
// Используется для поиска пересечений, поэтому фильтра по мероприятию нет намеренно
func (r *Repository) ListActiveByRecruiterAndDate(ctx context.Context, recruiterID int64, date time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{
			"recruiter_id": recruiterID,
			"slot_date":    domain.DateOnly(date),
			"status":       statusStrings(domain.ActiveSlotStatuses),
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByRecruiterAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByRecruiterAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// Update сохраняет редактируемые поля слота (время, способ, описание, контакты)
func (r *Repository) Update(ctx context.Context, slot *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("slot_date", slot.Date).
		Set("start_time", slot.StartTime).
		Set("end_time", slot.EndTime).
		Set("medium", slot.Medium).
		Set("duration_minutes", slot.DurationMinutes).
		Set("description", slot.Description).
		Set("contact_phone", slot.ContactPhone).
		Set("notes", slot.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "Update", query, args)
}

// UpdateStatus сохраняет статус, кандидата и ссылку на встречу
// Вызывается после перехода состояния, выполненного над заблокированной строкой
func (r *Repository) UpdateStatus(ctx context.Context, slot *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", slot.Status).
		Set("candidate_id", slot.CandidateID).
		Set("meeting_link", slot.MeetingLink).
		Set("provider_meeting_id", slot.ProviderMeetingID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateStatus", query, args)
}

// SetMeeting сохраняет ссылку на встречу, только если слот всё ещё забронирован тем же кандидатом
// и ссылки ещё нет. Возвращает false, если условие не выполнено (слот успели освободить или ссылка уже есть)
func (r *Repository) SetMeeting(ctx context.Context, id uuid.UUID, candidateID int64, link, providerMeetingID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := setMeetingQuery(id, candidateID, link, providerMeetingID).ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: SetMeeting - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: SetMeeting - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: SetMeeting - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// Delete удаляет слот
// Заявки, ссылающиеся на слот, теряют ссылку (ON DELETE SET NULL)
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "Delete", query, args)
}

// CountByStatus возвращает количество слотов по статусам
// Status и AvailableOnly фильтра игнорируются
func (r *Repository) CountByStatus(ctx context.Context, filter domain.SlotFilter) (*domain.SlotStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	filter.Status = nil
	filter.AvailableOnly = false

	query, args, err := applyFilter(psqlbuilder.Select("status", "COUNT(*)").From(tableName), filter).
		GroupBy("status").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := &domain.SlotStats{}
	for rows.Next() {
		var status domain.SlotStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %v", ErrScanRow, err)
		}
		stats.Add(status, count)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}

	return stats, nil
}

// LockRecruiter берёт транзакционную advisory-блокировку по рекрутеру
// Создание и редактирование слотов одного рекрутера выполняются строго последовательно,
// иначе две параллельные транзакции могут вставить пересекающиеся слоты
func (r *Repository) LockRecruiter(ctx context.Context, recruiterID int64) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return ErrNotInTransaction
	}

	_, err := tx.ExecContext(ctx, lockRecruiterQuery, recruiterID)
	if err != nil {
		return fmt.Errorf("%w: LockRecruiter - acquire lock: %w", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) execOne(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func applyFilter(selectBuilder squirrel.SelectBuilder, filter domain.SlotFilter) squirrel.SelectBuilder {
	if filter.EventID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"event_id": *filter.EventID})
	}
	if filter.RecruiterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"recruiter_id": *filter.RecruiterID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_date": domain.DateOnly(*filter.Date)})
	}

	// AvailableOnly перекрывает Status: cancelled и completed никогда не попадают в "доступные"
	if filter.AvailableOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.SlotStatusAvailable})
	} else if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	return selectBuilder
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var slot domain.Slot
	var candidateID sql.NullInt64
	var meetingLink, providerMeetingID, contactPhone sql.NullString

	err := row.Scan(
		&slot.ID,
		&slot.RecruiterID,
		&slot.EventID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Medium,
		&slot.DurationMinutes,
		&slot.Description,
		&slot.Status,
		&candidateID,
		&meetingLink,
		&providerMeetingID,
		&contactPhone,
		&slot.Notes,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if candidateID.Valid {
		slot.CandidateID = &candidateID.Int64
	}
	slot.MeetingLink = nullStringPtr(meetingLink)
	slot.ProviderMeetingID = nullStringPtr(providerMeetingID)
	slot.ContactPhone = nullStringPtr(contactPhone)
	slot.Date = domain.DateOnly(slot.Date)

	return &slot, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func statusStrings(statuses []domain.SlotStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
