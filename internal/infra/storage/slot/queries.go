package slot

import (
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/pkg/psqlbuilder"
)

// lockRecruiterQuery транзакционная advisory-блокировка, снимается при COMMIT/ROLLBACK
const lockRecruiterQuery = "SELECT pg_advisory_xact_lock(hashtextextended('interview_slots:recruiter:' || $1::text, 0))"

func selectByIDQuery(id uuid.UUID, forUpdate bool) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}
	return selectBuilder
}

// setMeetingQuery compare-and-set: ссылка пишется только в слот, забронированный тем же кандидатом и без ссылки
func setMeetingQuery(id uuid.UUID, candidateID int64, link, providerMeetingID string) squirrel.UpdateBuilder {
	return psqlbuilder.Update(tableName).
		Set("meeting_link", link).
		Set("provider_meeting_id", providerMeetingID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":           id,
			"status":       domain.SlotStatusBooked,
			"candidate_id": candidateID,
		}).
		Where("meeting_link IS NULL")
}
