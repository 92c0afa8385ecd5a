package application

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/jobfair-interviews/internal/domain"
	"github.com/m04kA/jobfair-interviews/pkg/psqlbuilder"
)

func selectByIDQuery(id uuid.UUID, forUpdate bool) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(applicationColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}
	return selectBuilder
}

func cancelAcceptedBySlotQuery(slotID uuid.UUID) squirrel.UpdateBuilder {
	return psqlbuilder.Update(tableName).
		Set("status", domain.ApplicationStatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"slot_id": slotID, "status": domain.ApplicationStatusAccepted}).
		Suffix("RETURNING " + strings.Join(applicationColumns, ", "))
}

// hasOtherAcceptedQuery считает принятые заявки кандидата на слот, кроме excludeID
func hasOtherAcceptedQuery(slotID uuid.UUID, candidateID int64, excludeID uuid.UUID) squirrel.SelectBuilder {
	return psqlbuilder.Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{
			"slot_id":      slotID,
			"candidate_id": candidateID,
			"status":       domain.ApplicationStatusAccepted,
		}).
		Where(squirrel.NotEq{"id": excludeID})
}
