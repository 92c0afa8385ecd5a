package application

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/jobfair-interviews/internal/domain"
)

func TestSelectByIDQuery(t *testing.T) {
	id := uuid.New()

	query, args, err := selectByIDQuery(id, false).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "FROM interview_applications WHERE id = $1")
	assert.NotContains(t, query, "FOR UPDATE")
	assert.Equal(t, []interface{}{id.String()}, args)

	query, _, err = selectByIDQuery(id, true).ToSql()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(query, "WHERE id = $1 FOR UPDATE"))
}

func TestHasOtherAcceptedQuery(t *testing.T) {
	slotID, excludeID := uuid.New(), uuid.New()

	query, args, err := hasOtherAcceptedQuery(slotID, 42, excludeID).ToSql()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "SELECT COUNT(*) FROM interview_applications WHERE "))
	assert.Contains(t, query, "candidate_id = $")
	assert.Contains(t, query, "slot_id = $")
	assert.Contains(t, query, "status = $")
	assert.Contains(t, query, "id <> $")

	require.Len(t, args, 4)
	assert.Contains(t, args, slotID.String())
	assert.Contains(t, args, int64(42))
	assert.Contains(t, args, domain.ApplicationStatusAccepted)
	// последний аргумент исключаемая заявка
	assert.Equal(t, excludeID.String(), args[3])
}

func TestCancelAcceptedBySlotQuery(t *testing.T) {
	slotID := uuid.New()

	query, args, err := cancelAcceptedBySlotQuery(slotID).ToSql()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query,
		"UPDATE interview_applications SET status = $1, updated_at = NOW() WHERE "))
	assert.Contains(t, query, "slot_id = $")
	assert.Contains(t, query, "RETURNING id, ")

	require.Len(t, args, 3)
	assert.Equal(t, domain.ApplicationStatusCancelled, args[0])
	assert.Contains(t, args, slotID.String())
	assert.Contains(t, args, domain.ApplicationStatusAccepted)
}
