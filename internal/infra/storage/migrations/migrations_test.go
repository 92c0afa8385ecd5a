package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	migrations, err := List()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, "0001_interview_slots", migrations[0].Version)
	assert.Equal(t, "0002_interview_applications", migrations[1].Version)

	assert.True(t, strings.Contains(migrations[0].SQL, "chk_interview_slots_candidate"))
	assert.True(t, strings.Contains(migrations[1].SQL, "ON DELETE SET NULL"))
	assert.True(t, strings.Contains(migrations[1].SQL, "UNIQUE (candidate_id, posting_id)"))
}
