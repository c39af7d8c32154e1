package psqlbuilder

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "name").
		From("boats").
		Where(sq.Eq{"owner_id": int64(7), "status": "active"}).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, name FROM boats WHERE owner_id = $1 AND status = $2", query)
	assert.Equal(t, []interface{}{int64(7), "active"}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Update("bookings").
		Set("status", "confirmed").
		Where(sq.Eq{"id": int64(1), "status": "pending_approval"}).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE bookings SET status = $1 WHERE id = $2 AND status = $3", query)
	assert.Len(t, args, 3)
}
