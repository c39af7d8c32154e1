package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func TestGetExecutor_PrefersTransactionFromContext(t *testing.T) {
	db := &DB{}
	tx := fakeTx{}

	assert.Same(t, db, GetExecutor(context.Background(), db).(*DB))
	assert.False(t, IsInTransaction(context.Background()))

	ctx := WithTx(context.Background(), tx)
	assert.True(t, IsInTransaction(ctx))
	assert.Equal(t, tx, GetExecutor(ctx, db))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM bookings"))
	assert.Equal(t, "update", operation("\n  UPDATE boats SET name = $1"))
	assert.Equal(t, "unknown", operation("   "))
}

func TestSqlTxWrapper_ImplementsTxExecutor(t *testing.T) {
	var _ TxExecutor = &SqlTxWrapper{Tx: (*sql.Tx)(nil)}
}
