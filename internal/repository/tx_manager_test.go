package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRunInTx_RollsBackAndReusesOuterTx(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()

	txm := NewTransactionManager(db)
	boom := errors.New("audit insert failed")
	nested := 0
	err = txm.RunInTx(context.Background(), func(txCtx context.Context) error {
		assert.True(t, inTx(txCtx))
		return txm.RunInTx(txCtx, func(inner context.Context) error {
			nested++
			assert.Same(t, txCtx.Value(txKey{}), inner.Value(txKey{}))
			return boom
		})
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, nested)
	assert.NoError(t, mock.ExpectationsWereMet())
}
