package database

import (
	"context"
	"testing"

	"fieldrep/internal/logging"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestDevCatalog_UniqueIDsAndSKUs(t *testing.T) {
	ids := map[string]bool{}
	skus := map[string]bool{}
	for _, p := range DevCatalog() {
		assert.False(t, ids[p.ID], "duplicate id %s", p.ID)
		assert.False(t, skus[p.SKU], "duplicate sku %s", p.SKU)
		assert.True(t, p.Price.IsPositive())
		ids[p.ID], skus[p.SKU] = true, true
	}
}

func TestSeedCatalog_SkipsWhenPopulated(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	require.NoError(t, SeedCatalog(context.Background(), db, DevCatalog(), logging.Discard()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
