package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"fieldrep/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepo(t *testing.T) (RequestRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return NewRequestRepository(db, NewAuditRepository(db), NewTransactionManager(db)), mock
}

func TestRequestRepository_FetchOrdersIsOwnerScopedAndNewestFirst(t *testing.T) {
	repo, mock := newMockRepo(t)
	newer := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	rows := sqlmock.NewRows([]string{"id", "owner_id", "created_at", "status", "priority", "type", "quantity"}).
		AddRow("9b2f3c1e-5d7a-4c1b-8f4e-0a1b2c3d4e5f", "U1", newer, "pending", "High", "Regular Order", 3).
		AddRow("1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f", "U1", older, "approved", "Low", "Urgent Order", 1)
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE owner_id = \$1 ORDER BY created_at DESC`).
		WithArgs("U1").
		WillReturnRows(rows)

	orders, err := repo.FetchOrders(context.Background(), "U1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, 3, orders[0].Quantity)
	assert.Equal(t, model.StatusApproved, orders[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_FetchDoctorsOrderedByName(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE owner_id = \$1 ORDER BY name ASC`).
		WithArgs("U1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name"}))

	doctors, err := repo.FetchDoctors(context.Background(), "U1")
	require.NoError(t, err)
	assert.Empty(t, doctors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_FetchFailureIsRemoteError(t *testing.T) {
	repo, mock := newMockRepo(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery(`SELECT \* FROM "utility_requests" WHERE owner_id = \$1 ORDER BY created_at DESC`).
		WithArgs("U1").
		WillReturnError(boom)

	_, err := repo.FetchUtilities(context.Background(), "U1")
	require.Error(t, err)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "fetch", remote.Op)
	assert.Equal(t, model.KindUtility, remote.Kind)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderingFor(t *testing.T) {
	assert.Equal(t, "created_at DESC", OrderingFor(model.KindOrder))
	assert.Equal(t, "created_at DESC", OrderingFor(model.KindUtility))
	assert.Equal(t, "name ASC", OrderingFor(model.KindDoctor))
}

type unencodableDoctor struct {
	model.DoctorEntry
}

func (unencodableDoctor) MarshalJSON() ([]byte, error) {
	return nil, errors.New("unsupported value")
}

func TestAuditEntry(t *testing.T) {
	doctor := &model.DoctorEntry{Name: "Dr. Kavita Joshi"}
	doctor.OwnerID = "U1"

	audit, err := auditEntry(doctor)
	require.NoError(t, err)
	assert.Equal(t, model.ActionSubmitDoctor, audit.Action)
	assert.Equal(t, "U1", audit.OwnerID)
	assert.Equal(t, "Dr. Kavita Joshi", audit.EntityName)
	assert.Contains(t, audit.Details, "Dr. Kavita Joshi")

	_, err = auditEntry(&unencodableDoctor{})
	assert.ErrorContains(t, err, "failed to encode audit details")
}
