package trips

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdulah-eng/driverApp/internal/domain"
	"github.com/Abdulah-eng/driverApp/internal/money"
)

var tripColNames = []string{
	"id", "driver_id", "pickup_location", "dropoff_location",
	"pickup_lat", "pickup_lng", "dropoff_lat", "dropoff_lng",
	"passenger_name", "passenger_phone", "fare_minor", "vehicle_type", "status",
	"scheduled_at", "started_at", "completed_at", "created_at", "updated_at",
}

func tripRow(id, driverID uuid.UUID, status domain.TripStatus) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(tripColNames).AddRow(
		id, driverID, "Airport", "Center",
		(*float64)(nil), (*float64)(nil), (*float64)(nil), (*float64)(nil),
		(*string)(nil), (*string)(nil),
		money.Amount(2000), "sedan", status,
		(*time.Time)(nil), &now, &now, now, now,
	)
}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *Repo) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewRepo(mock)
}

func TestUpdateStatusCompletedBumpsInSameTx(t *testing.T) {
	mock, repo := newMockRepo(t)
	id, driverID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE trips`).
		WithArgs(id, "completed", []string{"active"}).
		WillReturnRows(tripRow(id, driverID, domain.TripCompleted))
	mock.ExpectExec(`UPDATE users SET total_trips = total_trips`).
		WithArgs(driverID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	trip, err := repo.UpdateStatus(context.Background(), id, domain.TripCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.TripCompleted, trip.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusRollsBackWhenBumpFails(t *testing.T) {
	mock, repo := newMockRepo(t)
	id, driverID := uuid.New(), uuid.New()

	// the status change must not stay durable when the counter write fails
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE trips`).
		WithArgs(id, "completed", []string{"active"}).
		WillReturnRows(tripRow(id, driverID, domain.TripCompleted))
	mock.ExpectExec(`UPDATE users SET total_trips = total_trips`).
		WithArgs(driverID).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.UpdateStatus(context.Background(), id, domain.TripCompleted)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusCancelledSkipsBump(t *testing.T) {
	mock, repo := newMockRepo(t)
	id, driverID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE trips`).
		WithArgs(id, "cancelled", []string{"pending", "active"}).
		WillReturnRows(tripRow(id, driverID, domain.TripCancelled))
	mock.ExpectCommit()

	trip, err := repo.UpdateStatus(context.Background(), id, domain.TripCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.TripCancelled, trip.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusPendingTargetNeverHitsDB(t *testing.T) {
	mock, repo := newMockRepo(t)

	_, err := repo.UpdateStatus(context.Background(), uuid.New(), domain.TripPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	require.NoError(t, mock.ExpectationsWereMet())
}
