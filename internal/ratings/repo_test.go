package ratings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ratingColNames = []string{"id", "trip_id", "driver_id", "score", "comment", "tags", "created_at"}

type uniqueViolation struct{}

func (uniqueViolation) Error() string    { return "duplicate key value violates unique constraint" }
func (uniqueViolation) SQLState() string { return "23505" }

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *Repo) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewRepo(mock)
}

func TestCreateInsertsAndRefreshesInSameTx(t *testing.T) {
	mock, repo := newMockRepo(t)
	tripID, driverID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO ratings`).
		WithArgs(tripID, driverID, 5, (*string)(nil), []string{}).
		WillReturnRows(pgxmock.NewRows(ratingColNames).
			AddRow(uuid.New(), tripID, driverID, 5, (*string)(nil), []string{}, time.Now()))
	mock.ExpectExec(`UPDATE users`).
		WithArgs(driverID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	rt, err := repo.Create(context.Background(), CreateRating{TripID: tripID, DriverID: driverID, Score: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, rt.Score)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRollsBackWhenRefreshFails(t *testing.T) {
	mock, repo := newMockRepo(t)
	tripID, driverID := uuid.New(), uuid.New()

	// a rating must not persist with a stale driver average
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO ratings`).
		WithArgs(tripID, driverID, 4, (*string)(nil), []string{}).
		WillReturnRows(pgxmock.NewRows(ratingColNames).
			AddRow(uuid.New(), tripID, driverID, 4, (*string)(nil), []string{}, time.Now()))
	mock.ExpectExec(`UPDATE users`).
		WithArgs(driverID).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), CreateRating{TripID: tripID, DriverID: driverID, Score: 4})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateTrip(t *testing.T) {
	mock, repo := newMockRepo(t)
	tripID, driverID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO ratings`).
		WithArgs(tripID, driverID, 5, (*string)(nil), []string{}).
		WillReturnError(uniqueViolation{})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), CreateRating{TripID: tripID, DriverID: driverID, Score: 5})
	assert.ErrorIs(t, err, ErrAlreadyRated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsBadScoreBeforeDB(t *testing.T) {
	mock, repo := newMockRepo(t)

	_, err := repo.Create(context.Background(), CreateRating{TripID: uuid.New(), DriverID: uuid.New(), Score: 0})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
