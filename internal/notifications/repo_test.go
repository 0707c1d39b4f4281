package notifications

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The literals below intentionally repeat the repo's statements: losing the
// `read = false` predicate from either write is exactly the regression these
// tests exist to catch.
var (
	markReadSQL    = regexp.QuoteMeta(`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2 AND read = false`)
	markAllReadSQL = regexp.QuoteMeta(`UPDATE notifications SET read = true WHERE user_id = $1 AND read = false`)
	existsSQL      = regexp.QuoteMeta(`SELECT 1 FROM notifications WHERE id = $1 AND user_id = $2`)
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *Repo) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewRepo(mock)
}

func TestMarkReadFlipsUnread(t *testing.T) {
	mock, repo := newMockRepo(t)
	userID, id := uuid.New(), uuid.New()

	mock.ExpectExec(markReadSQL).
		WithArgs(id, userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.MarkRead(context.Background(), userID, id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadAlreadyReadIsNoOp(t *testing.T) {
	mock, repo := newMockRepo(t)
	userID, id := uuid.New(), uuid.New()

	// guard matches nothing, the row exists: success without a second write
	mock.ExpectExec(markReadSQL).
		WithArgs(id, userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(existsSQL).
		WithArgs(id, userID).
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))

	require.NoError(t, repo.MarkRead(context.Background(), userID, id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadMissingNotification(t *testing.T) {
	mock, repo := newMockRepo(t)
	userID, id := uuid.New(), uuid.New()

	mock.ExpectExec(markReadSQL).
		WithArgs(id, userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(existsSQL).
		WithArgs(id, userID).
		WillReturnError(pgx.ErrNoRows)

	err := repo.MarkRead(context.Background(), userID, id)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAllReadSecondCallAffectsNothing(t *testing.T) {
	mock, repo := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectExec(markAllReadSQL).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	mock.ExpectExec(markAllReadSQL).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	n, err := repo.MarkAllRead(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = repo.MarkAllRead(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUnreadCountIsDerived(t *testing.T) {
	mock, repo := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM notifications WHERE user_id = $1 AND read = false`)).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	n, err := repo.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
