package notifications

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("notification not found")

const notifCols = `id, user_id, title, message, type, read, created_at`

// DB is the slice of pgxpool.Pool this repo needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repo struct {
	pg DB
}

func NewRepo(pg DB) *Repo {
	return &Repo{pg: pg}
}

func scanNotification(row pgx.Row) (*Notification, error) {
	var n Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

type CreateNotification struct {
	UserID  uuid.UUID
	Title   string
	Message string
	Type    string
}

func (r *Repo) Create(ctx context.Context, in CreateNotification) (*Notification, error) {
	if in.Type == "" {
		in.Type = "default"
	}
	const q = `
INSERT INTO notifications (user_id, title, message, type, read, created_at)
VALUES ($1, $2, $3, $4, false, now())
RETURNING ` + notifCols
	return scanNotification(r.pg.QueryRow(ctx, q, in.UserID, in.Title, in.Message, in.Type))
}

// List returns a user's notifications newest first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]Notification, error) {
	q := `SELECT ` + notifCols + ` FROM notifications WHERE user_id = $1`
	if unreadOnly {
		q += ` AND read = false`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pg.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

// UnreadCount is always derived from the rows, never maintained as a counter,
// so it cannot drift.
func (r *Repo) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	const q = `SELECT count(*) FROM notifications WHERE user_id = $1 AND read = false`
	var n int64
	err := r.pg.QueryRow(ctx, q, userID).Scan(&n)
	return n, err
}

// MarkRead flips one notification to read. The `read = false` guard makes the
// write monotonic; marking an already-read notification is a no-op success.
func (r *Repo) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	const q = `UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2 AND read = false`
	tag, err := r.pg.Exec(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// no-op for already-read; error only when the row doesn't exist
		const exists = `SELECT 1 FROM notifications WHERE id = $1 AND user_id = $2`
		var one int
		if err := r.pg.QueryRow(ctx, exists, id, userID).Scan(&one); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
	}
	return nil
}

// MarkAllRead flips every currently-unread notification of the user and
// returns how many rows were affected. Calling it again immediately affects
// zero rows.
func (r *Repo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	const q = `UPDATE notifications SET read = true WHERE user_id = $1 AND read = false`
	tag, err := r.pg.Exec(ctx, q, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
