package ratings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrAlreadyRated = errors.New("trip already rated")

// DB is the slice of pgxpool.Pool this repo needs.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
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

type CreateRating struct {
	TripID   uuid.UUID
	DriverID uuid.UUID
	Score    int
	Comment  *string
	Tags     []string
}

// Create inserts the rating and refreshes the driver's aggregate rating from
// all of their scores, in one transaction. The unique index on trip_id
// enforces one-per-trip.
func (r *Repo) Create(ctx context.Context, in CreateRating) (*Rating, error) {
	if err := ValidateScore(in.Score); err != nil {
		return nil, err
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}

	const q = `
INSERT INTO ratings (trip_id, driver_id, score, comment, tags, created_at)
VALUES ($1, $2, $3, $4, $5, now())
RETURNING id, trip_id, driver_id, score, comment, tags, created_at`

	tx, err := r.pg.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out, err := scanRating(tx.QueryRow(ctx, q, in.TripID, in.DriverID, in.Score, in.Comment, in.Tags))
	if err != nil {
		type pgErr interface{ SQLState() string }
		var e pgErr
		if errors.As(err, &e) && e.SQLState() == "23505" {
			return nil, ErrAlreadyRated
		}
		return nil, err
	}

	const refresh = `
UPDATE users
SET rating = (SELECT COALESCE(AVG(score), 0) FROM ratings WHERE driver_id = $1),
    updated_at = now()
WHERE id = $1`
	if _, err := tx.Exec(ctx, refresh, in.DriverID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByDriver returns a driver's ratings newest first.
func (r *Repo) ListByDriver(ctx context.Context, driverID uuid.UUID, limit int) ([]Rating, error) {
	q := `SELECT id, trip_id, driver_id, score, comment, tags, created_at
FROM ratings WHERE driver_id = $1 ORDER BY created_at DESC`
	args := []any{driverID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pg.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Rating, 0)
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rt)
	}
	return out, rows.Err()
}

func scanRating(row pgx.Row) (*Rating, error) {
	var rt Rating
	if err := row.Scan(&rt.ID, &rt.TripID, &rt.DriverID, &rt.Score, &rt.Comment, &rt.Tags, &rt.CreatedAt); err != nil {
		return nil, err
	}
	return &rt, nil
}

// FindByTrip returns the rating for a trip, if any.
func (r *Repo) FindByTrip(ctx context.Context, tripID uuid.UUID) (*Rating, error) {
	const q = `SELECT id, trip_id, driver_id, score, comment, tags, created_at
FROM ratings WHERE trip_id = $1 LIMIT 1`
	rt, err := scanRating(r.pg.QueryRow(ctx, q, tripID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rt, nil
}
