package earnings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Abdulah-eng/driverApp/internal/domain"
	"github.com/Abdulah-eng/driverApp/internal/money"
)

const earningCols = `id, driver_id, trip_id, amount_minor, type, description, created_at`

type Repo struct {
	pg *pgxpool.Pool
}

func NewRepo(pg *pgxpool.Pool) *Repo {
	return &Repo{pg: pg}
}

func scanEarning(row pgx.Row) (*Earning, error) {
	var e Earning
	err := row.Scan(&e.ID, &e.DriverID, &e.TripID, &e.Amount, &e.Type, &e.Description, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

type CreateEarning struct {
	DriverID    uuid.UUID
	TripID      *uuid.UUID
	Amount      money.Amount
	Type        domain.EarningType
	Description string
}

// Append inserts one ledger entry. Entries are never updated afterwards.
func (r *Repo) Append(ctx context.Context, in CreateEarning) (*Earning, error) {
	const q = `
INSERT INTO earnings (driver_id, trip_id, amount_minor, type, description, created_at)
VALUES ($1, $2, $3, $4, $5, now())
RETURNING ` + earningCols
	return scanEarning(r.pg.QueryRow(ctx, q,
		in.DriverID, in.TripID, int64(in.Amount), string(in.Type), in.Description,
	))
}

// ListByDriver returns a driver's entries newest first, optionally bounded by
// a creation-time lower cutoff.
func (r *Repo) ListByDriver(ctx context.Context, driverID uuid.UUID, since *time.Time) ([]Earning, error) {
	q := `SELECT ` + earningCols + ` FROM earnings WHERE driver_id = $1`
	args := []any{driverID}
	if since != nil {
		q += ` AND created_at >= $2`
		args = append(args, *since)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pg.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Earning, 0)
	for rows.Next() {
		e, err := scanEarning(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}
