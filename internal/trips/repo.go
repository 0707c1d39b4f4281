package trips

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Abdulah-eng/driverApp/internal/domain"
	"github.com/Abdulah-eng/driverApp/internal/money"
)

// DB is the slice of pgxpool.Pool this repo needs.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	ErrNotFound          = errors.New("trip not found")
	ErrInvalidTransition = errors.New("invalid trip status transition")
)

const tripCols = `id, driver_id, pickup_location, dropoff_location,
  pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
  passenger_name, passenger_phone, fare_minor, vehicle_type, status,
  scheduled_at, started_at, completed_at, created_at, updated_at`

type Repo struct {
	pg DB
}

func NewRepo(pg DB) *Repo {
	return &Repo{pg: pg}
}

func scanTrip(row pgx.Row) (*Trip, error) {
	var t Trip
	err := row.Scan(
		&t.ID, &t.DriverID, &t.PickupLocation, &t.DropoffLocation,
		&t.PickupLat, &t.PickupLng, &t.DropoffLat, &t.DropoffLng,
		&t.PassengerName, &t.PassengerPhone, &t.Fare, &t.VehicleType, &t.Status,
		&t.ScheduledAt, &t.StartedAt, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

type CreateTrip struct {
	DriverID        uuid.UUID
	PickupLocation  string
	DropoffLocation string
	PickupLat       *float64
	PickupLng       *float64
	DropoffLat      *float64
	DropoffLng      *float64
	PassengerName   *string
	PassengerPhone  *string
	Fare            money.Amount
	VehicleType     string
}

// Create inserts a new trip; every trip starts out pending.
func (r *Repo) Create(ctx context.Context, in CreateTrip) (*Trip, error) {
	const q = `
INSERT INTO trips (
  driver_id, pickup_location, dropoff_location,
  pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
  passenger_name, passenger_phone, fare_minor, vehicle_type,
  status, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
RETURNING ` + tripCols
	return scanTrip(r.pg.QueryRow(ctx, q,
		in.DriverID, in.PickupLocation, in.DropoffLocation,
		in.PickupLat, in.PickupLng, in.DropoffLat, in.DropoffLng,
		in.PassengerName, in.PassengerPhone, int64(in.Fare), in.VehicleType,
		string(domain.TripPending),
	))
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*Trip, error) {
	q := `SELECT ` + tripCols + ` FROM trips WHERE id = $1 LIMIT 1`
	return scanTrip(r.pg.QueryRow(ctx, q, id))
}

type ListFilter struct {
	Status *domain.TripStatus
	Limit  int
}

// List returns a driver's trips, newest first. Pure read; never transitions.
func (r *Repo) List(ctx context.Context, driverID uuid.UUID, f ListFilter) ([]Trip, error) {
	q := `SELECT ` + tripCols + ` FROM trips WHERE driver_id = $1`
	args := []any{driverID}
	if f.Status != nil {
		q += ` AND status = $2`
		args = append(args, string(*f.Status))
	}
	q += ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		if f.Status != nil {
			q += ` LIMIT $3`
		} else {
			q += ` LIMIT $2`
		}
	}

	rows, err := r.pg.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Trip, 0)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// UpdateStatus moves a trip to `target` and sets the derived timestamp in the
// same statement. The WHERE clause only matches rows whose current status is
// a legal source for the target, so a concurrent writer losing the race gets
// ErrInvalidTransition instead of silently rewriting a terminal trip. The
// status change and the total_trips bump commit together or not at all.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, target domain.TripStatus) (*Trip, error) {
	sources := domain.AllowedSources(target)
	if len(sources) == 0 {
		return nil, ErrInvalidTransition
	}
	from := make([]string, 0, len(sources))
	for _, s := range sources {
		from = append(from, string(s))
	}

	const q = `
UPDATE trips
SET status       = $2,
    started_at   = CASE WHEN $2 = 'active'    THEN now() ELSE started_at END,
    completed_at = CASE WHEN $2 = 'completed' THEN now() ELSE completed_at END,
    updated_at   = now()
WHERE id = $1 AND status = ANY($3)
RETURNING ` + tripCols

	tx, err := r.pg.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	t, err := scanTrip(tx.QueryRow(ctx, q, id, string(target), from))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		// Distinguish a missing trip from an illegal transition.
		if _, ferr := r.FindByID(ctx, id); ferr != nil {
			return nil, ferr
		}
		return nil, ErrInvalidTransition
	}

	if target == domain.TripCompleted {
		const bump = `UPDATE users SET total_trips = total_trips + 1, updated_at = now() WHERE id = $1`
		if _, err := tx.Exec(ctx, bump, t.DriverID); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return t, nil
}
