package infra

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema makes the backend self-bootstrapping: it creates any of the
// five tables that don't exist yet. Non-destructive; existing data is never
// touched. cmd/migrate remains the source of truth for evolving older DBs.
func EnsureSchema(ctx context.Context, pg *pgxpool.Pool) error {
	if _, err := pg.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`); err != nil {
		return err
	}

	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS users (
  id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
  phone VARCHAR NOT NULL UNIQUE,
  password_hash VARCHAR NOT NULL,
  email VARCHAR NULL,
  full_name VARCHAR NOT NULL,
  avatar_url VARCHAR NULL,
  rating DOUBLE PRECISION NOT NULL DEFAULT 0,
  total_trips INTEGER NOT NULL DEFAULT 0,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
		`
CREATE TABLE IF NOT EXISTS trips (
  id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
  driver_id UUID NOT NULL REFERENCES users(id),
  pickup_location VARCHAR NOT NULL,
  dropoff_location VARCHAR NOT NULL,
  pickup_lat DOUBLE PRECISION NULL,
  pickup_lng DOUBLE PRECISION NULL,
  dropoff_lat DOUBLE PRECISION NULL,
  dropoff_lng DOUBLE PRECISION NULL,
  passenger_name VARCHAR NULL,
  passenger_phone VARCHAR NULL,
  fare_minor BIGINT NOT NULL CHECK (fare_minor >= 0),
  vehicle_type VARCHAR NOT NULL,
  status VARCHAR NOT NULL DEFAULT 'pending',
  scheduled_at TIMESTAMPTZ NULL,
  started_at TIMESTAMPTZ NULL,
  completed_at TIMESTAMPTZ NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
		`CREATE INDEX IF NOT EXISTS trips_driver_created_idx ON trips (driver_id, created_at DESC);`,
		`
CREATE TABLE IF NOT EXISTS earnings (
  id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
  driver_id UUID NOT NULL REFERENCES users(id),
  trip_id UUID NULL REFERENCES trips(id),
  amount_minor BIGINT NOT NULL CHECK (amount_minor >= 0),
  type VARCHAR NOT NULL,
  description VARCHAR NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
		`CREATE INDEX IF NOT EXISTS earnings_driver_created_idx ON earnings (driver_id, created_at DESC);`,
		`
CREATE TABLE IF NOT EXISTS ratings (
  id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
  trip_id UUID NOT NULL UNIQUE REFERENCES trips(id),
  driver_id UUID NOT NULL REFERENCES users(id),
  score INTEGER NOT NULL CHECK (score BETWEEN 1 AND 5),
  comment VARCHAR NULL,
  tags TEXT[] NOT NULL DEFAULT '{}',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
		`
CREATE TABLE IF NOT EXISTS notifications (
  id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id UUID NOT NULL REFERENCES users(id),
  title VARCHAR NOT NULL,
  message VARCHAR NOT NULL,
  type VARCHAR NOT NULL DEFAULT 'default',
  read BOOLEAN NOT NULL DEFAULT false,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
		`CREATE INDEX IF NOT EXISTS notifications_user_unread_idx ON notifications (user_id) WHERE read = false;`,
	}

	for _, q := range stmts {
		if _, err := pg.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
