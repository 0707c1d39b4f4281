package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrPhoneTaken = errors.New("phone already registered")
)

const userCols = `id, phone, password_hash, email, full_name, avatar_url, rating, total_trips, created_at, updated_at`

type Repo struct {
	pg *pgxpool.Pool
}

func NewRepo(pg *pgxpool.Pool) *Repo {
	return &Repo{pg: pg}
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Phone, &u.PasswordHash, &u.Email, &u.FullName, &u.AvatarURL,
		&u.Rating, &u.TotalTrips, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	q := `SELECT ` + userCols + ` FROM users WHERE id = $1 LIMIT 1`
	return scanUser(r.pg.QueryRow(ctx, q, id))
}

func (r *Repo) FindByPhone(ctx context.Context, phone string) (*User, error) {
	q := `SELECT ` + userCols + ` FROM users WHERE phone = $1 LIMIT 1`
	return scanUser(r.pg.QueryRow(ctx, q, phone))
}

type CreateUser struct {
	Phone        string
	PasswordHash string
	Email        *string
	FullName     string
}

func (r *Repo) Create(ctx context.Context, in CreateUser) (*User, error) {
	const q = `
INSERT INTO users (phone, password_hash, email, full_name, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
RETURNING ` + userCols
	u, err := scanUser(r.pg.QueryRow(ctx, q, in.Phone, in.PasswordHash, in.Email, in.FullName))
	if err != nil {
		type pgErr interface{ SQLState() string }
		var e pgErr
		if errors.As(err, &e) && e.SQLState() == "23505" {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}
	return u, nil
}

type UpdateProfile struct {
	FullName  *string
	Email     *string
	AvatarURL *string
}

func (r *Repo) UpdateProfile(ctx context.Context, id uuid.UUID, u UpdateProfile) (*User, error) {
	const q = `
UPDATE users
SET full_name  = COALESCE($2, full_name),
    email      = COALESCE($3, email),
    avatar_url = COALESCE($4, avatar_url),
    updated_at = now()
WHERE id = $1
RETURNING ` + userCols
	return scanUser(r.pg.QueryRow(ctx, q, id, u.FullName, u.Email, u.AvatarURL))
}

func (r *Repo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const q = `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	tag, err := r.pg.Exec(ctx, q, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
