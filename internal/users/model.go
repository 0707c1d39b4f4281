package users

import (
	"time"

	"github.com/google/uuid"
)

// Mirrors DB columns from the `users` table. PasswordHash never leaves the
// process.
type User struct {
	ID        uuid.UUID `json:"id"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`

	Rating     float64 `json:"rating"`
	TotalTrips int     `json:"total_trips"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PasswordHash string `json:"-"`
}
