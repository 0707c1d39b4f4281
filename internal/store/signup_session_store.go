package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("signup session not found")

// SignupSessionStore bridges OTP verification and account creation for phones
// that have no user yet. A session is single-use and expires on its own.
type SignupSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSignupSessionStore(rdb *redis.Client, ttl time.Duration) *SignupSessionStore {
	return &SignupSessionStore{rdb: rdb, ttl: ttl}
}

func (s *SignupSessionStore) key(sessionID string) string { return "signup_session:" + sessionID }

func (s *SignupSessionStore) Create(ctx context.Context, phone string) (string, error) {
	id := uuid.NewString()
	if err := s.rdb.Set(ctx, s.key(id), phone, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Consume returns the verified phone and deletes the session.
func (s *SignupSessionStore) Consume(ctx context.Context, sessionID string) (string, error) {
	key := s.key(sessionID)
	phone, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	_ = s.rdb.Del(ctx, key).Err()
	return phone, nil
}
