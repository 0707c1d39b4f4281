package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrResetExpired     = errors.New("reset session expired")
	ErrResetInvalidOTP  = errors.New("reset otp invalid")
	ErrResetMaxAttempts = errors.New("reset max attempts exceeded")
)

// ResetStore holds pending password-reset actions: an OTP hash bound to a
// session id and the user it belongs to. Verified sessions are deleted.
type ResetStore struct {
	rdb         *redis.Client
	secret      string
	ttl         time.Duration
	maxAttempts int
}

func NewResetStore(rdb *redis.Client, secret string, ttl time.Duration, maxAttempts int) *ResetStore {
	return &ResetStore{rdb: rdb, secret: secret, ttl: ttl, maxAttempts: maxAttempts}
}

func (s *ResetStore) key(sessionID string) string { return "pwreset:" + sessionID }

func (s *ResetStore) hash(sessionID, otp string) string {
	sum := sha256.Sum256([]byte(sessionID + ":" + otp + ":" + s.secret))
	return hex.EncodeToString(sum[:])
}

func (s *ResetStore) Create(ctx context.Context, userID uuid.UUID, phone, otp string) (string, error) {
	sessionID := uuid.NewString()
	key := s.key(sessionID)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key,
		"user_id", userID.String(),
		"phone", phone,
		"hash", s.hash(sessionID, otp),
		"attempts", "0",
	)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Verify checks the OTP for a reset session and returns the bound user.
func (s *ResetStore) Verify(ctx context.Context, sessionID, otp string) (uuid.UUID, error) {
	key := s.key(sessionID)
	vals, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return uuid.Nil, err
	}
	if len(vals) == 0 {
		return uuid.Nil, ErrResetExpired
	}

	attempts, _ := strconv.Atoi(vals["attempts"])
	if attempts >= s.maxAttempts {
		return uuid.Nil, ErrResetMaxAttempts
	}

	want := vals["hash"]
	if want == "" || s.hash(sessionID, otp) != want {
		attempts++
		_ = s.rdb.HSet(ctx, key, "attempts", strconv.Itoa(attempts)).Err()
		if attempts >= s.maxAttempts {
			return uuid.Nil, ErrResetMaxAttempts
		}
		return uuid.Nil, ErrResetInvalidOTP
	}

	userID, err := uuid.Parse(vals["user_id"])
	if err != nil {
		return uuid.Nil, ErrResetExpired
	}

	_ = s.rdb.Del(ctx, key).Err()
	return userID, nil
}
