package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrRefreshInvalid = errors.New("refresh invalid")

// RefreshStore tracks live refresh-token JTIs. Consume-and-reissue on refresh
// makes each token single-use; deleting the JTI on logout revokes it.
type RefreshStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRefreshStore(rdb *redis.Client, ttl time.Duration) *RefreshStore {
	return &RefreshStore{rdb: rdb, ttl: ttl}
}

func (s *RefreshStore) key(userID, jti string) string {
	return "refresh:" + userID + ":" + jti
}

func (s *RefreshStore) Put(ctx context.Context, userID, jti string) error {
	return s.rdb.Set(ctx, s.key(userID, jti), "1", s.ttl).Err()
}

func (s *RefreshStore) Consume(ctx context.Context, userID, jti string) error {
	n, err := s.rdb.Del(ctx, s.key(userID, jti)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRefreshInvalid
	}
	return nil
}
