package credential

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const SessionKeyPrefix = "dashboard:session:"

// Helper untuk mendapatkan key lengkap
func GetSessionKey(sessionID, key string) string {
	return SessionKeyPrefix + sessionID + ":" + key
}

// RedisStore adalah store persistent: token "remember me" tetap hidup
// walaupun dashboard di-restart.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, GetSessionKey(sessionID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, GetSessionKey(sessionID, key), value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID, key string) error {
	return s.rdb.Del(ctx, GetSessionKey(sessionID, key)).Err()
}
