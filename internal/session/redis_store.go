package session

import (
	"context"
	"fmt"
	"strconv"

	redis "github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string, password string, db int) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisStore{client: client}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func branchKey(userID int64) string {
	return fmt.Sprintf("pos:session:%d:branch", userID)
}

func (s *RedisStore) DefaultBranch(ctx context.Context, userID int64) (int64, bool, error) {
	val, err := s.client.Get(ctx, branchKey(userID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	branchID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return branchID, true, nil
}

func (s *RedisStore) SetDefaultBranch(ctx context.Context, userID int64, branchID int64) error {
	// No TTL: the default branch is identity, not a cache entry.
	return s.client.Set(ctx, branchKey(userID), strconv.FormatInt(branchID, 10), 0).Err()
}
