package helpers

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds the client used for sessions and rate limit counters.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func RedisDel(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}
