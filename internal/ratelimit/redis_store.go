package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldCount   = "count"
	fieldResetAt = "resetAt"
)

// incrementLive bumps the counter only while the window hash still exists,
// so an expired key is never recreated without resetAt and TTL.
var incrementLive = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return redis.call("HINCRBY", KEYS[1], ARGV[1], 1)
end
return 0
`)

// RedisStore keeps each window in a hash that expires at resetAt.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a store on client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, prefix: "ratelimit", now: time.Now}
}

func (s *RedisStore) key(ip, action string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, action, ip)
}

// Find returns the live window. A hash without a readable resetAt is
// treated as absent; the next Create overwrites it.
func (s *RedisStore) Find(ctx context.Context, ip, action string) (*Record, error) {
	values, err := s.client.HGetAll(ctx, s.key(ip, action)).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}

	count, err := strconv.Atoi(values[fieldCount])
	if err != nil {
		return nil, nil
	}
	resetMs, err := strconv.ParseInt(values[fieldResetAt], 10, 64)
	if err != nil {
		return nil, nil
	}
	resetAt := time.UnixMilli(resetMs)
	if !resetAt.After(s.now()) {
		return nil, nil
	}
	return &Record{IP: ip, Action: action, Count: count, ResetAt: resetAt}, nil
}

// Create starts a window.
func (s *RedisStore) Create(ctx context.Context, ip, action string, resetAt time.Time) error {
	key := s.key(ip, action)
	ttl := resetAt.Sub(s.now())
	if ttl < time.Millisecond {
		ttl = time.Millisecond
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldCount, 1, fieldResetAt, resetAt.UnixMilli())
		pipe.PExpire(ctx, key, ttl)
		return nil
	})
	return err
}

// Increment bumps the counter of a live window and is a no-op once the
// window has expired.
func (s *RedisStore) Increment(ctx context.Context, ip, action string) error {
	return incrementLive.Run(ctx, s.client, []string{s.key(ip, action)}, fieldCount).Err()
}
