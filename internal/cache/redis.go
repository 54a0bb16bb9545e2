package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// seenURLSet holds every game URL that made it into storage. Membership
// survives restarts, so re-collected archives skip straight past games
// that were already ingested.
const seenURLSet = "chesscom:seen"

// RedisCache stores fetched archive payloads so finished months are not
// re-downloaded on every run, plus the cross-run seen-URL set
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify the connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// Set stores a key-value pair with TTL
func (rc *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return rc.client.Set(ctx, key, value, ttl).Err()
}

// Get retrieves a value by key
func (rc *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return rc.client.Get(ctx, key).Result()
}

// Delete removes keys
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return rc.client.Del(ctx, keys...).Err()
}

// SeenURL reports whether a game URL is already in the seen set
func (rc *RedisCache) SeenURL(ctx context.Context, url string) (bool, error) {
	return rc.client.SIsMember(ctx, seenURLSet, url).Result()
}

// MarkSeen adds game URLs to the seen set
func (rc *RedisCache) MarkSeen(ctx context.Context, urls ...string) error {
	if len(urls) == 0 {
		return nil
	}
	members := make([]interface{}, len(urls))
	for i, url := range urls {
		members[i] = url
	}
	return rc.client.SAdd(ctx, seenURLSet, members...).Err()
}
