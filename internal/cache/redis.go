package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ligastats/sidelined/internal/scrape"
)

// RedisCache stores serialized league results so repeat requests for the
// same league do not hit the source site again inside the TTL window.
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

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

func leagueKey(url string) string {
	return "injuries:league:" + url
}

// GetLeague returns the cached result for a league URL, or nil on a miss.
func (rc *RedisCache) GetLeague(ctx context.Context, url string) (*scrape.LeagueResult, error) {
	raw, err := rc.client.Get(ctx, leagueKey(url)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result scrape.LeagueResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("decoding cached league result: %w", err)
	}
	return &result, nil
}

// SetLeague caches a league result under its request URL with the given TTL.
func (rc *RedisCache) SetLeague(ctx context.Context, url string, result *scrape.LeagueResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding league result: %w", err)
	}
	return rc.client.Set(ctx, leagueKey(url), data, ttl).Err()
}

// InvalidateLeague drops the cached result for a league URL.
func (rc *RedisCache) InvalidateLeague(ctx context.Context, url string) error {
	return rc.client.Del(ctx, leagueKey(url)).Err()
}
