package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ligastats/sidelined/internal/scrape"
)

// injuriesStream receives one entry per freshly scraped league. Downstream
// consumers (alerting, warehouse loads) read from here instead of polling
// the API.
const injuriesStream = "injuries.league"

// RedisPublisher publishes scrape results to a Redis stream.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new Redis stream publisher
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
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

	return &RedisPublisher{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishLeagueUpdate appends a scraped league result to the injuries
// stream.
func (rp *RedisPublisher) PublishLeagueUpdate(ctx context.Context, result *scrape.LeagueResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: injuriesStream,
		Values: map[string]interface{}{
			"league":    result.League.URL,
			"rows":      len(result.Rows),
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
