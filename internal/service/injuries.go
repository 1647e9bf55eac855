package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ligastats/sidelined/internal/cache"
	"github.com/ligastats/sidelined/internal/fetch"
	"github.com/ligastats/sidelined/internal/publisher"
	"github.com/ligastats/sidelined/internal/scrape"
)

// DefaultCacheTTL for league results. Injury tables change at most a few
// times a day; fifteen minutes keeps us polite to the source.
const DefaultCacheTTL = 15 * time.Minute

// InjuriesService runs the scrape pipeline for a league URL and fans the
// result out to the cache, the update stream, and any live subscribers.
// Cache and publisher are optional; with both nil the service degrades to
// fetch-and-scrape only.
type InjuriesService struct {
	fetcher   fetch.Fetcher
	cache     *cache.RedisCache
	publisher *publisher.RedisPublisher
	cacheTTL  time.Duration

	broadcast func([]byte)
}

// NewInjuriesService creates the service. Pass nil for cache or publisher
// to run without them.
func NewInjuriesService(fetcher fetch.Fetcher, redisCache *cache.RedisCache, pub *publisher.RedisPublisher, cacheTTL time.Duration) *InjuriesService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &InjuriesService{
		fetcher:   fetcher,
		cache:     redisCache,
		publisher: pub,
		cacheTTL:  cacheTTL,
	}
}

// SetBroadcast registers a callback that receives every freshly scraped
// result as JSON, for the WebSocket hub.
func (s *InjuriesService) SetBroadcast(fn func([]byte)) {
	s.broadcast = fn
}

// GetLeagueInjuries returns the injuries for one league page, from cache
// when fresh, otherwise by fetching and scraping. Cache and publish
// failures are logged and swallowed; only fetch/scrape failures surface.
func (s *InjuriesService) GetLeagueInjuries(ctx context.Context, url string) (*scrape.LeagueResult, error) {
	if s.cache != nil {
		cached, err := s.cache.GetLeague(ctx, url)
		if err != nil {
			log.Printf("[service] cache read for %s: %v", url, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	doc, fetchedURL, err := fetch.LeaguePage(ctx, s.fetcher, url)
	if err != nil {
		return nil, err
	}

	result, err := scrape.Extract(doc, fetchedURL)
	if err != nil {
		return nil, err
	}
	log.Printf("[service] scraped %d injury rows from %s", len(result.Rows), fetchedURL)

	if s.cache != nil {
		if err := s.cache.SetLeague(ctx, url, result, s.cacheTTL); err != nil {
			log.Printf("[service] cache write for %s: %v", url, err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishLeagueUpdate(ctx, result); err != nil {
			log.Printf("[service] publish for %s: %v", url, err)
		}
	}
	if s.broadcast != nil {
		if data, err := json.Marshal(result); err == nil {
			s.broadcast(data)
		}
	}

	return result, nil
}
