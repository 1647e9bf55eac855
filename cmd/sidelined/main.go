package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ligastats/sidelined/internal/api/rest"
	"github.com/ligastats/sidelined/internal/api/websocket"
	"github.com/ligastats/sidelined/internal/cache"
	"github.com/ligastats/sidelined/internal/fetch"
	"github.com/ligastats/sidelined/internal/publisher"
	"github.com/ligastats/sidelined/internal/service"
	"github.com/ligastats/sidelined/internal/store"
)

const (
	serviceName    = "sidelined"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - League Injuries Service", serviceName, serviceVersion)

	// Load configuration from .env (if present) and environment
	if err := godotenv.Load(); err == nil {
		log.Println("✓ Loaded .env file")
	}
	config := loadConfig()

	// Database holds supplementary player records for the merge command.
	// The scrape API works without it.
	if config.PostgresDSN != "" {
		db, err := store.NewDatabase(config.PostgresDSN)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer db.Close()
		log.Println("✓ Connected to Postgres")

		if err := db.RunMigrations(); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
		log.Println("✓ Database migrations applied")
	} else {
		log.Println("⚠️  POSTGRES_DSN not set, running without the player store")
	}

	// Redis cache and publisher are optional as well.
	var redisCache *cache.RedisCache
	var redisPublisher *publisher.RedisPublisher
	if config.RedisURL != "" {
		var err error
		maxRetries := 10
		retryDelay := 2 * time.Second

		log.Println("Connecting to Redis...")
		for i := 0; i < maxRetries; i++ {
			redisCache, err = cache.NewRedisCache(config.RedisURL)
			if err == nil {
				break
			}
			if i < maxRetries-1 {
				log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
				time.Sleep(retryDelay)
			} else {
				log.Fatalf("Failed to connect to Redis after %d attempts: %v", maxRetries, err)
			}
		}
		defer redisCache.Close()
		log.Println("✓ Connected to Redis")

		redisPublisher, err = publisher.NewRedisPublisher(config.RedisURL)
		if err != nil {
			log.Fatalf("Failed to initialize Redis publisher: %v", err)
		}
		defer redisPublisher.Close()
		log.Println("✓ Redis publisher initialized")
	} else {
		log.Println("⚠️  REDIS_URL not set, running without cache and update stream")
	}

	// Pick the fetcher. The headless browser gets past bot walls but is
	// heavier; the plain client is the default.
	var fetcher fetch.Fetcher
	if config.UseBrowserFetch {
		browser, err := fetch.NewBrowserClient()
		if err != nil {
			log.Fatalf("Failed to start headless browser: %v", err)
		}
		defer browser.Close()
		fetcher = browser
		log.Println("✓ Headless browser fetcher ready")
	} else {
		fetcher = fetch.NewClient()
	}

	injuries := service.NewInjuriesService(fetcher, redisCache, redisPublisher, config.CacheTTL)

	// Initialize WebSocket server and wire the broadcast hook
	wsServer := websocket.NewServer()
	injuries.SetBroadcast(wsServer.BroadcastInjuryUpdate)
	go func() {
		if err := wsServer.Start(config.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()
	log.Printf("✓ WebSocket server listening on :%s", config.WSPort)

	// Initialize REST API server
	restServer := rest.NewServer(config.RESTPort, injuries)
	go func() {
		log.Printf("Starting REST API server on port %s", config.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()
	log.Printf("✓ REST API server listening on :%s", config.RESTPort)
	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}

type Config struct {
	PostgresDSN     string
	RedisURL        string
	RESTPort        string
	WSPort          string
	CacheTTL        time.Duration
	UseBrowserFetch bool
}

func loadConfig() Config {
	cacheTTL := service.DefaultCacheTTL
	if raw := getEnv("CACHE_TTL", ""); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			cacheTTL = parsed
		} else {
			log.Printf("⚠️  Invalid CACHE_TTL %q, using default %v", raw, cacheTTL)
		}
	}

	return Config{
		PostgresDSN:     getEnv("POSTGRES_DSN", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		RESTPort:        getEnv("REST_PORT", "8080"),
		WSPort:          getEnv("WS_PORT", "8081"),
		CacheTTL:        cacheTTL,
		UseBrowserFetch: getEnv("USE_BROWSER_FETCH", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
