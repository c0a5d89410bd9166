package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sales-route-service/internal/adapters/cache"
	"sales-route-service/internal/adapters/geocode"
	"sales-route-service/internal/adapters/repositories"
	"sales-route-service/internal/api"
	"sales-route-service/internal/config"
	"sales-route-service/internal/platform/db"
	"sales-route-service/internal/ports"
	"sales-route-service/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.DatabaseURL, db.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and seed demo leads on startup for local runs.
	if err := initAndSeed(ctx, conn, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	geocodeCache, closeCache, err := newGeocodeCache(ctx, cfg, conn)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	planner := &services.VisitPlanner{
		Repo:          repositories.NewPostgresLeadRepository(conn),
		DefaultOrigin: cfg.DefaultOrigin(),
	}
	if cfg.GeocodingEnabled() {
		geocoder, err := geocode.NewORSGeocoder(cfg.ORSAPIKey, geocode.ORSOptions{
			BaseURL:           cfg.ORSBaseURL,
			Country:           cfg.GeocodeCountry,
			RequestsPerSecond: cfg.GeocodeRPS,
		}, geocodeCache)
		if err != nil {
			log.Fatal(err)
		}
		planner.Geocoder = geocoder
	} else {
		log.Println("ORS_API_KEY not set, geocoding disabled (leads without coordinates are skipped)")
	}

	router := api.NewRouter(planner.Repo, planner)

	// Timeouts are tuned for cold-cache planning (geocoder latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(ctx, conn, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// newGeocodeCache returns the persistent SQL cache, fronted by Redis when REDIS_URL is set.
func newGeocodeCache(ctx context.Context, cfg *config.Config, conn *sql.DB) (ports.GeocodeCache, func(), error) {
	sqlCache := cache.NewSQLGeocodeCache(conn)
	if cfg.RedisURL == "" {
		return sqlCache, func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("geocode cache: parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		// Redis is only a hot layer; fall back to SQL alone.
		log.Printf("redis unavailable, using sql geocode cache only: %v", err)
		_ = client.Close()
		return sqlCache, func() {}, nil
	}

	front := cache.NewRedisGeocodeCache(client, cfg.GeocodeCacheTTL)
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Printf("redis close failed: %v", err)
		}
	}
	return cache.NewTieredGeocodeCache(front, sqlCache), closeFn, nil
}
