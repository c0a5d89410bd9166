package config

import (
	"fmt"
	"os"
	"sales-route-service/internal/domain"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds the service settings read from the environment.
type Config struct {
	Port        string `validate:"required,numeric"`
	DatabaseURL string `validate:"required"`
	SeedPath    string

	// RedisURL is optional; without it only the SQL geocode cache is used.
	RedisURL         string        `validate:"omitempty,url"`
	GeocodeCacheTTL  time.Duration `validate:"gte=0"`
	ORSAPIKey        string
	ORSBaseURL       string  `validate:"required,url"`
	GeocodeCountry   string  `validate:"omitempty,len=2"`
	GeocodeRPS       float64 `validate:"gt=0"`
	DefaultOriginLat *float64 `validate:"omitempty,min=-90,max=90"`
	DefaultOriginLon *float64 `validate:"omitempty,min=-180,max=180"`
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads and validates the configuration.
// Call godotenv.Load beforehand to pick up a local .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           Get("PORT", "8080"),
		DatabaseURL:    Get("DATABASE_URL", ""),
		SeedPath:       Get("SEED_PATH", "data/seeds/leads.json"),
		RedisURL:       Get("REDIS_URL", ""),
		ORSAPIKey:      Get("ORS_API_KEY", ""),
		ORSBaseURL:     Get("ORS_BASE_URL", "https://api.openrouteservice.org"),
		GeocodeCountry: Get("GEOCODE_COUNTRY", "BR"),
	}

	var err error
	if cfg.GeocodeCacheTTL, err = time.ParseDuration(Get("GEOCODE_CACHE_TTL", "720h")); err != nil {
		return nil, fmt.Errorf("load config: GEOCODE_CACHE_TTL: %w", err)
	}
	if cfg.GeocodeRPS, err = strconv.ParseFloat(Get("GEOCODE_RPS", "1"), 64); err != nil {
		return nil, fmt.Errorf("load config: GEOCODE_RPS: %w", err)
	}
	if cfg.DefaultOriginLat, err = optionalFloat("DEFAULT_ORIGIN_LAT"); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.DefaultOriginLon, err = optionalFloat("DEFAULT_ORIGIN_LON"); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if (cfg.DefaultOriginLat == nil) != (cfg.DefaultOriginLon == nil) {
		return nil, fmt.Errorf("load config: DEFAULT_ORIGIN_LAT and DEFAULT_ORIGIN_LON must be set together")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// DefaultOrigin returns the configured fallback origin, or nil when unset.
func (c *Config) DefaultOrigin() *domain.GeoPoint {
	if c.DefaultOriginLat == nil || c.DefaultOriginLon == nil {
		return nil
	}
	return &domain.GeoPoint{Lat: *c.DefaultOriginLat, Lon: *c.DefaultOriginLon}
}

// GeocodingEnabled reports whether an ORS key was provided.
func (c *Config) GeocodingEnabled() bool {
	return c.ORSAPIKey != ""
}

func optionalFloat(key string) (*float64, error) {
	raw := Get(key, "")
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &v, nil
}
