package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sales-route-service/internal/domain"
	"sales-route-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisGeocodeKeyPrefix = "geocode:"

type redisGeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RedisGeocodeCache keeps recently resolved addresses in Redis with a TTL.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

func redisGeocodeKey(address string) string {
	return redisGeocodeKeyPrefix + address
}

// Fetch cached coordinates with a single MGET.
// Undecodable entries are treated as misses.
func (r *RedisGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.GeoPoint, err error) {
	defer obs.Time(ctx, "geocode.redis.GetMany")(&err)

	if r.Client == nil {
		return nil, errors.New("redis geocode cache: client is nil")
	}

	uniq := uniqueAddresses(addresses)
	if len(uniq) == 0 {
		return map[string]domain.GeoPoint{}, nil
	}

	keys := make([]string, 0, len(uniq))
	for _, a := range uniq {
		keys = append(keys, redisGeocodeKey(a))
	}

	vals, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get redis geocode cache: mget: %w", err)
	}

	out := make(map[string]domain.GeoPoint, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}

		var p redisGeoPoint
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			log.Printf("req_id=%s redis geocode cache decode failed address=%q err=%v", obs.RequestID(ctx), uniq[i], err)
			continue
		}
		out[uniq[i]] = domain.GeoPoint{Lat: p.Lat, Lon: p.Lon}
	}

	return out, nil
}

// Store address -> coordinate mappings in a single pipeline.
func (r *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.GeoPoint) error {
	if r.Client == nil {
		return errors.New("redis geocode cache: client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for addr, p := range results {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("insert redis geocode cache: empty address key")
		}

		payload, err := json.Marshal(redisGeoPoint{Lat: p.Lat, Lon: p.Lon})
		if err != nil {
			return fmt.Errorf("insert redis geocode cache address=%q: marshal: %w", addr, err)
		}
		pipe.Set(ctx, redisGeocodeKey(addr), payload, r.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert redis geocode cache: exec pipeline: %w", err)
	}

	return nil
}
