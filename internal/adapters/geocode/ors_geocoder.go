package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sales-route-service/internal/domain"
	"sales-route-service/internal/platform/obs"
	"sales-route-service/internal/ports"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrAddressNotFound is returned when ORS has no match for an address.
var ErrAddressNotFound = errors.New("address not found")

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSGeocoder implements Geocoder using the OpenRouteService search endpoint.
//
// It coordinates:
//   - Address normalization
//   - Cache lookups before network calls
//   - Client-side rate limiting
//   - External API calls with retry/backoff
//
// The geocoder is safe for concurrent use.
type ORSGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
	country string
	limiter *rate.Limiter
	cache   ports.GeocodeCache
	backoff time.Duration
}

type ORSOptions struct {
	BaseURL string
	// Country restricts matches (ISO 3166-1 alpha-2). Empty searches worldwide.
	Country           string
	RequestsPerSecond float64
	Timeout           time.Duration
}

func NewORSGeocoder(apiKey string, opts ORSOptions, cache ports.GeocodeCache) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.openrouteservice.org"
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	return &ORSGeocoder{
		session: &http.Client{Timeout: opts.Timeout},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		country: opts.Country,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		cache:   cache,
		backoff: 200 * time.Millisecond,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves one address, consulting the cache first.
func (o *ORSGeocoder) Geocode(ctx context.Context, address string) (_ domain.GeoPoint, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.GeoPoint{}, errors.New("geocode: address must be non-empty")
	}

	if o.cache != nil {
		hits, err := o.cache.GetMany(ctx, []string{norm})
		if err != nil {
			log.Printf("req_id=%s geocode cache read failed: %v", obs.RequestID(ctx), err)
		} else if p, ok := hits[norm]; ok {
			return p, nil
		}
	}

	if err := o.limiter.Wait(ctx); err != nil {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: rate limit wait: %w", norm, err)
	}

	p, err := o.search(ctx, norm)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: %w", norm, err)
	}

	if o.cache != nil {
		if err := o.cache.PutMany(ctx, map[string]domain.GeoPoint{norm: p}); err != nil {
			log.Printf("req_id=%s geocode cache write failed: %v", obs.RequestID(ctx), err)
		}
	}

	return p, nil
}

// search calls /geocode/search and returns the best match.
func (o *ORSGeocoder) search(ctx context.Context, norm string) (domain.GeoPoint, error) {
	endpoint := o.baseURL + "/geocode/search"

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		if o.country != "" {
			q.Set("boundary.country", o.country)
		}
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.GeoPoint{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.GeoPoint{}, ErrAddressNotFound
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.GeoPoint{}, fmt.Errorf("invalid coordinate format: %v", coords)
	}

	// ORS returns GeoJSON order: [lon, lat].
	p := domain.GeoPoint{Lat: coords[1], Lon: coords[0]}
	if err := p.Validate(); err != nil {
		return domain.GeoPoint{}, err
	}

	return p, nil
}
