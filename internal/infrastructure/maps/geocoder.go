// Package maps geocodes property addresses with the Google Maps Geocoding API.
package maps

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	gmaps "googlemaps.github.io/maps"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/metrics"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

// Location is a geocoded point.
type Location struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address"`
	PlaceID          string  `json:"place_id"`
}

type geocodeAPI interface {
	Geocode(ctx context.Context, r *gmaps.GeocodingRequest) ([]gmaps.GeocodingResult, error)
}

// Geocoder wraps the Maps client with a Redis cache. cache may be nil.
type Geocoder struct {
	api   geocodeAPI
	cache redis.Cmdable
	ttl   time.Duration
	log   *logrus.Logger
}

func NewGeocoder(apiKey string, qps int, cache redis.Cmdable, ttl time.Duration, log *logrus.Logger) (*Geocoder, error) {
	opts := []gmaps.ClientOption{gmaps.WithAPIKey(apiKey)}
	if qps > 0 {
		opts = append(opts, gmaps.WithRateLimit(qps))
	}
	c, err := gmaps.NewClient(opts...)
	if err != nil {
		return nil, errs.MapsInvalidCredentials(err)
	}
	return newGeocoder(c, cache, ttl, log), nil
}

func newGeocoder(api geocodeAPI, cache redis.Cmdable, ttl time.Duration, log *logrus.Logger) *Geocoder {
	return &Geocoder{api: api, cache: cache, ttl: ttl, log: helpers.OrNop(log)}
}

// Geocode resolves address to its best match. Failures carry one of the MAPS_* codes.
func (g *Geocoder) Geocode(ctx context.Context, address string) (Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Location{}, errs.MapsGeocodeFailed(address, errors.New("empty address"))
	}
	key := helpers.KeyGeocode(address)
	if g.cache != nil {
		var cached Location
		if ok, err := helpers.RedisGetJSON(ctx, g.cache, key, &cached); err == nil && ok {
			metrics.GeocodeRequestsTotal.WithLabelValues("cache_hit").Inc()
			return cached, nil
		} else if err != nil {
			g.log.WithError(err).Warn("geocode cache read failed")
		}
	}

	results, err := g.api.Geocode(ctx, &gmaps.GeocodingRequest{Address: address})
	if err != nil {
		err = classify(address, err)
		metrics.GeocodeRequestsTotal.WithLabelValues(string(errs.CodeOf(err))).Inc()
		return Location{}, err
	}
	if len(results) == 0 {
		metrics.GeocodeRequestsTotal.WithLabelValues(string(errs.CodeMapsGeocodeFailed)).Inc()
		return Location{}, errs.MapsGeocodeFailed(address, errors.New("ZERO_RESULTS"))
	}

	r := results[0]
	loc := Location{
		Lat:              r.Geometry.Location.Lat,
		Lng:              r.Geometry.Location.Lng,
		FormattedAddress: r.FormattedAddress,
		PlaceID:          r.PlaceID,
	}
	metrics.GeocodeRequestsTotal.WithLabelValues("ok").Inc()
	if g.cache != nil && g.ttl > 0 {
		if err := helpers.RedisSetJSON(ctx, g.cache, key, loc, g.ttl); err != nil {
			g.log.WithError(err).Warn("geocode cache write failed")
		}
	}
	return loc, nil
}

// classify maps client and API status errors onto the MAPS_* error codes.
// Transport failures are checked first: their text embeds the request URL,
// which carries the address and the api key.
func classify(address string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errs.MapsNetworkError(redactURL(urlErr))
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) {
		return errs.MapsNetworkError(err)
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "rate: Wait") {
		// client side limiter from gmaps.WithRateLimit
		return errs.MapsRateLimited(err)
	}
	switch apiStatus(msg) {
	case "OVER_QUERY_LIMIT":
		return errs.MapsQuotaExceeded(err)
	case "OVER_DAILY_LIMIT", "RESOURCE_EXHAUSTED", "429":
		return errs.MapsRateLimited(err)
	case "REQUEST_DENIED":
		return errs.MapsInvalidCredentials(err)
	default:
		return errs.MapsGeocodeFailed(address, err)
	}
}

// apiStatus extracts STATUS from "maps: <STATUS> - <message>".
func apiStatus(msg string) string {
	rest, ok := strings.CutPrefix(msg, "maps: ")
	if !ok {
		return ""
	}
	status, _, _ := strings.Cut(rest, " ")
	return status
}

// redactURL keeps the operation and the underlying error but drops the URL.
func redactURL(e *url.Error) error {
	return fmt.Errorf("%s maps api: %w", e.Op, e.Err)
}
