// Package geo resolves free-form author location strings to
// coordinates through an external geocoding service, with throttling
// and per-run caching of both hits and failures.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Point is a resolved coordinate pair.
type Point struct {
	Lat float64
	Lon float64
}

// Geocoder resolves a location string to coordinates. The boolean is
// false when the service answers but knows no such place; errors are
// transport-level failures.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (Point, bool, error)
}

// NominatimClient is a Geocoder backed by a Nominatim-compatible
// search endpoint.
type NominatimClient struct {
	base   string
	client *retryablehttp.Client
}

// leveledSlog adapts slog for the retryable client, downgrading its
// ERROR lines to WARN since failed attempts are retried.
type leveledSlog struct {
	inner *slog.Logger
}

func (l leveledSlog) Error(msg string, keysAndValues ...any) { l.inner.Warn(msg, keysAndValues...) }
func (l leveledSlog) Warn(msg string, keysAndValues ...any)  { l.inner.Warn(msg, keysAndValues...) }
func (l leveledSlog) Info(msg string, keysAndValues ...any)  { l.inner.Info(msg, keysAndValues...) }
func (l leveledSlog) Debug(msg string, keysAndValues ...any) { l.inner.Debug(msg, keysAndValues...) }

// NewNominatimClient creates a client for the given base URL (e.g.
// "https://nominatim.openstreetmap.org"). Timeout bounds each request
// including retries.
func NewNominatimClient(base string, timeout time.Duration, logger *slog.Logger) *NominatimClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = timeout
	rc.Logger = retryablehttp.LeveledLogger(leveledSlog{inner: logger})

	return &NominatimClient{base: base, client: rc}
}

// nominatimResult is the subset of the search response we read.
// Nominatim returns coordinates as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode implements Geocoder against the /search endpoint, asking for
// a single best match.
func (c *NominatimClient) Geocode(ctx context.Context, location string) (Point, bool, error) {
	q := url.Values{}
	q.Set("q", location)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.base+"/search?"+q.Encode(), nil)
	if err != nil {
		return Point{}, false, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", "argus-campaign-analysis")

	resp, err := c.client.Do(req)
	if err != nil {
		return Point{}, false, fmt.Errorf("geocode %q: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return Point{}, false, fmt.Errorf("geocode %q: status %d", location, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Point{}, false, fmt.Errorf("decode geocode response for %q: %w", location, err)
	}
	if len(results) == 0 {
		return Point{}, false, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Point{}, false, fmt.Errorf("parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Point{}, false, fmt.Errorf("parse longitude %q: %w", results[0].Lon, err)
	}

	return Point{Lat: lat, Lon: lon}, true, nil
}
