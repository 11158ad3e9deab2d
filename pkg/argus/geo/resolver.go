package geo

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/cognicore/argus/pkg/argus/post"
)

// Resolver walks the distinct non-empty author locations in a record
// set through a throttled geocoder, then maps cached coordinates back
// onto every post.
type Resolver struct {
	geocoder Geocoder
	cache    *Cache
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewResolver creates a resolver. The limiter enforces the remote
// service's usage policy; pass rate.NewLimiter(rate.Limit(1), 1) for
// the conventional one call per second.
func NewResolver(g Geocoder, cache *Cache, limiter *rate.Limiter, logger *slog.Logger) *Resolver {
	return &Resolver{geocoder: g, cache: cache, limiter: limiter, logger: logger}
}

// Resolve geocodes every distinct location once and writes coordinates
// onto the posts in place. Lookup failures are logged and cached as
// unresolved; they never abort the run. Posts with no location, or
// whose location is unresolved, keep nil coordinates.
func (r *Resolver) Resolve(ctx context.Context, posts []post.Post) error {
	// First appearance order keeps the external call sequence
	// deterministic for a given input.
	var distinct []string
	seen := make(map[string]struct{})
	for i := range posts {
		loc := posts[i].AuthorLocation
		if loc == "" {
			continue
		}
		if _, ok := seen[loc]; ok {
			continue
		}
		seen[loc] = struct{}{}
		distinct = append(distinct, loc)
	}

	for _, loc := range distinct {
		if _, ok := r.cache.Get(loc); ok {
			continue
		}

		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}

		p, found, err := r.geocoder.Geocode(ctx, loc)
		if err != nil {
			r.logger.Warn("geocode failed, caching unresolved", "location", loc, "err", err)
			r.cache.PutUnresolved(loc)
			continue
		}
		if !found {
			r.cache.PutUnresolved(loc)
			continue
		}
		r.cache.PutResolved(loc, p)
	}

	for i := range posts {
		loc := posts[i].AuthorLocation
		if loc == "" {
			continue
		}
		entry, ok := r.cache.Get(loc)
		if !ok || !entry.Resolved {
			continue
		}
		lat, lon := entry.Point.Lat, entry.Point.Lon
		posts[i].Latitude = &lat
		posts[i].Longitude = &lon
	}

	return nil
}
