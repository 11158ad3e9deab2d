package config

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/cognicore/argus/pkg/argus/geo"
	"github.com/cognicore/argus/pkg/argus/pipeline"
	"github.com/cognicore/argus/pkg/argus/sentiment"
)

// Default geocoder behavior when the config leaves fields zero.
const (
	defaultGeocodeTimeout = 10 * time.Second
	defaultGeocodeRate    = 1.0 // calls per second, remote usage policy
)

// Loader constructs engine components from a Config.
type Loader struct {
	Config *Config
	Logger *slog.Logger
}

// Components holds everything the CLIs need to run the engine.
type Components struct {
	Engine  *pipeline.Engine
	Outputs OutputConfig
}

// Load builds the sentiment scorer, the optional geo resolver, and the
// engine itself.
func (l *Loader) Load() (*Components, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var scorer sentiment.Scorer
	if l.Config.Lexicon != "" {
		lex, err := sentiment.LoadLexicon(l.Config.Lexicon)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		scorer = lex
	} else {
		scorer = sentiment.DefaultLexicon()
	}

	var resolver *geo.Resolver
	if gc := l.Config.Geocoder; gc.Endpoint != "" {
		timeout := defaultGeocodeTimeout
		if gc.TimeoutSeconds > 0 {
			timeout = time.Duration(gc.TimeoutSeconds) * time.Second
		}
		callRate := defaultGeocodeRate
		if gc.RatePerSecond > 0 {
			callRate = gc.RatePerSecond
		}

		client := geo.NewNominatimClient(gc.Endpoint, timeout, logger)
		cache := geo.NewCache(gc.CacheCapacity, 0)
		limiter := rate.NewLimiter(rate.Limit(callRate), 1)
		resolver = geo.NewResolver(client, cache, limiter, logger)
	}

	engine := pipeline.New(pipeline.Options{
		Sentiment:     scorer,
		Resolver:      resolver,
		CommunitySeed: l.Config.CommunitySeed,
		Logger:        logger,
	})

	return &Components{Engine: engine, Outputs: l.Config.Outputs}, nil
}
