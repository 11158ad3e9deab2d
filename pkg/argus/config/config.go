package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/argus/pkg/argus/internalerr"
)

// Config is the engine configuration file.
type Config struct {
	// Lexicon is the path to a sentiment lexicon YAML file. Empty
	// means the built-in lexicon.
	Lexicon string `yaml:"lexicon"`

	// CommunitySeed seeds community detection. Zero means the engine
	// default.
	CommunitySeed int64 `yaml:"community_seed"`

	Geocoder GeocoderConfig `yaml:"geocoder"`
	Outputs  OutputConfig   `yaml:"outputs"`
}

// GeocoderConfig configures the external geocoding lookup. An empty
// endpoint disables the stage.
type GeocoderConfig struct {
	Endpoint       string  `yaml:"endpoint"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	RatePerSecond  float64 `yaml:"rate_per_second"`
	CacheCapacity  int     `yaml:"cache_capacity"`
}

// OutputConfig names the run artifacts. Empty paths skip the
// corresponding write.
type OutputConfig struct {
	Analyzed string `yaml:"analyzed"`
	GEXF     string `yaml:"gexf"`
	Viewer   string `yaml:"viewer"`
}

// Load reads a Config from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Geocoder.Endpoint != "" && cfg.Geocoder.RatePerSecond < 0 {
		return nil, fmt.Errorf("%w: geocoder rate must be non-negative", internalerr.ErrInvalidConfig)
	}

	return &cfg, nil
}

// Keywords is the collector keyword list configuration.
type Keywords struct {
	Terms []string `yaml:"terms"`
}

// LoadKeywords loads the collector keyword list from a YAML file.
func LoadKeywords(path string) (*Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keywords %s: %w", path, err)
	}

	var kw Keywords
	if err := yaml.Unmarshal(data, &kw); err != nil {
		return nil, fmt.Errorf("parse keywords %s: %w", path, err)
	}
	if len(kw.Terms) == 0 {
		return nil, fmt.Errorf("%w: keyword list is empty", internalerr.ErrInvalidConfig)
	}

	return &kw, nil
}
