package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net"
	"path/filepath"
	"time"

	"github.com/9seconds/nearby/providers"
	"github.com/hjson/hjson-go"
)

const (
	DefaultListen                             = "127.0.0.1:8000"
	DefaultHTTPTimeout                        = 5 * time.Second
	DefaultRateLimitInterval                  = 100 * time.Millisecond
	DefaultRateLimitBurst                     = 10
	DefaultCircuitBreakerOpenThreshold        = 5
	DefaultCircuitBreakerHalfOpenTimeout      = time.Minute
	DefaultCircuitBreakerResetFailuresTimeout = 20 * time.Second
	DefaultCacheTTL                           = time.Hour
	DefaultFallbackLatitude                   = 24.7136
	DefaultFallbackLongitude                  = 46.6753
)

var errNeighborhoodsPathIsRequired = errors.New("neighborhoods_path is required")

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var v interface{}

	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("cannot unmarshal duration: %w", err)
	}

	vv, ok := v.(string)
	if !ok {
		return fmt.Errorf("incorrect duration: %v", v)
	}

	dur, err := time.ParseDuration(vv)
	if err != nil {
		return fmt.Errorf("cannot parse duration: %w", err)
	}

	d.Duration = dur

	return nil
}

type config struct {
	Listen            string           `json:"listen"`
	NeighborhoodsPath string           `json:"neighborhoods_path"`
	Fallback          *configFallback  `json:"fallback"`
	BasicAuth         configBasicAuth  `json:"basic_auth"`
	Geolocator        configGeolocator `json:"geolocator"`
}

func (c config) GetListen() string {
	if c.Listen != "" {
		return c.Listen
	}

	return DefaultListen
}

func (c config) GetNeighborhoodsPath() string {
	return c.NeighborhoodsPath
}

func (c config) GetFallback() (float64, float64) {
	if c.Fallback == nil {
		return DefaultFallbackLatitude, DefaultFallbackLongitude
	}

	return c.Fallback.Latitude, c.Fallback.Longitude
}

func (c config) GetBasicAuth() (string, string, bool) {
	return c.BasicAuth.User, c.BasicAuth.Password, c.BasicAuth.User != "" || c.BasicAuth.Password != ""
}

func (c config) GetGeolocator() configGeolocator {
	return c.Geolocator
}

type configFallback struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type configBasicAuth struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

type configGeolocator struct {
	Name                               string            `json:"name"`
	Endpoint                           string            `json:"endpoint"`
	HTTPTimeout                        duration          `json:"http_timeout"`
	LookupTimeout                      duration          `json:"lookup_timeout"`
	RateLimitInterval                  duration          `json:"rate_limit_interval"`
	RateLimitBurst                     uint              `json:"rate_limit_burst"`
	CircuitBreakerOpenThreshold        uint32            `json:"circuit_breaker_open_threshold"`
	CircuitBreakerHalfOpenTimeout      duration          `json:"circuit_breaker_half_open_timeout"`
	CircuitBreakerResetFailuresTimeout duration          `json:"circuit_breaker_reset_failures_timeout"`
	CacheSize                          uint              `json:"cache_size"`
	CacheTTL                           duration          `json:"cache_ttl"`
	SpecificParameters                 map[string]string `json:"specific_parameters"`
}

func (c configGeolocator) GetName() string {
	if c.Name != "" {
		return c.Name
	}

	return providers.NameIPAPI
}

func (c configGeolocator) GetEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}

	return providers.IPAPIDefaultEndpoint
}

func (c configGeolocator) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeout.Duration == 0 {
		return DefaultHTTPTimeout
	}

	return c.HTTPTimeout.Duration
}

// GetLookupTimeout returns zero if nothing is set, resolver knows its
// own default.
func (c configGeolocator) GetLookupTimeout() time.Duration {
	return c.LookupTimeout.Duration
}

func (c configGeolocator) GetRateLimitInterval() time.Duration {
	if c.RateLimitInterval.Duration == 0 {
		return DefaultRateLimitInterval
	}

	return c.RateLimitInterval.Duration
}

func (c configGeolocator) GetRateLimitBurst() int {
	if c.RateLimitBurst == 0 {
		return DefaultRateLimitBurst
	}

	return int(c.RateLimitBurst)
}

func (c configGeolocator) GetCircuitBreakerOpenThreshold() uint32 {
	if c.CircuitBreakerOpenThreshold == 0 {
		return DefaultCircuitBreakerOpenThreshold
	}

	return c.CircuitBreakerOpenThreshold
}

func (c configGeolocator) GetCircuitBreakerHalfOpenTimeout() time.Duration {
	if c.CircuitBreakerHalfOpenTimeout.Duration == 0 {
		return DefaultCircuitBreakerHalfOpenTimeout
	}

	return c.CircuitBreakerHalfOpenTimeout.Duration
}

func (c configGeolocator) GetCircuitBreakerResetFailuresTimeout() time.Duration {
	if c.CircuitBreakerResetFailuresTimeout.Duration == 0 {
		return DefaultCircuitBreakerResetFailuresTimeout
	}

	return c.CircuitBreakerResetFailuresTimeout.Duration
}

func (c configGeolocator) GetCacheSize() uint {
	return c.CacheSize
}

func (c configGeolocator) GetCacheTTL() time.Duration {
	if c.CacheTTL.Duration == 0 {
		return DefaultCacheTTL
	}

	return c.CacheTTL.Duration
}

func (c configGeolocator) GetSpecificParameters() map[string]string {
	if c.SpecificParameters == nil {
		return map[string]string{}
	}

	return c.SpecificParameters
}

func parseConfig(path string) (*config, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	return parseConfigContent(content, filepath.Dir(path))
}

// parseConfigContent parses HJSON config. Relative paths are resolved
// against baseDir.
func parseConfigContent(content []byte, baseDir string) (*config, error) {
	conf := config{}
	rawMap := map[string]interface{}{}

	if err := hjson.Unmarshal(content, &rawMap); err != nil {
		return nil, fmt.Errorf("cannot parse json: %w", err)
	}

	rawBytes, _ := json.Marshal(rawMap)

	if err := json.Unmarshal(rawBytes, &conf); err != nil {
		return nil, fmt.Errorf("incorrect config structure: %w", err)
	}

	if _, _, err := net.SplitHostPort(conf.GetListen()); err != nil {
		return nil, fmt.Errorf("incorrect host:port for listen: %w", err)
	}

	if conf.NeighborhoodsPath == "" {
		return nil, errNeighborhoodsPathIsRequired
	}

	if !filepath.IsAbs(conf.NeighborhoodsPath) {
		conf.NeighborhoodsPath = filepath.Join(baseDir, conf.NeighborhoodsPath)
	}

	switch conf.Geolocator.GetName() {
	case providers.NameIPAPI, providers.NameIPInfo, providers.NameIPStack, providers.NameKeyCDN:
	case providers.NameMaxmind:
		params := conf.Geolocator.GetSpecificParameters()

		if params["database_path"] == "" {
			return nil, fmt.Errorf("incorrect maxmind geolocator: %w", providers.ErrDatabasePathIsRequired)
		}

		if !filepath.IsAbs(params["database_path"]) {
			params["database_path"] = filepath.Join(baseDir, params["database_path"])
		}

		conf.Geolocator.SpecificParameters = params
	default:
		return nil, fmt.Errorf("unsupported geolocator name: %s", conf.Geolocator.GetName())
	}

	return &conf, nil
}
