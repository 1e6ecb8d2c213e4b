package pagelens

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration with friendlier JSON/YAML decoding.
// It accepts Go duration strings ("30s", "1.5m") and bare numbers, which
// are interpreted as milliseconds.
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return d.decode(v)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if n, err := strconv.ParseFloat(node.Value, 64); err == nil {
		return d.decode(n)
	}
	return d.decode(node.Value)
}

func (d *Duration) decode(v any) error {
	switch v := v.(type) {
	case float64:
		*d = Duration(time.Duration(v) * time.Millisecond)
		return nil
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return Errorf(EINVALID, "invalid duration %q: %v", v, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return Errorf(EINVALID, "invalid duration value %v", v)
	}
}

// Config holds the tunable knobs for a scraping run. Every field can be
// overridden per request via Override; zero-valued overrides inherit the
// defaults from DefaultConfig.
type Config struct {
	// UserAgents is the pool the fetcher picks from at random.
	UserAgents []string `json:"userAgents" yaml:"user_agents"`

	// RetryAttempts is the number of retries after a failed fetch
	// (so RetryAttempts=2 means up to 3 total attempts).
	RetryAttempts int `json:"retryAttempts" yaml:"retry_attempts"`

	// RetryDelay is the base delay between attempts; it doubles after
	// every failure.
	RetryDelay Duration `json:"retryDelay" yaml:"retry_delay"`

	// Timeout bounds a single fetch including retries' individual requests.
	Timeout Duration `json:"timeout" yaml:"timeout"`

	// MaxConcurrentRequests caps in-flight outbound requests process-wide.
	MaxConcurrentRequests int `json:"maxConcurrentRequests" yaml:"max_concurrent_requests"`

	// RateLimitDelay throttles successive outbound requests.
	RateLimitDelay Duration `json:"rateLimitDelay" yaml:"rate_limit_delay"`

	// ExecuteJS is accepted for API compatibility but always treated as
	// false; the engine has no JavaScript runtime.
	ExecuteJS bool `json:"executeJs" yaml:"execute_js"`

	// FollowRedirects controls whether HTTP redirects are followed.
	FollowRedirects bool `json:"followRedirects" yaml:"follow_redirects"`

	// RespectRobotsTxt gates fetches behind the target's robots.txt rules.
	RespectRobotsTxt bool `json:"respectRobotsTxt" yaml:"respect_robots_txt"`

	// CacheTTL is how long fetched pages stay valid in the page cache.
	// Zero disables caching.
	CacheTTL Duration `json:"cacheDuration" yaml:"cache_duration"`
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{
		UserAgents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
		},
		RetryAttempts:         2,
		RetryDelay:            Duration(time.Second),
		Timeout:               Duration(30 * time.Second),
		MaxConcurrentRequests: 4,
		RateLimitDelay:        Duration(500 * time.Millisecond),
		ExecuteJS:             false,
		FollowRedirects:       true,
		RespectRobotsTxt:      true,
		CacheTTL:              Duration(15 * time.Minute),
	}
}

// Override holds per-request configuration overrides. Nil fields inherit
// the base configuration.
type Override struct {
	UserAgents            []string  `json:"userAgents"`
	RetryAttempts         *int      `json:"retryAttempts"`
	RetryDelay            *Duration `json:"retryDelay"`
	Timeout               *Duration `json:"timeout"`
	MaxConcurrentRequests *int      `json:"maxConcurrentRequests"`
	RateLimitDelay        *Duration `json:"rateLimitDelay"`
	ExecuteJS             *bool     `json:"executeJs"`
	FollowRedirects       *bool     `json:"followRedirects"`
	RespectRobotsTxt      *bool     `json:"respectRobotsTxt"`
	CacheTTL              *Duration `json:"cacheDuration"`
}

// Apply returns a copy of base with the override's non-nil fields applied.
// ExecuteJS is deliberately never enabled regardless of the override.
func (o *Override) Apply(base Config) Config {
	cfg := base
	if o == nil {
		return cfg
	}
	if len(o.UserAgents) > 0 {
		cfg.UserAgents = o.UserAgents
	}
	if o.RetryAttempts != nil {
		cfg.RetryAttempts = *o.RetryAttempts
	}
	if o.RetryDelay != nil {
		cfg.RetryDelay = *o.RetryDelay
	}
	if o.Timeout != nil {
		cfg.Timeout = *o.Timeout
	}
	if o.MaxConcurrentRequests != nil {
		cfg.MaxConcurrentRequests = *o.MaxConcurrentRequests
	}
	if o.RateLimitDelay != nil {
		cfg.RateLimitDelay = *o.RateLimitDelay
	}
	if o.FollowRedirects != nil {
		cfg.FollowRedirects = *o.FollowRedirects
	}
	if o.RespectRobotsTxt != nil {
		cfg.RespectRobotsTxt = *o.RespectRobotsTxt
	}
	if o.CacheTTL != nil {
		cfg.CacheTTL = *o.CacheTTL
	}
	cfg.ExecuteJS = false
	return cfg
}

// LoadConfig reads a YAML configuration file and merges it over the
// defaults. Missing fields keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, Errorf(EINVALID, "parse config %q: %v", path, err)
	}
	if len(cfg.UserAgents) == 0 {
		cfg.UserAgents = DefaultConfig().UserAgents
	}
	cfg.ExecuteJS = false
	return cfg, nil
}
