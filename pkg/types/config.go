package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scb-match/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// RegistryConfig holds settings for the company-register API client.
type RegistryConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the register search endpoint. Empty selects the
	// production SCB endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// CertFile and KeyFile are the client certificate pair the register
	// API requires. A combined PEM may be given as CertFile alone.
	CertFile string `json:"cert_file,omitempty" yaml:"cert_file,omitempty"`
	KeyFile  string `json:"key_file,omitempty" yaml:"key_file,omitempty"`

	// RateLimitDelay is the minimum spacing between register calls,
	// applied across the whole run (default 500ms).
	RateLimitDelay time.Duration `json:"rate_limit_delay" yaml:"rate_limit_delay"`

	// MaxRetries is the total attempt budget per search across rate
	// limiting, server errors, and network failures (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// BackoffBase is the initial retry delay (default 500ms).
	BackoffBase time.Duration `json:"backoff_base" yaml:"backoff_base"`

	// BackoffFactor multiplies the retry delay after each failed
	// attempt (default 2.0).
	BackoffFactor float64 `json:"backoff_factor" yaml:"backoff_factor"`
}

// MatchConfig holds settings for scoring and acceptance.
type MatchConfig struct {
	// BaseThreshold is the minimum fuzzy score for acceptance before
	// the length-dependent floor is applied (default 85).
	BaseThreshold int `json:"base_threshold" yaml:"base_threshold"`

	// OnlyTypes restricts resolution to source records of these types
	// (e.g. startup, corporation, supplier, ngo). Empty means all.
	OnlyTypes []string `json:"only_types,omitempty" yaml:"only_types,omitempty"`
}

// StoreConfig holds settings for the SQLite database.
type StoreConfig struct {
	// DBPath is the path to the companies database.
	DBPath string `json:"db_path" yaml:"db_path"`
}

// PipelineConfig groups all component configurations.
type PipelineConfig struct {
	Registry RegistryConfig `json:"registry" yaml:"registry"`
	Match    MatchConfig    `json:"match" yaml:"match"`
	Store    StoreConfig    `json:"store" yaml:"store"`
}
