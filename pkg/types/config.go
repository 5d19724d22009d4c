package types

import "time"

// HTTPConfig holds shared HTTP settings used by every provider adapter.
type HTTPConfig struct {
	// Timeout bounds a single provider call, including any wait on the
	// rate limiter.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-metadata/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ProviderConfig holds settings for one external metadata provider.
type ProviderConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the provider API root. Tests point it at httptest servers.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// RateLimit caps requests per second to the provider. Zero disables
	// the limiter.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`
}

// FallbackProvider selects the service used to recover a missing year.
type FallbackProvider string

const (
	FallbackCrossref FallbackProvider = "crossref"
	FallbackOpenAlex FallbackProvider = "openalex"
)

// ResolverConfig groups everything needed to construct the pipeline.
// It is built once at process start and passed explicitly to adapters.
type ResolverConfig struct {
	// Contact is the operator e-mail address sent to providers to satisfy
	// their usage policies. Required.
	Contact string `json:"contact" yaml:"contact"`

	// Primary configures the open-access provider (Unpaywall).
	Primary ProviderConfig `json:"primary" yaml:"primary"`

	// FallbackProvider selects crossref (default) or openalex.
	FallbackProvider FallbackProvider `json:"fallback_provider" yaml:"fallback_provider"`

	// Fallback configures the selected year provider.
	Fallback ProviderConfig `json:"fallback" yaml:"fallback"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}
