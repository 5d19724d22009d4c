// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config builds the ResolverConfig from viper settings, the
// environment, and an optional .env file. It runs once at process start;
// a missing contact address stops the process before any provider exists.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/mail"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-metadata/internal/provider"
	"github.com/pdiddy/paper-metadata/pkg/types"
)

// ErrConfiguration marks configuration problems that are fatal at startup.
var ErrConfiguration = errors.New("configuration error")

// EnvPrefix is the prefix for environment overrides (PAPER_METADATA_CONTACT).
const EnvPrefix = "PAPER_METADATA"

// LegacyContactEnv is honored as a fallback for the contact address.
const LegacyContactEnv = "SCIHUB_CLI_EMAIL"

// Keys understood by Load.
const (
	KeyContact          = "contact"
	KeyTimeout          = "timeout"
	KeyPrimaryTimeout   = "primary_timeout"
	KeyFallbackTimeout  = "fallback_timeout"
	KeyFallbackProvider = "fallback_provider"
	KeyUnpaywallURL     = "unpaywall_url"
	KeyCrossrefURL      = "crossref_url"
	KeyOpenAlexURL      = "openalex_url"
	KeyRateLimit        = "rate_limit"
	KeyUserAgent        = "user_agent"
	KeyLogLevel         = "log_level"
	KeySecretsDir       = "secrets_dir"
)

const (
	defaultRateLimit = 10.0
	defaultLogLevel  = "info"
)

// SetDefaults registers default values and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTimeout, provider.DefaultTimeout)
	v.SetDefault(KeyFallbackProvider, string(types.FallbackCrossref))
	v.SetDefault(KeyRateLimit, defaultRateLimit)
	v.SetDefault(KeyUserAgent, provider.DefaultUserAgent)
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeySecretsDir, DefaultSecretsDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyContact, EnvPrefix+"_CONTACT", LegacyContactEnv)
}

// LoadDotEnv loads environment variables from path. A missing file is not
// an error; variables already set in the environment win.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load validates the settings in v and returns the resolver configuration.
// Every failure wraps ErrConfiguration.
func Load(v *viper.Viper) (types.ResolverConfig, error) {
	contact, err := parseContact(v.GetString(KeyContact))
	if err != nil {
		return types.ResolverConfig{}, err
	}

	fallbackName := types.FallbackProvider(strings.ToLower(strings.TrimSpace(v.GetString(KeyFallbackProvider))))
	if fallbackName == "" {
		fallbackName = types.FallbackCrossref
	}
	if fallbackName != types.FallbackCrossref && fallbackName != types.FallbackOpenAlex {
		return types.ResolverConfig{}, fmt.Errorf("%w: %s must be %q or %q, got %q",
			ErrConfiguration, KeyFallbackProvider, types.FallbackCrossref, types.FallbackOpenAlex, fallbackName)
	}

	timeout := v.GetDuration(KeyTimeout)
	if timeout <= 0 {
		return types.ResolverConfig{}, fmt.Errorf("%w: %s must be positive", ErrConfiguration, KeyTimeout)
	}
	rateLimit := v.GetFloat64(KeyRateLimit)
	if rateLimit < 0 {
		return types.ResolverConfig{}, fmt.Errorf("%w: %s must not be negative", ErrConfiguration, KeyRateLimit)
	}

	base := types.HTTPConfig{Timeout: timeout, UserAgent: v.GetString(KeyUserAgent)}

	primary := types.ProviderConfig{HTTPConfig: base, BaseURL: v.GetString(KeyUnpaywallURL), RateLimit: rateLimit}
	if d := v.GetDuration(KeyPrimaryTimeout); d > 0 {
		primary.Timeout = d
	}

	fallbackURL := v.GetString(KeyCrossrefURL)
	if fallbackName == types.FallbackOpenAlex {
		fallbackURL = v.GetString(KeyOpenAlexURL)
	}
	fallback := types.ProviderConfig{HTTPConfig: base, BaseURL: fallbackURL, RateLimit: rateLimit}
	if d := v.GetDuration(KeyFallbackTimeout); d > 0 {
		fallback.Timeout = d
	}

	return types.ResolverConfig{
		Contact:          contact,
		Primary:          primary,
		FallbackProvider: fallbackName,
		Fallback:         fallback,
		LogLevel:         v.GetString(KeyLogLevel),
	}, nil
}

// parseContact accepts a bare address or "Name <address>" and returns the
// bare address.
func parseContact(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: contact address is required (set %s_CONTACT, %s, or %q in the config file)",
			ErrConfiguration, EnvPrefix, LegacyContactEnv, KeyContact)
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid contact address %q: %v", ErrConfiguration, raw, err)
	}
	return addr.Address, nil
}
