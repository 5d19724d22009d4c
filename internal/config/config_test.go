// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-metadata/internal/provider"
	"github.com/pdiddy/paper-metadata/pkg/types"
)

// newViper returns an isolated viper with defaults applied. Environment
// variables that could leak in from the host are cleared.
func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	t.Setenv(LegacyContactEnv, "")
	t.Setenv(EnvPrefix+"_CONTACT", "")
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	v := newViper(t)
	v.Set(KeyContact, "ops@example.org")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "ops@example.org", cfg.Contact)
	assert.Equal(t, types.FallbackCrossref, cfg.FallbackProvider)
	assert.Equal(t, provider.DefaultTimeout, cfg.Primary.Timeout)
	assert.Equal(t, provider.DefaultTimeout, cfg.Fallback.Timeout)
	assert.Equal(t, provider.DefaultUserAgent, cfg.Primary.UserAgent)
	assert.Equal(t, 10.0, cfg.Primary.RateLimit)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMissingContact(t *testing.T) {
	v := newViper(t)

	_, err := Load(v)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "contact address is required")
}

func TestLoadInvalidContact(t *testing.T) {
	v := newViper(t)
	v.Set(KeyContact, "not an address")

	_, err := Load(v)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestLoadContactWithDisplayName(t *testing.T) {
	v := newViper(t)
	v.Set(KeyContact, "Lab Ops <ops@example.org>")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.org", cfg.Contact)
}

func TestLoadContactFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "prefixed variable",
			env:  map[string]string{EnvPrefix + "_CONTACT": "prefixed@example.org"},
			want: "prefixed@example.org",
		},
		{
			name: "legacy variable",
			env:  map[string]string{LegacyContactEnv: "legacy@example.org"},
			want: "legacy@example.org",
		},
		{
			name: "prefixed wins over legacy",
			env: map[string]string{
				EnvPrefix + "_CONTACT": "prefixed@example.org",
				LegacyContactEnv:       "legacy@example.org",
			},
			want: "prefixed@example.org",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper(t)
			for k, val := range tt.env {
				t.Setenv(k, val)
			}

			cfg, err := Load(v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Contact)
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	v := newViper(t)
	v.Set(KeyContact, "ops@example.org")
	v.Set(KeyTimeout, "5s")
	v.Set(KeyPrimaryTimeout, "3s")
	v.Set(KeyFallbackTimeout, "7s")
	v.Set(KeyFallbackProvider, "OpenAlex")
	v.Set(KeyUnpaywallURL, "http://unpaywall.test/v2/")
	v.Set(KeyCrossrefURL, "http://crossref.test/works/")
	v.Set(KeyOpenAlexURL, "http://openalex.test/works/")
	v.Set(KeyRateLimit, 2.5)
	v.Set(KeyLogLevel, "debug")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, types.FallbackOpenAlex, cfg.FallbackProvider)
	assert.Equal(t, 3*time.Second, cfg.Primary.Timeout)
	assert.Equal(t, 7*time.Second, cfg.Fallback.Timeout)
	assert.Equal(t, "http://unpaywall.test/v2/", cfg.Primary.BaseURL)
	assert.Equal(t, "http://openalex.test/works/", cfg.Fallback.BaseURL)
	assert.Equal(t, 2.5, cfg.Fallback.RateLimit)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"unknown fallback", KeyFallbackProvider, "semantic_scholar"},
		{"zero timeout", KeyTimeout, "0s"},
		{"negative rate limit", KeyRateLimit, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper(t)
			v.Set(KeyContact, "ops@example.org")
			v.Set(tt.key, tt.val)

			_, err := Load(v)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paper-metadata.yaml")
	require.NoError(t, os.WriteFile(path, []byte("contact: file@example.org\nfallback_timeout: 4s\n"), 0o644))

	v := newViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "file@example.org", cfg.Contact)
	assert.Equal(t, 4*time.Second, cfg.Fallback.Timeout)
	assert.Equal(t, provider.DefaultTimeout, cfg.Primary.Timeout)
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv(LegacyContactEnv, "")
	os.Unsetenv(LegacyContactEnv)

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(LegacyContactEnv+"=dotenv@example.org\n"), 0o644))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "dotenv@example.org", os.Getenv(LegacyContactEnv))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
