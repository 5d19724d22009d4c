// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-metadata/internal/availability"
	"github.com/pdiddy/paper-metadata/internal/provider"
	"github.com/pdiddy/paper-metadata/pkg/types"
)

// providerServer serves both provider APIs under distinct prefixes and
// counts calls per prefix.
type providerServer struct {
	*httptest.Server
	unpaywallCalls int32
	fallbackCalls  int32
}

func newProviderServer(t *testing.T, unpaywall, fallback http.HandlerFunc) *providerServer {
	t.Helper()
	ps := &providerServer{}
	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/unpaywall/"):
			atomic.AddInt32(&ps.unpaywallCalls, 1)
			unpaywall(w, r)
		case strings.HasPrefix(r.URL.Path, "/fallback/"):
			atomic.AddInt32(&ps.fallbackCalls, 1)
			fallback(w, r)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ps.Close)
	return ps
}

func testConfig(baseURL string, fallback types.FallbackProvider) types.ResolverConfig {
	hc := types.HTTPConfig{Timeout: 200 * time.Millisecond, UserAgent: "paper-metadata-test/0.1"}
	return types.ResolverConfig{
		Contact:          "ops@example.org",
		Primary:          types.ProviderConfig{HTTPConfig: hc, BaseURL: baseURL + "/unpaywall/"},
		FallbackProvider: fallback,
		Fallback:         types.ProviderConfig{HTTPConfig: hc, BaseURL: baseURL + "/fallback/"},
	}
}

func TestFromConfigEndToEnd(t *testing.T) {
	ps := newProviderServer(t,
		func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"doi":"10.1126/science.1234567","title":"A result","year":null,"is_oa":true,
				"z_authors":[{"given":"Ada","family":"Lovelace"}],"journal_name":"Science",
				"oa_locations":[{"url":"https://example.org/landing","url_for_pdf":"https://example.org/paper.pdf"}]}`)
		},
		func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"message":{"issued":{"date-parts":[[2013,6,1]]}}}`)
		},
	)

	r, err := FromConfig(testConfig(ps.URL, types.FallbackCrossref), zap.NewNop(), provider.WithHTTPClient(ps.Client()))
	require.NoError(t, err)

	rec, err := r.Resolve(context.Background(), "https://www.science.org/doi/10.1126/science.1234567?utm_source=x")
	require.NoError(t, err)

	assert.Equal(t, "10.1126/science.1234567", rec.DOI)
	assert.Equal(t, "A result", rec.Title)
	assert.Equal(t, []string{"Ada Lovelace"}, rec.Authors)
	require.NotNil(t, rec.Year)
	assert.Equal(t, 2013, *rec.Year)
	assert.Equal(t, types.SourceSet{availability.SourceOpenAccess, availability.SourceLegacyMirror}, rec.AvailableSources)
	assert.Empty(t, rec.ProviderErrors)
	assert.Equal(t, int32(1), atomic.LoadInt32(&ps.unpaywallCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&ps.fallbackCalls))
}

func TestFromConfigPrimaryTimeout(t *testing.T) {
	ps := newProviderServer(t,
		func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		},
		func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"publication_year": 2015}`)
		},
	)

	r, err := FromConfig(testConfig(ps.URL, types.FallbackOpenAlex), nil, provider.WithHTTPClient(ps.Client()))
	require.NoError(t, err)

	rec, err := r.Resolve(context.Background(), "10.1038/nature12373")
	require.NoError(t, err)

	require.NotNil(t, rec.Year)
	assert.Equal(t, 2015, *rec.Year)
	assert.Equal(t, types.SourceSet{availability.SourceLegacyMirror}, rec.AvailableSources)
	require.Len(t, rec.ProviderErrors, 1)
	assert.Equal(t, provider.UnpaywallName, rec.ProviderErrors[0].Provider)
	assert.Contains(t, rec.ProviderErrors[0].Cause, "timed out")
	assert.Empty(t, rec.Error)
}

func TestFromConfigErrors(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1", types.FallbackCrossref)
	cfg.Contact = ""
	_, err := FromConfig(cfg, nil)
	assert.ErrorIs(t, err, provider.ErrMissingContact)

	cfg = testConfig("http://127.0.0.1:1", "semantic_scholar")
	_, err = FromConfig(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown fallback provider")
}
