// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-metadata/pkg/types"
)

func TestCrossrefFetchYear(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantYear int // 0 means nil
	}{
		{
			name:     "published",
			response: `{"status":"ok","message":{"published":{"date-parts":[[2015,3,12]]},"created":{"date-parts":[[2014,11,2]]}}}`,
			wantYear: 2015,
		},
		{
			name:     "issued only",
			response: `{"status":"ok","message":{"issued":{"date-parts":[[2019]]}}}`,
			wantYear: 2019,
		},
		{
			name:     "null parts fall through to created",
			response: `{"status":"ok","message":{"issued":{"date-parts":[[null]]},"created":{"date-parts":[[2022,1,5]]}}}`,
			wantYear: 2022,
		},
		{
			name:     "print preferred over earlier online",
			response: `{"status":"ok","message":{"published-online":{"date-parts":[[2015,12,1]]},"published-print":{"date-parts":[[2016,2]]}}}`,
			wantYear: 2016,
		},
		{
			name:     "no dates",
			response: `{"status":"ok","message":{"title":["Untitled"]}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotUA string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotUA = r.Header.Get("User-Agent")
				fmt.Fprint(w, tt.response)
			}))
			defer ts.Close()

			c := NewCrossref("ops@example.org", types.ProviderConfig{
				HTTPConfig: types.HTTPConfig{Timeout: 2 * time.Second, UserAgent: "paper-metadata-test/0.1"},
				BaseURL:    ts.URL + "/works/",
			}, WithHTTPClient(ts.Client()))

			year, err := c.FetchYear(context.Background(), "10.1126/science.1234567")
			require.NoError(t, err)
			assert.Equal(t, "/works/10.1126/science.1234567", gotPath)
			assert.Equal(t, "paper-metadata-test/0.1 (mailto:ops@example.org)", gotUA)

			if tt.wantYear == 0 {
				assert.Nil(t, year)
				return
			}
			require.NotNil(t, year)
			assert.Equal(t, tt.wantYear, *year)
		})
	}
}

func TestCrossrefNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "Resource not found.")
	}))
	defer ts.Close()

	c := NewCrossref("", types.ProviderConfig{BaseURL: ts.URL}, WithHTTPClient(ts.Client()))
	_, err := c.FetchYear(context.Background(), "10.1126/nonexistent")
	require.Error(t, err)

	var ue *UnavailableError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, CrossrefName, ue.Provider)
	assert.Contains(t, err.Error(), "HTTP 404")
}
