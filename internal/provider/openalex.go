// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"net/url"
	"strings"

	"github.com/pdiddy/paper-metadata/pkg/types"
)

// OpenAlexName identifies the OpenAlex year provider.
const OpenAlexName = "openalex"

const openAlexDefaultBase = "https://api.openalex.org/works/"

// OpenAlex recovers publication years from the OpenAlex works API. It is
// an alternative to Crossref for the fallback step.
type OpenAlex struct {
	c       *client
	contact string
}

// NewOpenAlex returns an OpenAlex adapter. The contact, when set, is sent
// as the mailto parameter.
func NewOpenAlex(contact string, cfg types.ProviderConfig, opts ...Option) *OpenAlex {
	return &OpenAlex{
		c:       newClient(OpenAlexName, openAlexDefaultBase, cfg, opts),
		contact: strings.TrimSpace(contact),
	}
}

// Name returns the provider identifier.
func (o *OpenAlex) Name() string { return OpenAlexName }

// FetchYear looks the work up by its doi.org URL and returns
// publication_year, or nil when OpenAlex has none.
func (o *OpenAlex) FetchYear(ctx context.Context, doi string) (*int, error) {
	apiURL := o.c.baseURL + "https://doi.org/" + escapeDOI(doi)
	if o.contact != "" {
		apiURL += "?mailto=" + url.QueryEscape(o.contact)
	}

	var oa openAlexResponse
	if err := o.c.get(ctx, apiURL, nil, &oa); err != nil {
		return nil, err
	}
	if oa.PublicationYear == nil || *oa.PublicationYear <= 0 {
		return nil, nil
	}
	return oa.PublicationYear, nil
}

// openAlexResponse captures the fields we need from an OpenAlex work record.
type openAlexResponse struct {
	PublicationYear *int `json:"publication_year"`
}
