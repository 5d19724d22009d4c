// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"net/http"
	"strings"

	"github.com/pdiddy/paper-metadata/pkg/types"
)

// CrossrefName identifies the Crossref year provider.
const CrossrefName = "crossref"

const crossrefDefaultBase = "https://api.crossref.org/works/"

// Crossref recovers publication years from the Crossref works API.
// The contact address is sent in the User-Agent to join the polite pool.
type Crossref struct {
	c       *client
	contact string
}

// NewCrossref returns a Crossref adapter. An empty contact is allowed;
// requests then go to the public pool.
func NewCrossref(contact string, cfg types.ProviderConfig, opts ...Option) *Crossref {
	return &Crossref{
		c:       newClient(CrossrefName, crossrefDefaultBase, cfg, opts),
		contact: strings.TrimSpace(contact),
	}
}

// Name returns the provider identifier.
func (c *Crossref) Name() string { return CrossrefName }

// FetchYear returns the year of the first dated field, checked in the
// order published, issued, published-print, published-online, created.
// It returns nil when Crossref knows the work but none carries a year.
func (c *Crossref) FetchYear(ctx context.Context, doi string) (*int, error) {
	ua := c.c.userAgent
	if c.contact != "" {
		ua += " (mailto:" + c.contact + ")"
	}
	header := http.Header{"User-Agent": {ua}}

	var cr crossrefResponse
	if err := c.c.get(ctx, c.c.baseURL+escapeDOI(doi), header, &cr); err != nil {
		return nil, err
	}
	return cr.Message.year(), nil
}

// Crossref API JSON structures.
type crossrefResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefWork struct {
	Published       crossrefDate `json:"published"`
	Issued          crossrefDate `json:"issued"`
	PublishedPrint  crossrefDate `json:"published-print"`
	PublishedOnline crossrefDate `json:"published-online"`
	Created         crossrefDate `json:"created"`
}

// crossrefDate holds Crossref's nested date-parts. Null parts decode as 0.
type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

func (d crossrefDate) year() int {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}

// year walks the date fields in order of preference.
func (w crossrefWork) year() *int {
	for _, d := range []crossrefDate{w.Published, w.Issued, w.PublishedPrint, w.PublishedOnline, w.Created} {
		if y := d.year(); y > 0 {
			return &y
		}
	}
	return nil
}
