// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/paper-metadata/pkg/types"
)

// UnpaywallName identifies the primary provider in logs and annotations.
const UnpaywallName = "unpaywall"

const unpaywallDefaultBase = "https://api.unpaywall.org/v2/"

// Unpaywall queries the Unpaywall API, the authoritative source for
// open-access status. Unpaywall requires an e-mail address on every call.
type Unpaywall struct {
	c       *client
	contact string
}

// NewUnpaywall returns an Unpaywall adapter. It fails with
// ErrMissingContact when contact is empty.
func NewUnpaywall(contact string, cfg types.ProviderConfig, opts ...Option) (*Unpaywall, error) {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return nil, fmt.Errorf("unpaywall: %w", ErrMissingContact)
	}
	return &Unpaywall{
		c:       newClient(UnpaywallName, unpaywallDefaultBase, cfg, opts),
		contact: contact,
	}, nil
}

// Name returns the provider identifier.
func (u *Unpaywall) Name() string { return UnpaywallName }

// FetchMetadata retrieves the Unpaywall record for doi.
func (u *Unpaywall) FetchMetadata(ctx context.Context, doi string) (types.PartialMetadata, error) {
	reqURL := u.c.baseURL + escapeDOI(doi) + "?email=" + url.QueryEscape(u.contact)

	var resp unpaywallResponse
	if err := u.c.get(ctx, reqURL, nil, &resp); err != nil {
		return types.PartialMetadata{}, err
	}
	return resp.partial(), nil
}

// Unpaywall API JSON structures.
type unpaywallResponse struct {
	DOI            string              `json:"doi"`
	Title          string              `json:"title"`
	Year           *int                `json:"year"`
	IsOA           *bool               `json:"is_oa"`
	JournalName    string              `json:"journal_name"`
	Publisher      string              `json:"publisher"`
	OAStatus       string              `json:"oa_status"`
	ZAuthors       []unpaywallAuthor   `json:"z_authors"`
	BestOALocation *unpaywallLocation  `json:"best_oa_location"`
	OALocations    []unpaywallLocation `json:"oa_locations"`
}

type unpaywallAuthor struct {
	Given         string `json:"given"`
	Family        string `json:"family"`
	RawAuthorName string `json:"raw_author_name"`
}

type unpaywallLocation struct {
	URL       string `json:"url"`
	URLForPDF string `json:"url_for_pdf"`
}

// link prefers the direct PDF link over the landing page.
func (l unpaywallLocation) link() string {
	if l.URLForPDF != "" {
		return l.URLForPDF
	}
	return l.URL
}

func (a unpaywallAuthor) name() string {
	if n := strings.TrimSpace(a.Given + " " + a.Family); n != "" {
		return n
	}
	return strings.TrimSpace(a.RawAuthorName)
}

func (r unpaywallResponse) partial() types.PartialMetadata {
	p := types.PartialMetadata{
		Title:     strings.TrimSpace(r.Title),
		Journal:   strings.TrimSpace(r.JournalName),
		IsOA:      r.IsOA,
		Publisher: strings.TrimSpace(r.Publisher),
		OAStatus:  r.OAStatus,
	}
	if r.Year != nil && *r.Year > 0 {
		p.Year = r.Year
	}
	for _, a := range r.ZAuthors {
		if n := a.name(); n != "" {
			p.Authors = append(p.Authors, n)
		}
	}

	seen := make(map[string]bool)
	for _, loc := range r.OALocations {
		link := loc.link()
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true
		p.LocationURLs = append(p.LocationURLs, link)
	}
	if r.BestOALocation != nil {
		p.BestOAURL = r.BestOALocation.link()
	}
	return p
}
