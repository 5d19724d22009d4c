// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the metadata
// resolution pipeline: provider results, availability sources, and the
// final record returned to callers.
package types

// PartialMetadata is the fixed-shape result of a single provider query.
// Any field may be absent: empty strings and nil slices mean the provider
// did not report the field, nil pointers mean the value is unknown.
type PartialMetadata struct {
	Title        string
	Authors      []string
	Year         *int
	Journal      string
	IsOA         *bool
	LocationURLs []string

	// Publisher, OAStatus and BestOAURL are reported by the open-access
	// provider only.
	Publisher string
	OAStatus  string
	BestOAURL string
}

// HasYear reports whether the partial record carries a usable year.
func (p PartialMetadata) HasYear() bool {
	return p.Year != nil && *p.Year > 0
}

// ProviderError annotates a record with a contained provider failure.
type ProviderError struct {
	// Provider names the adapter that failed (e.g. "unpaywall", "crossref").
	Provider string `json:"provider" yaml:"provider"`

	// Cause is a human-readable description of the failure.
	Cause string `json:"cause" yaml:"cause"`
}

// SourceSet is an ordered, duplicate-free list of retrieval source names.
// Values are treated as immutable: With returns a new set.
type SourceSet []string

// Contains reports whether name is already in the set.
func (s SourceSet) Contains(name string) bool {
	for _, v := range s {
		if v == name {
			return true
		}
	}
	return false
}

// With returns a copy of s with name appended, or an unchanged copy when
// name is already present.
func (s SourceSet) With(name string) SourceSet {
	out := make(SourceSet, len(s), len(s)+1)
	copy(out, s)
	if s.Contains(name) {
		return out
	}
	return append(out, name)
}

// MetadataRecord is the merged result of a resolution. DOI is always set,
// even when every provider failed.
type MetadataRecord struct {
	DOI          string   `json:"doi" yaml:"doi"`
	Title        string   `json:"title,omitempty" yaml:"title,omitempty"`
	Authors      []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Year         *int     `json:"year,omitempty" yaml:"year,omitempty"`
	Journal      string   `json:"journal,omitempty" yaml:"journal,omitempty"`
	IsOA         *bool    `json:"is_oa,omitempty" yaml:"is_oa,omitempty"`
	LocationURLs []string `json:"location_urls,omitempty" yaml:"location_urls,omitempty"`
	Publisher    string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	OAStatus     string   `json:"oa_status,omitempty" yaml:"oa_status,omitempty"`
	BestOAURL    string   `json:"best_oa_url,omitempty" yaml:"best_oa_url,omitempty"`

	// AvailableSources lists the retrieval channels inferred as viable.
	AvailableSources SourceSet `json:"available_sources" yaml:"available_sources"`

	// ProviderErrors records every provider that failed during resolution.
	ProviderErrors []ProviderError `json:"provider_errors,omitempty" yaml:"provider_errors,omitempty"`

	// Error is an advisory set when no retrieval source could be inferred.
	// It does not mean the resolution failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewRecord returns an empty record for doi with a non-nil source set.
func NewRecord(doi string) *MetadataRecord {
	return &MetadataRecord{DOI: doi, AvailableSources: SourceSet{}}
}

// Merge copies every field present in p into the record. Fields absent
// from p leave the record untouched.
func (r *MetadataRecord) Merge(p PartialMetadata) {
	if p.Title != "" {
		r.Title = p.Title
	}
	if len(p.Authors) > 0 {
		r.Authors = append([]string(nil), p.Authors...)
	}
	if p.HasYear() {
		y := *p.Year
		r.Year = &y
	}
	if p.Journal != "" {
		r.Journal = p.Journal
	}
	if p.IsOA != nil {
		oa := *p.IsOA
		r.IsOA = &oa
	}
	if len(p.LocationURLs) > 0 {
		r.LocationURLs = append([]string(nil), p.LocationURLs...)
	}
	if p.Publisher != "" {
		r.Publisher = p.Publisher
	}
	if p.OAStatus != "" {
		r.OAStatus = p.OAStatus
	}
	if p.BestOAURL != "" {
		r.BestOAURL = p.BestOAURL
	}
}

// HasYear reports whether the record carries a usable year.
func (r *MetadataRecord) HasYear() bool {
	return r.Year != nil && *r.Year > 0
}

// AddProviderError appends a contained provider failure.
func (r *MetadataRecord) AddProviderError(provider string, err error) {
	r.ProviderErrors = append(r.ProviderErrors, ProviderError{Provider: provider, Cause: err.Error()})
}
