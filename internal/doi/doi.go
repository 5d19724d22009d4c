// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package doi extracts canonical DOIs from user-supplied identifiers:
// bare DOIs, "doi:" prefixed strings, doi.org links, and publisher URLs
// that embed a DOI in their path or query string.
package doi

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// ErrInvalidIdentifier is returned when no DOI can be extracted from the
// input.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// MaxIdentifierLength bounds the raw identifier accepted by Normalize.
const MaxIdentifierLength = 500

// canonicalPattern matches a complete DOI: "10.1145/1234567.1234568".
// Registrant codes may carry sub-divisions ("10.1000.10/abc").
var canonicalPattern = regexp.MustCompile(`^10\.\d{4,9}(?:\.\d+)*/\S+$`)

// embeddedPattern finds a DOI inside a decoded URL path or query value.
var embeddedPattern = regexp.MustCompile(`10\.\d{4,9}(?:\.\d+)*/[^\s?#&"<>]+`)

// trailingJunk lists characters stripped from the end of an extracted
// suffix. Closing parentheses are kept when balanced.
const trailingJunk = `.,;:)]}'"/`

// Normalize returns the canonical DOI for raw. It performs no network I/O.
// The registrant prefix is lowercased; the suffix keeps its case.
func Normalize(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: empty identifier", ErrInvalidIdentifier)
	}
	if len(id) > MaxIdentifierLength {
		return "", fmt.Errorf("%w: identifier longer than %d characters", ErrInvalidIdentifier, MaxIdentifierLength)
	}

	if len(id) > 4 && strings.EqualFold(id[:4], "doi:") {
		id = strings.TrimSpace(id[4:])
	}

	if canonicalPattern.MatchString(id) {
		if d, ok := clean(id); ok {
			return d, nil
		}
		return "", fmt.Errorf("%w: no DOI found in %q", ErrInvalidIdentifier, raw)
	}

	if u, ok := parseLink(id); ok {
		if d, ok := fromURL(u); ok {
			return d, nil
		}
	}

	return "", fmt.Errorf("%w: no DOI found in %q", ErrInvalidIdentifier, raw)
}

// parseLink parses id as an http(s) URL. Links pasted without a scheme
// ("doi.org/10.1000/182") are read as https.
func parseLink(id string) (*url.URL, bool) {
	u, err := url.Parse(id)
	if err == nil && u.Scheme == "" {
		u, err = url.Parse("https://" + id)
	}
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, false
	}
	return u, true
}

// fromURL searches the decoded path first, then query values in key order.
// The fragment is never inspected.
func fromURL(u *url.URL) (string, bool) {
	if m := embeddedPattern.FindString(u.Path); m != "" {
		if d, ok := clean(m); ok {
			return d, true
		}
	}

	query := u.Query()
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range query[k] {
			if m := embeddedPattern.FindString(v); m != "" {
				if d, ok := clean(m); ok {
					return d, true
				}
			}
		}
	}
	return "", false
}

// clean strips trailing punctuation from an extracted DOI and reports
// whether a well-formed DOI remains.
func clean(candidate string) (string, bool) {
	for candidate != "" {
		last := candidate[len(candidate)-1]
		if !strings.ContainsRune(trailingJunk, rune(last)) {
			break
		}
		if last == ')' && strings.Count(candidate, "(") >= strings.Count(candidate, ")") {
			break
		}
		candidate = candidate[:len(candidate)-1]
	}
	if !canonicalPattern.MatchString(candidate) {
		return "", false
	}
	return canonicalize(candidate), true
}

func canonicalize(d string) string {
	prefix, suffix, _ := strings.Cut(d, "/")
	return strings.ToLower(prefix) + "/" + suffix
}
