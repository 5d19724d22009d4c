// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package availability decides which retrieval channels are plausibly able
// to supply a paper's full text, from its open-access flag and year.
package availability

import "github.com/pdiddy/paper-metadata/pkg/types"

// Source names added by Infer.
const (
	SourceOpenAccess   = "OpenAccessProvider"
	SourceLegacyMirror = "LegacyMirror"
)

// LegacyCutoffYear is the first publication year the legacy mirror no
// longer indexes. Papers published before it may be available there.
const LegacyCutoffYear = 2021

// Infer applies the availability rules in order and returns already plus
// any newly justified sources. already is not modified; names it contains
// are never removed or duplicated.
//
//  1. isOA true adds SourceOpenAccess.
//  2. year known and before LegacyCutoffYear adds SourceLegacyMirror.
func Infer(isOA *bool, year *int, already types.SourceSet) types.SourceSet {
	out := make(types.SourceSet, len(already))
	copy(out, already)
	if isOA != nil && *isOA {
		out = out.With(SourceOpenAccess)
	}
	if year != nil && *year > 0 && *year < LegacyCutoffYear {
		out = out.With(SourceLegacyMirror)
	}
	return out
}
