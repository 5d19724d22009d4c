// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/paper-metadata/pkg/types"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func TestInfer(t *testing.T) {
	tests := []struct {
		name    string
		isOA    *bool
		year    *int
		already types.SourceSet
		want    types.SourceSet
	}{
		{"nothing known", nil, nil, nil, types.SourceSet{}},
		{"open access recent", boolPtr(true), intPtr(2023), nil, types.SourceSet{SourceOpenAccess}},
		{"open access old", boolPtr(true), intPtr(2015), nil, types.SourceSet{SourceOpenAccess, SourceLegacyMirror}},
		{"closed old", boolPtr(false), intPtr(2015), nil, types.SourceSet{SourceLegacyMirror}},
		{"closed recent", boolPtr(false), intPtr(2022), nil, types.SourceSet{}},
		{"cutoff year excluded", nil, intPtr(LegacyCutoffYear), nil, types.SourceSet{}},
		{"year before cutoff", nil, intPtr(LegacyCutoffYear - 1), nil, types.SourceSet{SourceLegacyMirror}},
		{"zero year ignored", nil, intPtr(0), nil, types.SourceSet{}},
		{"duplicates are no-ops", boolPtr(true), intPtr(1999), types.SourceSet{SourceOpenAccess, SourceLegacyMirror}, types.SourceSet{SourceOpenAccess, SourceLegacyMirror}},
		{"cumulative keeps earlier evidence", boolPtr(false), intPtr(2024), types.SourceSet{SourceOpenAccess}, types.SourceSet{SourceOpenAccess}},
		{"appends after existing", nil, intPtr(2001), types.SourceSet{SourceOpenAccess}, types.SourceSet{SourceOpenAccess, SourceLegacyMirror}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Infer(tt.isOA, tt.year, tt.already))
		})
	}
}

func TestInferDoesNotMutateInput(t *testing.T) {
	already := make(types.SourceSet, 1, 4)
	already[0] = SourceOpenAccess

	got := Infer(nil, intPtr(2010), already)

	assert.Equal(t, types.SourceSet{SourceOpenAccess}, already)
	assert.Equal(t, types.SourceSet{SourceOpenAccess, SourceLegacyMirror}, got)
}
