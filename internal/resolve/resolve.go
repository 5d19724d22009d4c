// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns a raw paper identifier into a MetadataRecord by
// querying the primary provider, falling back to a year provider when
// needed, and inferring availability sources.
//
// Provider failures never escape Resolve: each one becomes a
// ProviderError on the record. Only an invalid identifier aborts.
package resolve

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/paper-metadata/internal/availability"
	"github.com/pdiddy/paper-metadata/internal/doi"
	"github.com/pdiddy/paper-metadata/pkg/types"
)

// AdvisoryNoSources is attached to records whose availability set is empty.
const AdvisoryNoSources = "metadata not available from any provider; verify identifier"

// MetadataProvider is the primary source of paper metadata.
type MetadataProvider interface {
	Name() string
	FetchMetadata(ctx context.Context, doi string) (types.PartialMetadata, error)
}

// YearProvider recovers a publication year the primary provider lacked.
type YearProvider interface {
	Name() string
	FetchYear(ctx context.Context, doi string) (*int, error)
}

// State is a step of a single resolution.
type State int

const (
	StateStart State = iota
	StatePrimaryQueried
	StateYearFallbackQueried
	StateSkipFallback
	StateInferred
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePrimaryQueried:
		return "primary_queried"
	case StateYearFallbackQueried:
		return "year_fallback_queried"
	case StateSkipFallback:
		return "skip_fallback"
	case StateInferred:
		return "inferred"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Resolver runs resolutions. It holds no per-request state and is safe
// for concurrent use when its providers are.
type Resolver struct {
	primary  MetadataProvider
	fallback YearProvider
	log      *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for provider failures and transitions.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// New returns a Resolver over the given providers. Both are required.
func New(primary MetadataProvider, fallback YearProvider, opts ...Option) *Resolver {
	r := &Resolver{
		primary:  primary,
		fallback: fallback,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// resolution is the mutable state of one Resolve call.
type resolution struct {
	doi    string
	record *types.MetadataRecord
}

// Resolve normalizes raw and assembles its metadata record. The only
// error it returns wraps doi.ErrInvalidIdentifier, in which case no
// provider was called.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*types.MetadataRecord, error) {
	canonical, err := doi.Normalize(raw)
	if err != nil {
		return nil, err
	}

	res := &resolution{doi: canonical, record: types.NewRecord(canonical)}
	log := r.log.With(zap.String("doi", canonical))

	for state := StateStart; state != StateDone; {
		next := r.step(ctx, log, state, res)
		log.Debug("resolution transition", zap.Stringer("from", state), zap.Stringer("to", next))
		state = next
	}
	return res.record, nil
}

// step performs the work attached to state and returns the next state.
func (r *Resolver) step(ctx context.Context, log *zap.Logger, state State, res *resolution) State {
	rec := res.record

	switch state {
	case StateStart:
		p, err := r.primary.FetchMetadata(ctx, res.doi)
		if err != nil {
			log.Warn("primary provider failed", zap.String("provider", r.primary.Name()), zap.Error(err))
			rec.AddProviderError(r.primary.Name(), err)
			return StatePrimaryQueried
		}
		rec.Merge(p)
		rec.AvailableSources = availability.Infer(p.IsOA, p.Year, rec.AvailableSources)
		return StatePrimaryQueried

	case StatePrimaryQueried:
		if rec.HasYear() {
			return StateSkipFallback
		}
		year, err := r.fallback.FetchYear(ctx, res.doi)
		if err != nil {
			log.Warn("year fallback provider failed", zap.String("provider", r.fallback.Name()), zap.Error(err))
			rec.AddProviderError(r.fallback.Name(), err)
			return StateYearFallbackQueried
		}
		if year != nil && *year > 0 {
			y := *year
			rec.Year = &y
		}
		return StateYearFallbackQueried

	case StateYearFallbackQueried, StateSkipFallback:
		rec.AvailableSources = availability.Infer(rec.IsOA, rec.Year, rec.AvailableSources)
		return StateInferred

	case StateInferred:
		if len(rec.AvailableSources) == 0 {
			rec.Error = AdvisoryNoSources
		}
		return StateDone
	}
	return StateDone
}
