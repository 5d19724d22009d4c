package resolve

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/paper-metadata/internal/provider"
	"github.com/pdiddy/paper-metadata/pkg/types"
)

// FromConfig wires the Unpaywall adapter and the configured fallback year
// provider into a Resolver. opts are applied to both adapters.
func FromConfig(cfg types.ResolverConfig, log *zap.Logger, opts ...provider.Option) (*Resolver, error) {
	primary, err := provider.NewUnpaywall(cfg.Contact, cfg.Primary, opts...)
	if err != nil {
		return nil, err
	}

	var fallback YearProvider
	switch cfg.FallbackProvider {
	case "", types.FallbackCrossref:
		fallback = provider.NewCrossref(cfg.Contact, cfg.Fallback, opts...)
	case types.FallbackOpenAlex:
		fallback = provider.NewOpenAlex(cfg.Contact, cfg.Fallback, opts...)
	default:
		return nil, fmt.Errorf("unknown fallback provider %q", cfg.FallbackProvider)
	}

	return New(primary, fallback, WithLogger(log)), nil
}
