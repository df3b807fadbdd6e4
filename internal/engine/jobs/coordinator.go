package jobs

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_vetjobs/internal/engine"
)

// Source is one network-backed job provider.
type Source interface {
	Name() string
	Search(ctx context.Context, p SearchParams) ([]Job, error)
}

// Coordinator routes a search to the local dataset or to the region's source chain.
type Coordinator struct {
	local         *LocalFilter
	chains        map[Region][]Source
	localFallback bool
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithLocalFallback makes an exhausted source chain return the local filter's result
// instead of ErrAllSourcesExhausted.
func WithLocalFallback() CoordinatorOption {
	return func(c *Coordinator) { c.localFallback = true }
}

// WithChain overrides the source chain for region.
func WithChain(region Region, sources ...Source) CoordinatorOption {
	return func(c *Coordinator) { c.chains[region] = sources }
}

// NewCoordinator builds the default chains from the given sources:
// canada tries jobbank, adzuna, remoteok; us tries adzuna, remoteok.
func NewCoordinator(local *LocalFilter, jobBank, adzuna, remoteOK Source, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		local: local,
		chains: map[Region][]Source{
			RegionCanada: {jobBank, adzuna, remoteOK},
			RegionUS:     {adzuna, remoteOK},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// DefaultSources builds the three network sources from engine.Cfg.
func DefaultSources() (jobBank, adzuna, remoteOK Source) {
	return NewJobBankSource(engine.Cfg.JobBankProxyURL),
		NewAdzunaSource(engine.Cfg.AdzunaBaseURL, engine.Cfg.AdzunaAppID, engine.Cfg.AdzunaAppKey),
		NewRemoteOKSource(engine.Cfg.RemoteOKURL)
}

// Chain returns the ordered source names for region (absent region = default).
func (c *Coordinator) Chain(region Region) []string {
	chain := c.chains[region.orDefault()]
	names := make([]string, 0, len(chain))
	for _, s := range chain {
		names = append(names, s.Name())
	}
	return names
}

// Search answers p from the local dataset, or from the first source in the region's
// chain that succeeds. Sources are tried one at a time and never retried.
func (c *Coordinator) Search(ctx context.Context, p SearchParams) ([]Job, error) {
	if !p.UseExternalSources {
		engine.IncrLocalSearches()
		return c.local.Filter(p), nil
	}
	engine.IncrExternalSearches()

	region := p.Region.orDefault()
	chain := c.chains[region]

	var lastErr error
	for i, src := range chain {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results, err := src.Search(ctx, p)
		if err == nil {
			return results, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		engine.IncrSourceFailures()
		slog.Warn("jobs: source failed",
			slog.String("source", src.Name()),
			slog.String("region", string(region)),
			slog.Int("position", i+1),
			slog.Int("chain", len(chain)),
			slog.Any("error", err))
		lastErr = err
	}

	engine.IncrSourcesExhausted()
	if c.localFallback {
		slog.Warn("jobs: all sources failed, serving local dataset", slog.String("region", string(region)))
		return c.local.Filter(p), nil
	}
	return nil, &exhaustedError{region: region, tried: len(chain), last: lastErr}
}
