package jobs

import (
	"cmp"
	"context"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/anatolykoptev/go_vetjobs/internal/engine"
)

const (
	// slowSearchThreshold is when a search gets logged as slow.
	slowSearchThreshold = 5 * time.Second
	// sharedSearchTimeout bounds a coordinator call shared by several callers.
	sharedSearchTimeout = 45 * time.Second
)

// Service is the cached entry point used by the MCP tools, the REST API and the CLI.
type Service struct {
	coord   *Coordinator
	scoring ScoringConfig
	group   singleflight.Group
}

// NewService wraps a coordinator with the search cache and the given scoring constants.
func NewService(coord *Coordinator, scoring ScoringConfig) *Service {
	return &Service{coord: coord, scoring: scoring}
}

// Scoring returns the constants used by Match and Recommend.
func (s *Service) Scoring() ScoringConfig { return s.scoring }

// Search returns canonical listings for p. External results are cached by BuildKey
// and identical in-flight external searches share one coordinator call. Local
// searches read the current dataset snapshot and are never cached. Errors are
// never cached.
//
// The shared call runs detached from any one caller's context, bounded by
// sharedSearchTimeout; a caller whose ctx ends stops waiting without failing the others.
func (s *Service) Search(ctx context.Context, p SearchParams) ([]Job, error) {
	engine.IncrSearchRequests()

	if !p.UseExternalSources {
		return s.search(ctx, p)
	}

	key := engine.CacheKey("search", BuildKey(p, p.page()))
	if cached, ok := engine.CacheLoadJSON[[]Job](ctx, key); ok {
		return cached, nil
	}

	ch := s.group.DoChan(key, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedSearchTimeout)
		defer cancel()
		// A call that just finished may have filled the cache after our miss.
		if cached, ok := engine.CacheLoadJSON[[]Job](ctx, key); ok {
			return cached, nil
		}
		out, err := s.search(ctx, p)
		if err != nil {
			return nil, err
		}
		engine.CacheStoreJSON(ctx, key, out)
		return out, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Shared {
			engine.IncrSharedSearchCalls()
		}
		if r.Err != nil {
			return nil, r.Err
		}
		return slices.Clone(r.Val.([]Job)), nil
	}
}

func (s *Service) search(ctx context.Context, p SearchParams) ([]Job, error) {
	var out []Job
	err := engine.TrackOperation(ctx, "jobs.search", slowSearchThreshold, func(ctx context.Context) error {
		var err error
		out, err = s.coord.Search(ctx, p)
		return err
	})
	return out, err
}

// Match searches and keeps the listings that share at least one skill with candidateSkills,
// best match first.
func (s *Service) Match(ctx context.Context, p SearchParams, candidateSkills []string) ([]MatchResult, error) {
	listings, err := s.Search(ctx, p)
	if err != nil {
		return nil, err
	}
	out := make([]MatchResult, 0, len(listings))
	for _, j := range listings {
		if m := MatchSkills(j, candidateSkills, s.scoring); m != nil {
			out = append(out, *m)
		}
	}
	slices.SortStableFunc(out, func(a, b MatchResult) int {
		return cmp.Compare(b.MatchScore, a.MatchScore)
	})
	return out, nil
}

// Recommend searches and ranks the results for profile. limit <= 0 returns all.
func (s *Service) Recommend(ctx context.Context, p SearchParams, profile UserProfile, limit int) ([]Recommendation, error) {
	listings, err := s.Search(ctx, p)
	if err != nil {
		return nil, err
	}
	return Recommend(profile, listings, s.scoring, limit), nil
}
