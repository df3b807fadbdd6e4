package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource returns a fixed result and counts calls.
type fakeSource struct {
	name  string
	jobs  []Job
	err   error
	calls atomic.Int32
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Search(context.Context, SearchParams) ([]Job, error) {
	f.calls.Add(1)
	return f.jobs, f.err
}

func okSource(name string, titles ...string) *fakeSource {
	f := &fakeSource{name: name, jobs: []Job{}}
	for _, t := range titles {
		f.jobs = append(f.jobs, Normalize(RawJob{Title: t}, name))
	}
	return f
}

func failSource(name string) *fakeSource {
	return &fakeSource{name: name, err: unavailable(name, errors.New("connection refused"))}
}

func TestCoordinator_LocalNeverCallsSources(t *testing.T) {
	jb, az, ro := okSource("jobbank", "a"), okSource("adzuna", "b"), okSource("remoteok", "c")
	local := builtinFilter()
	c := NewCoordinator(local, jb, az, ro)

	p := SearchParams{Keywords: []string{"analyst"}, Region: RegionCanada}
	got, err := c.Search(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, local.Filter(p), got)
	assert.Zero(t, jb.calls.Load()+az.calls.Load()+ro.calls.Load())
}

func TestCoordinator_FirstSuccessWins(t *testing.T) {
	jb, az, ro := failSource("jobbank"), okSource("adzuna", "From Adzuna"), okSource("remoteok", "From RemoteOK")
	c := NewCoordinator(builtinFilter(), jb, az, ro)

	got, err := c.Search(context.Background(), SearchParams{UseExternalSources: true, Region: RegionCanada})
	require.NoError(t, err)
	assert.Equal(t, []string{"From Adzuna"}, titles(got))
	assert.EqualValues(t, 1, jb.calls.Load())
	assert.EqualValues(t, 1, az.calls.Load())
	assert.Zero(t, ro.calls.Load())
}

func TestCoordinator_EmptyResultIsSuccess(t *testing.T) {
	jb, az := okSource("jobbank"), okSource("adzuna", "x")
	c := NewCoordinator(builtinFilter(), jb, az, okSource("remoteok"))

	got, err := c.Search(context.Background(), SearchParams{UseExternalSources: true})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, az.calls.Load())
}

func TestCoordinator_RegionChains(t *testing.T) {
	jb, az, ro := failSource("jobbank"), failSource("adzuna"), okSource("remoteok", "r")
	c := NewCoordinator(builtinFilter(), jb, az, ro)

	assert.Equal(t, []string{"jobbank", "adzuna", "remoteok"}, c.Chain(RegionCanada))
	assert.Equal(t, []string{"adzuna", "remoteok"}, c.Chain(RegionUS))
	assert.Equal(t, c.Chain(RegionCanada), c.Chain(""), "absent region uses the default chain")

	_, err := c.Search(context.Background(), SearchParams{UseExternalSources: true, Region: RegionUS})
	require.NoError(t, err)
	assert.Zero(t, jb.calls.Load(), "us chain skips the canadian source")
	assert.EqualValues(t, 1, az.calls.Load())
	assert.EqualValues(t, 1, ro.calls.Load())
}

func TestCoordinator_AllFail(t *testing.T) {
	jb, az := failSource("jobbank"), failSource("adzuna")
	ro := &fakeSource{name: "remoteok", err: malformed("remoteok", errors.New("bad json"))}
	c := NewCoordinator(builtinFilter(), jb, az, ro)

	_, err := c.Search(context.Background(), SearchParams{UseExternalSources: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAllSourcesExhausted)
	assert.ErrorIs(t, err, ErrMalformedResponse, "wraps the last failure")
	var se *SourceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "remoteok", se.Source)
	for _, s := range []*fakeSource{jb, az, ro} {
		assert.EqualValues(t, 1, s.calls.Load(), s.name)
	}
}

func TestCoordinator_LocalFallback(t *testing.T) {
	local := builtinFilter()
	c := NewCoordinator(local, failSource("jobbank"), failSource("adzuna"), failSource("remoteok"), WithLocalFallback())

	p := SearchParams{UseExternalSources: true, Keywords: []string{"paramedic"}}
	got, err := c.Search(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, local.Filter(p), got)
}

func TestCoordinator_WithChain(t *testing.T) {
	only := okSource("custom", "c")
	c := NewCoordinator(builtinFilter(), failSource("jobbank"), failSource("adzuna"), failSource("remoteok"),
		WithChain(RegionUS, only))
	got, err := c.Search(context.Background(), SearchParams{UseExternalSources: true, Region: RegionUS})
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, titles(got))

	empty := NewCoordinator(builtinFilter(), only, only, only, WithChain(RegionCanada))
	_, err = empty.Search(context.Background(), SearchParams{UseExternalSources: true})
	assert.ErrorIs(t, err, ErrAllSourcesExhausted)
}

func TestCoordinator_CanceledContextStops(t *testing.T) {
	jb, az := failSource("jobbank"), okSource("adzuna", "x")
	c := NewCoordinator(builtinFilter(), jb, az, okSource("remoteok"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Search(ctx, SearchParams{UseExternalSources: true})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, jb.calls.Load()+az.calls.Load())
}
