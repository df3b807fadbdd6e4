package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	SearchRequests    atomic.Int64
	LocalSearches     atomic.Int64
	ExternalSearches  atomic.Int64
	SourceFailures    atomic.Int64
	SourcesExhausted  atomic.Int64
	FetchRequests     atomic.Int64
	FetchErrors       atomic.Int64
	JobBankRequests   atomic.Int64
	AdzunaRequests    atomic.Int64
	RemoteOKRequests  atomic.Int64
	DatasetReloads    atomic.Int64
	SharedSearchCalls atomic.Int64
}

var metricKeys = []string{
	"search_requests", "local_searches", "external_searches",
	"source_failures", "sources_exhausted",
	"fetch_requests", "fetch_errors",
	"jobbank_requests", "adzuna_requests", "remoteok_requests",
	"dataset_reloads", "shared_search_calls",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"search_requests":     metrics.SearchRequests.Load(),
		"local_searches":      metrics.LocalSearches.Load(),
		"external_searches":   metrics.ExternalSearches.Load(),
		"source_failures":     metrics.SourceFailures.Load(),
		"sources_exhausted":   metrics.SourcesExhausted.Load(),
		"fetch_requests":      metrics.FetchRequests.Load(),
		"fetch_errors":        metrics.FetchErrors.Load(),
		"jobbank_requests":    metrics.JobBankRequests.Load(),
		"adzuna_requests":     metrics.AdzunaRequests.Load(),
		"remoteok_requests":   metrics.RemoteOKRequests.Load(),
		"dataset_reloads":     metrics.DatasetReloads.Load(),
		"shared_search_calls": metrics.SharedSearchCalls.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the jobs sub-package.
func IncrSearchRequests()    { metrics.SearchRequests.Add(1) }
func IncrLocalSearches()     { metrics.LocalSearches.Add(1) }
func IncrExternalSearches()  { metrics.ExternalSearches.Add(1) }
func IncrSourceFailures()    { metrics.SourceFailures.Add(1) }
func IncrSourcesExhausted()  { metrics.SourcesExhausted.Add(1) }
func IncrJobBankRequests()   { metrics.JobBankRequests.Add(1) }
func IncrAdzunaRequests()    { metrics.AdzunaRequests.Add(1) }
func IncrRemoteOKRequests()  { metrics.RemoteOKRequests.Add(1) }
func IncrDatasetReloads()    { metrics.DatasetReloads.Add(1) }
func IncrSharedSearchCalls() { metrics.SharedSearchCalls.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, threshold time.Duration, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > threshold {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
