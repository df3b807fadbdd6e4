// Package app wires configuration, the engine and the job service for the MCP server
// and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"

	"github.com/anatolykoptev/go_vetjobs/internal/engine"
	"github.com/anatolykoptev/go_vetjobs/internal/engine/jobs"
)

// InitLogger installs a text slog handler on stderr at LOG_LEVEL (debug, info, warn, error).
// stdout stays free for the MCP stdio transport.
func InitLogger() {
	var level slog.Level
	if err := level.UnmarshalText([]byte(env.Str("LOG_LEVEL", "info"))); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// ConfigFromEnv reads the engine configuration from the environment.
func ConfigFromEnv() engine.Config {
	return engine.Config{
		HTTPClient: &http.Client{
			Timeout: env.Duration("HTTP_TIMEOUT", 15*time.Second),
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
		HostRateLimit:        env.Float("HOST_RATE_LIMIT", 2),
		HostRateBurst:        env.Int("HOST_RATE_BURST", 4),
		JobBankProxyURL:      env.Str("JOBBANK_PROXY_URL", ""),
		AdzunaBaseURL:        env.Str("ADZUNA_BASE_URL", engine.DefaultAdzunaBaseURL),
		AdzunaAppID:          env.Str("ADZUNA_APP_ID", ""),
		AdzunaAppKey:         env.Str("ADZUNA_APP_KEY", ""),
		RemoteOKURL:          env.Str("REMOTEOK_URL", engine.DefaultRemoteOKURL),
		MaxBodyBytes:         int64(env.Int("MAX_BODY_BYTES", engine.DefaultMaxBodyBytes)),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		DatabaseURL:          env.Str("DATABASE_URL", ""),
		DatasetSQLitePath:    env.Str("DATASET_SQLITE_PATH", ""),
		DatasetReloadSpec:    env.Str("DATASET_RELOAD_SPEC", ""),
		ScoringConfigPath:    env.Str("SCORING_CONFIG", ""),
		LocalFallback:        parseBool(env.Str("SEARCH_LOCAL_FALLBACK", "")),
	}
}

func parseBool(s string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && v
}

// InitEngine applies c to the engine and sets up the tiered cache.
func InitEngine(c engine.Config) {
	engine.Init(c)
	engine.InitCache(env.Str("REDIS_URL", ""), env.Duration("CACHE_TTL", 15*time.Minute), c.CacheMaxEntries, c.CacheCleanupInterval)
}

// App is a wired job service plus the resources it holds.
type App struct {
	Service *jobs.Service
	Dataset *jobs.ReloadingDataset
	store   jobs.ListingStore
}

// OpenStore opens the configured listing store: Postgres when DatabaseURL is set,
// else SQLite when DatasetSQLitePath is set. It returns nil when neither is configured.
func OpenStore(ctx context.Context, c engine.Config) (jobs.ListingStore, error) {
	switch {
	case c.DatabaseURL != "":
		s, err := jobs.ConnectPGStore(ctx, c.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case c.DatasetSQLitePath != "":
		s, err := jobs.OpenSQLiteStore(ctx, c.DatasetSQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, nil
}

// New loads the dataset and scoring constants and builds the service.
// Call Close when done.
func New(ctx context.Context, c engine.Config) (*App, error) {
	store, err := OpenStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("open listing store: %w", err)
	}
	var load jobs.LoadFunc = jobs.BuiltinLoader
	if store != nil {
		load = jobs.StoreLoader(store)
	}

	dataset, err := jobs.NewReloadingDataset(ctx, load)
	if err != nil {
		closeStore(store)
		return nil, err
	}
	if c.DatasetReloadSpec != "" {
		if err := dataset.Start(c.DatasetReloadSpec); err != nil {
			closeStore(store)
			return nil, fmt.Errorf("schedule dataset reload: %w", err)
		}
	}

	scoring, err := jobs.LoadScoringConfig(c.ScoringConfigPath)
	if err != nil {
		dataset.Stop()
		closeStore(store)
		return nil, err
	}

	var opts []jobs.CoordinatorOption
	if c.LocalFallback {
		opts = append(opts, jobs.WithLocalFallback())
	}
	jobBank, adzuna, remoteOK := jobs.DefaultSources()
	coord := jobs.NewCoordinator(jobs.NewLocalFilter(dataset), jobBank, adzuna, remoteOK, opts...)

	slog.Info("job service ready",
		slog.Int("listings", len(dataset.Listings())),
		slog.Bool("store", store != nil),
		slog.Bool("local_fallback", c.LocalFallback),
		slog.Bool("jobbank", c.JobBankProxyURL != ""),
		slog.Bool("adzuna", c.AdzunaAppID != "" && c.AdzunaAppKey != ""),
	)
	return &App{Service: jobs.NewService(coord, scoring), Dataset: dataset, store: store}, nil
}

// Close stops dataset reloads and releases the store.
func (a *App) Close() {
	a.Dataset.Stop()
	closeStore(a.store)
}

func closeStore(s jobs.ListingStore) {
	if s == nil {
		return
	}
	if err := s.Close(); err != nil {
		slog.Warn("listing store close failed", slog.Any("error", err))
	}
}
