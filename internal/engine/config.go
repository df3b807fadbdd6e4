package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	HTTPClient    *http.Client
	HostRateLimit float64 // requests per second per upstream host
	HostRateBurst int

	JobBankProxyURL string // caller-operated Job Bank proxy; empty = source disabled
	AdzunaBaseURL   string
	AdzunaAppID     string
	AdzunaAppKey    string
	RemoteOKURL     string

	MaxBodyBytes int64

	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	DatabaseURL       string
	DatasetSQLitePath string
	DatasetReloadSpec string // cron spec, e.g. "@every 30m"; empty = load once
	ScoringConfigPath string
	LocalFallback     bool // degrade to the local dataset when every external source fails
}

// Default upstream endpoints.
const (
	DefaultAdzunaBaseURL = "https://api.adzuna.com/v1/api/jobs"
	DefaultRemoteOKURL   = "https://remoteok.com/api"
	DefaultMaxBodyBytes  = 2 << 20
)

var cfg = Config{
	HTTPClient:    &http.Client{Timeout: 15 * time.Second},
	HostRateLimit: 2,
	HostRateBurst: 4,
	AdzunaBaseURL: DefaultAdzunaBaseURL,
	RemoteOKURL:   DefaultRemoteOKURL,
	MaxBodyBytes:  DefaultMaxBodyBytes,
}

// Cfg exposes the engine configuration for sub-packages (jobs).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
// Zero-valued transport settings keep their defaults.
func Init(c Config) {
	if c.HTTPClient == nil {
		c.HTTPClient = cfg.HTTPClient
	}
	if c.HostRateLimit <= 0 {
		c.HostRateLimit = cfg.HostRateLimit
	}
	if c.HostRateBurst <= 0 {
		c.HostRateBurst = cfg.HostRateBurst
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	cfg = c
	Cfg = &cfg
	hostLimiter = NewHostLimiter(c.HostRateLimit, c.HostRateBurst)
}
