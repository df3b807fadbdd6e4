package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/anatolykoptev/go_vetjobs/internal/engine"
)

// LoadFunc produces a fresh copy of the dataset.
type LoadFunc func(ctx context.Context) ([]Job, error)

// reloadTimeout bounds a scheduled reload.
const reloadTimeout = time.Minute

// ReloadingDataset serves an immutable snapshot that is swapped wholesale on reload.
// A search that already holds a snapshot keeps reading it.
type ReloadingDataset struct {
	load LoadFunc
	snap atomic.Pointer[StaticDataset]
	cron *cron.Cron
}

// NewReloadingDataset performs the initial load; it fails if that load fails.
func NewReloadingDataset(ctx context.Context, load LoadFunc) (*ReloadingDataset, error) {
	d := &ReloadingDataset{load: load}
	if err := d.Reload(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Listings returns the current snapshot.
func (d *ReloadingDataset) Listings() []Job {
	return d.snap.Load().Listings()
}

// Reload fetches a new snapshot. On error the previous snapshot stays in place.
func (d *ReloadingDataset) Reload(ctx context.Context) error {
	listings, err := d.load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	d.snap.Store(NewStaticDataset(listings))
	engine.IncrDatasetReloads()
	slog.Debug("dataset: reloaded", slog.Int("listings", len(listings)))
	return nil
}

// Start schedules reloads on a cron spec such as "@every 30m".
func (d *ReloadingDataset) Start(spec string) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		if err := d.Reload(ctx); err != nil {
			slog.Warn("dataset: reload failed, keeping previous snapshot", slog.Any("error", err))
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	d.cron = c
	c.Start()
	slog.Info("dataset: reload scheduled", slog.String("spec", spec))
	return nil
}

// Stop halts scheduled reloads and waits for a running one to finish.
func (d *ReloadingDataset) Stop() {
	if d.cron == nil {
		return
	}
	<-d.cron.Stop().Done()
}

// BuiltinLoader serves the curated listings shipped with the binary.
func BuiltinLoader(context.Context) ([]Job, error) {
	return BuiltinListings(), nil
}

// StoreLoader reads the dataset from a persistent store.
func StoreLoader(store ListingStore) LoadFunc {
	return store.LoadListings
}
