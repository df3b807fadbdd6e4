package jobs

import "slices"

// Dataset is a read-only collection of canonical listings for the local filter.
// Implementations must return a slice the caller may read but never mutate.
type Dataset interface {
	Listings() []Job
}

// StaticDataset is an immutable in-memory Dataset.
type StaticDataset struct {
	jobs []Job
}

// NewStaticDataset copies listings so later changes by the caller are not observed.
func NewStaticDataset(listings []Job) *StaticDataset {
	return &StaticDataset{jobs: slices.Clone(listings)}
}

// Listings returns the dataset in its original order.
func (d *StaticDataset) Listings() []Job { return d.jobs }

// Len returns the number of listings.
func (d *StaticDataset) Len() int { return len(d.jobs) }
