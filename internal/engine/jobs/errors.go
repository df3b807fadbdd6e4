package jobs

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable: a source's network call failed, returned a non-success
	// status, or the source is not configured.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrMalformedResponse: a source answered with a payload it could not parse.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrAllSourcesExhausted: every source in the region's chain failed.
	ErrAllSourcesExhausted = errors.New("all sources exhausted")
)

// SourceError records which source failed and how.
type SourceError struct {
	Source string
	Kind   error // ErrSourceUnavailable or ErrMalformedResponse
	Err    error
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Source, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Source, e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Is matches the failure kind, so errors.Is(err, ErrMalformedResponse) works through wrapping.
func (e *SourceError) Is(target error) bool { return target == e.Kind }

func unavailable(source string, err error) error {
	return &SourceError{Source: source, Kind: ErrSourceUnavailable, Err: err}
}

func malformed(source string, err error) error {
	return &SourceError{Source: source, Kind: ErrMalformedResponse, Err: err}
}

// exhaustedError wraps the last source failure.
type exhaustedError struct {
	region Region
	tried  int
	last   error
}

func (e *exhaustedError) Error() string {
	if e.last == nil {
		return fmt.Sprintf("%v: region %s has no sources", ErrAllSourcesExhausted, e.region)
	}
	return fmt.Sprintf("%v (region %s, %d tried): %v", ErrAllSourcesExhausted, e.region, e.tried, e.last)
}

func (e *exhaustedError) Unwrap() []error {
	if e.last == nil {
		return []error{ErrAllSourcesExhausted}
	}
	return []error{ErrAllSourcesExhausted, e.last}
}
