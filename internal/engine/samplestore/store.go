// Package samplestore retains a rolling window of metric samples for
// near-real-time aggregation without unbounded memory growth.
package samplestore

import (
	"fmt"
	"math"
	"sync"
	"time"

	"DiviHub/internal/domain/models"
	"DiviHub/internal/domain/repository"
	"DiviHub/internal/engine"
)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source. Used by tests and anywhere the
// caller already stamps samples.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is an append-only bounded-window sample store. All operations
// are serialized with a mutex so concurrent request handlers cannot
// lose updates or observe a half-evicted window.
type Store struct {
	mu      sync.Mutex
	samples []models.Sample
	lastTs  int64
	ordered bool
	now     func() time.Time
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		ordered: true,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record appends a sample. The only validation is a non-empty name and
// a finite value; everything else is the caller's business. A zero
// timestamp is stamped with the store clock.
func (s *Store) Record(sample models.Sample) error {
	if sample.Name == "" {
		return fmt.Errorf("%w: name is empty", engine.ErrInvalidSample)
	}
	if math.IsNaN(sample.Value) || math.IsInf(sample.Value, 0) {
		return fmt.Errorf("%w: value is not finite", engine.ErrInvalidSample)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sample.TimestampMs == 0 {
		sample.TimestampMs = s.now().UnixMilli()
	}
	if sample.TimestampMs < s.lastTs {
		// Out-of-order append: eviction falls back to a full scan.
		s.ordered = false
	}
	s.lastTs = sample.TimestampMs
	s.samples = append(s.samples, sample)
	return nil
}

// EvictOlderThan removes samples with timestamp < now - windowMs and
// returns how many were removed. When appends have been in
// non-decreasing timestamp order it stops at the first live sample
// (amortized O(1)); otherwise it scans the whole window. Running it
// twice in a row is idempotent.
func (s *Store) EvictOlderThan(windowMs int64) int {
	cutoff := s.now().UnixMilli() - windowMs

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ordered {
		i := 0
		for i < len(s.samples) && s.samples[i].TimestampMs < cutoff {
			i++
		}
		if i == 0 {
			return 0
		}
		evicted := i
		s.samples = append(s.samples[:0], s.samples[i:]...)
		return evicted
	}

	kept := s.samples[:0]
	evicted := 0
	for _, sample := range s.samples {
		if sample.TimestampMs < cutoff {
			evicted++
			continue
		}
		kept = append(kept, sample)
	}
	s.samples = kept
	return evicted
}

// Query returns a copy of the samples matching the filter. The copy is
// taken under the lock so callers never hold a view into live store
// state.
func (s *Store) Query(f repository.SampleFilter) []models.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Sample, 0, len(s.samples))
	for _, sample := range s.samples {
		if f.Match(sample) {
			out = append(out, sample)
		}
	}
	return out
}

// Len returns the current window size.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.samples)
}

var _ repository.SampleStore = (*Store)(nil)
