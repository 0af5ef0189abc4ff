package repository

import (
	"DiviHub/internal/domain/models"
)

// SampleFilter selects samples by category, name, and time range. Zero
// fields match everything.
type SampleFilter struct {
	Name     string
	Category string
	FromMs   int64
	ToMs     int64
}

// Match reports whether a sample passes the filter.
func (f SampleFilter) Match(s models.Sample) bool {
	if f.Name != "" && s.Name != f.Name {
		return false
	}
	if f.Category != "" && s.Category != f.Category {
		return false
	}
	if f.FromMs > 0 && s.TimestampMs < f.FromMs {
		return false
	}
	if f.ToMs > 0 && s.TimestampMs > f.ToMs {
		return false
	}
	return true
}

// SampleStore is the rolling window of observations. Implementations
// must be safe for concurrent use; Query returns a copy, never a live
// view into internal state.
type SampleStore interface {
	Record(s models.Sample) error
	EvictOlderThan(windowMs int64) int
	Query(f SampleFilter) []models.Sample
	Len() int
}

// Metrics records engine self-observability counters.
type Metrics interface {
	RecordSampleIngested(category string)
	RecordEvicted(n int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	SetWindowSize(n int)
}
