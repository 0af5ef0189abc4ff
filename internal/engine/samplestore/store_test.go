package samplestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DiviHub/internal/domain/models"
	"DiviHub/internal/domain/repository"
	"DiviHub/internal/engine"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRecordValidation(t *testing.T) {
	s := New()

	err := s.Record(models.Sample{Name: "", Value: 1})
	require.ErrorIs(t, err, engine.ErrInvalidSample)

	err = s.Record(models.Sample{Name: "LCP", Value: nan()})
	require.ErrorIs(t, err, engine.ErrInvalidSample)

	err = s.Record(models.Sample{Name: "LCP", Value: 120})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestRecordThenQueryWindow(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	s := New(WithClock(fixedClock(now)))

	ts := now.UnixMilli()
	require.NoError(t, s.Record(models.Sample{Name: "LCP", Value: 120, TimestampMs: ts, Category: "web-vital"}))

	got := s.Query(repository.SampleFilter{FromMs: ts - time.Hour.Milliseconds()})
	require.Len(t, got, 1)
	assert.Equal(t, 120.0, got[0].Value)
	assert.Equal(t, "LCP", got[0].Name)
}

func TestEvictOrderedStopsEarly(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	s := New(WithClock(fixedClock(now)))

	base := now.Add(-2 * time.Hour).UnixMilli()
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Record(models.Sample{
			Name:        "response_time",
			Value:       float64(i),
			TimestampMs: base + int64(i)*time.Minute.Milliseconds()*15,
		}))
	}

	// 2h window at 15m spacing: samples at -2h..-15m; only the first is outside.
	evicted := s.EvictOlderThan(2 * time.Hour.Milliseconds())
	assert.Equal(t, 0, evicted)

	evicted = s.EvictOlderThan(time.Hour.Milliseconds())
	assert.Equal(t, 4, evicted)
	assert.Equal(t, 6, s.Len())
}

func TestEvictIdempotent(t *testing.T) {
	now := time.Now()
	s := New(WithClock(fixedClock(now)))

	old := now.Add(-30 * time.Minute).UnixMilli()
	fresh := now.UnixMilli()
	require.NoError(t, s.Record(models.Sample{Name: "a", Value: 1, TimestampMs: old}))
	require.NoError(t, s.Record(models.Sample{Name: "b", Value: 2, TimestampMs: fresh}))

	first := s.EvictOlderThan(10 * time.Minute.Milliseconds())
	second := s.EvictOlderThan(10 * time.Minute.Milliseconds())
	assert.Equal(t, 1, first)
	assert.Equal(t, 0, second)
	assert.Equal(t, 1, s.Len())
}

func TestEvictUnorderedFullScan(t *testing.T) {
	now := time.Now()
	s := New(WithClock(fixedClock(now)))

	// Append out of order: a late sample followed by an older one.
	require.NoError(t, s.Record(models.Sample{Name: "a", Value: 1, TimestampMs: now.UnixMilli()}))
	require.NoError(t, s.Record(models.Sample{Name: "b", Value: 2, TimestampMs: now.Add(-time.Hour).UnixMilli()}))
	require.NoError(t, s.Record(models.Sample{Name: "c", Value: 3, TimestampMs: now.UnixMilli()}))

	evicted := s.EvictOlderThan(30 * time.Minute.Milliseconds())
	assert.Equal(t, 1, evicted)

	names := []string{}
	for _, sm := range s.Query(repository.SampleFilter{}) {
		names = append(names, sm.Name)
	}
	assert.Equal(t, []string{"a", "c"}, names)
}

func TestQueryFilters(t *testing.T) {
	now := time.Now()
	s := New(WithClock(fixedClock(now)))
	ts := now.UnixMilli()

	require.NoError(t, s.Record(models.Sample{Name: "response_time", Value: 10, TimestampMs: ts, Category: "request"}))
	require.NoError(t, s.Record(models.Sample{Name: "db_timeout", Value: 1, TimestampMs: ts, Category: "error"}))
	require.NoError(t, s.Record(models.Sample{Name: "response_time", Value: 20, TimestampMs: ts + 1, Category: "request"}))

	assert.Len(t, s.Query(repository.SampleFilter{Category: "request"}), 2)
	assert.Len(t, s.Query(repository.SampleFilter{Name: "db_timeout"}), 1)
	assert.Len(t, s.Query(repository.SampleFilter{FromMs: ts + 1}), 1)
	assert.Len(t, s.Query(repository.SampleFilter{ToMs: ts}), 2)

	// Query never mutates the store.
	assert.Equal(t, 3, s.Len())
}
