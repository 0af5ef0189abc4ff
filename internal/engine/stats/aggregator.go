// Package stats turns filtered sample sets into reporting aggregates.
//
// Nothing here ever fails: empty input degrades to zero-valued results,
// and callers distinguish "zero" from "no data" via the group Count.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"DiviHub/internal/domain/models"
)

// GroupByName aggregates samples per distinct name. A group exists only
// once its first sample is observed, so Min/Max never carry the
// +Inf/-Inf seeds out of this function.
func GroupByName(samples []models.Sample) map[string]*models.MetricGroup {
	groups := make(map[string]*models.MetricGroup)
	for _, s := range samples {
		g, ok := groups[s.Name]
		if !ok {
			g = &models.MetricGroup{
				Name:     s.Name,
				Category: s.Category,
				Unit:     s.Unit,
				Min:      math.Inf(1),
				Max:      math.Inf(-1),
			}
			groups[s.Name] = g
		}
		g.Values = append(g.Values, models.SamplePoint{Value: s.Value, TimestampMs: s.TimestampMs})
		g.Min = math.Min(g.Min, s.Value)
		g.Max = math.Max(g.Max, s.Value)
		g.Count++
	}

	for _, g := range groups {
		vals := make([]float64, len(g.Values))
		for i, v := range g.Values {
			vals[i] = v.Value
		}
		g.Avg = stat.Mean(vals, nil)
	}
	return groups
}

// Average returns the arithmetic mean of the sample values, 0 for an
// empty set.
func Average(samples []models.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	vals := Values(samples)
	return floats.Sum(vals) / float64(len(vals))
}

// Percentile computes the nearest-rank percentile of the sample values:
// sort ascending, index ceil(p/100*n)-1 clamped to [0, n-1]. Returns 0
// for an empty set. No interpolation is applied between ranks; the
// tie-break is intentional for compatibility with the dashboard
// consumers.
func Percentile(samples []models.Sample, p float64) float64 {
	return PercentileOf(Values(samples), p)
}

// PercentileOf is Percentile over a raw value slice.
func PercentileOf(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := int(math.Ceil(p/100*float64(n))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}

// ErrorRate returns the error-category share of the window as a
// percentage: error samples divided by max(1, request samples), so an
// empty window reports 0 instead of dividing by zero.
func ErrorRate(samples []models.Sample, windowMs, nowMs int64) float64 {
	cutoff := nowMs - windowMs
	errorCount := 0
	requestCount := 0
	for _, s := range samples {
		if s.TimestampMs <= cutoff {
			continue
		}
		switch s.Category {
		case "error":
			errorCount++
		case "request":
			requestCount++
		}
	}
	if requestCount < 1 {
		requestCount = 1
	}
	return float64(errorCount) / float64(requestCount) * 100
}

// Values extracts the raw values of a sample set.
func Values(samples []models.Sample) []float64 {
	vals := make([]float64, len(samples))
	for i, s := range samples {
		vals[i] = s.Value
	}
	return vals
}
