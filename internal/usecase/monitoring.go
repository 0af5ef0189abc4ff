package usecase

import (
	"fmt"
	"sort"
	"time"

	"DiviHub/internal/domain/models"
	"DiviHub/internal/domain/repository"
	"DiviHub/internal/engine/stats"
	xlogger "DiviHub/pkg/logger"
)

// Thresholds shared by the health and dashboard views.
const (
	healthWindowMs     = 60_000 // health is judged on the last minute
	criticalValueFloor = 5000   // samples above this are logged loudly
	topEndpointsLimit  = 10
)

// MonitoringOption configures the Monitoring use case.
type MonitoringOption func(*Monitoring)

// WithMonitoringClock overrides the time source for tests.
func WithMonitoringClock(now func() time.Time) MonitoringOption {
	return func(m *Monitoring) {
		m.now = now
	}
}

// WithDegradedThreshold sets the error-rate percentage above which the
// service reports itself degraded.
func WithDegradedThreshold(pct float64) MonitoringOption {
	return func(m *Monitoring) {
		m.degradedThresholdPct = pct
	}
}

// Monitoring owns the metrics ingestion and reporting flows around the
// sample window. The store is injected, never a package global, so its
// lifecycle belongs to the process boundary.
type Monitoring struct {
	store                repository.SampleStore
	rec                  repository.Metrics
	log                  *xlogger.Logger
	windowMs             int64
	degradedThresholdPct float64
	startedAt            time.Time
	now                  func() time.Time
}

// NewMonitoring creates the monitoring use case over an injected store.
func NewMonitoring(store repository.SampleStore, rec repository.Metrics, log *xlogger.Logger, windowMs int64, opts ...MonitoringOption) *Monitoring {
	m := &Monitoring{
		store:                store,
		rec:                  rec,
		log:                  log,
		windowMs:             windowMs,
		degradedThresholdPct: 10,
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.startedAt = m.now()
	return m
}

// RecordSample stamps, stores, and post-evicts one sample. Eviction
// after every record keeps the window bounded without a timer, and the
// scheduled sweep stays idempotent on top of it.
func (m *Monitoring) RecordSample(req *models.RecordMetricRequest) (models.Sample, error) {
	sample := models.Sample{
		Name:        req.Name,
		Value:       *req.Value,
		Unit:        req.Unit,
		Category:    req.Category,
		TimestampMs: m.now().UnixMilli(),
		Endpoint:    req.Path,
	}

	if err := m.store.Record(sample); err != nil {
		m.rec.RecordError("record_sample")
		return models.Sample{}, err
	}

	if evicted := m.store.EvictOlderThan(m.windowMs); evicted > 0 {
		m.rec.RecordEvicted(evicted)
	}
	m.rec.RecordSampleIngested(sample.Category)
	m.rec.SetWindowSize(m.store.Len())

	if sample.Category == "error" || sample.Value > criticalValueFloor {
		m.log.Warn("critical metric recorded",
			xlogger.String("name", sample.Name),
			xlogger.Float64("value", sample.Value),
			xlogger.String("category", sample.Category),
		)
	}
	return sample, nil
}

// Evict runs one eviction sweep and returns the number of samples
// removed. Wired to the scheduler in the app lifecycle.
func (m *Monitoring) Evict() int {
	evicted := m.store.EvictOlderThan(m.windowMs)
	if evicted > 0 {
		m.rec.RecordEvicted(evicted)
	}
	m.rec.SetWindowSize(m.store.Len())
	return evicted
}

// Health summarizes the last minute of the window.
func (m *Monitoring) Health() models.SystemHealth {
	nowMs := m.now().UnixMilli()
	recent := m.store.Query(repository.SampleFilter{FromMs: nowMs - healthWindowMs})

	requests := make([]models.Sample, 0, len(recent))
	for _, s := range recent {
		if s.Category == "request" {
			requests = append(requests, s)
		}
	}

	errorRate := stats.ErrorRate(recent, healthWindowMs, nowMs)
	status := "healthy"
	if errorRate > m.degradedThresholdPct {
		status = "degraded"
	}

	return models.SystemHealth{
		Status:            status,
		UptimeSeconds:     m.now().Sub(m.startedAt).Seconds(),
		ResponseTimeMs:    stats.Average(requests),
		ErrorRatePercent:  errorRate,
		RequestsPerMinute: len(requests),
	}
}

// Snapshot builds the GET /api/metrics response: grouped aggregates
// over the requested range, health, web vitals, and a summary.
func (m *Monitoring) Snapshot(category string, rangeMs int64) models.MetricsSnapshot {
	nowMs := m.now().UnixMilli()
	samples := m.store.Query(repository.SampleFilter{
		Category: category,
		FromMs:   nowMs - rangeMs,
	})

	groups := stats.GroupByName(samples)

	metrics := make([]models.MetricGroup, 0, len(groups))
	for _, g := range groups {
		metrics = append(metrics, *g)
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Name < metrics[j].Name })

	categories := []string{}
	seen := map[string]bool{}
	for _, s := range samples {
		if !seen[s.Category] {
			seen[s.Category] = true
			categories = append(categories, s.Category)
		}
	}

	return models.MetricsSnapshot{
		Health:  m.Health(),
		Metrics: metrics,
		WebVitals: models.WebVitals{
			LCP:  vitalGroup(groups, "LCP"),
			FID:  vitalGroup(groups, "FID"),
			CLS:  vitalGroup(groups, "CLS"),
			FCP:  vitalGroup(groups, "FCP"),
			TTFB: vitalGroup(groups, "TTFB"),
			INP:  vitalGroup(groups, "INP"),
		},
		Summary: models.MetricsSummary{
			TotalMetrics: len(samples),
			TimeRange:    fmt.Sprintf("%ds", rangeMs/1000),
			Categories:   categories,
		},
	}
}

func vitalGroup(groups map[string]*models.MetricGroup, name string) models.MetricGroup {
	if g, ok := groups[name]; ok {
		return *g
	}
	return models.MetricGroup{Name: name}
}

// Dashboard builds the PUT /api/metrics response: error and performance
// statistics over the last hour and day, plus the slowest endpoints.
func (m *Monitoring) Dashboard() models.DashboardSnapshot {
	nowMs := m.now().UnixMilli()
	hourMs := time.Hour.Milliseconds()
	dayMs := 24 * hourMs

	lastHour := m.store.Query(repository.SampleFilter{FromMs: nowMs - hourMs})
	lastDay := m.store.Query(repository.SampleFilter{FromMs: nowMs - dayMs})

	errTypes := []string{}
	seen := map[string]bool{}
	hourErrors, dayErrors := 0, 0
	for _, s := range lastDay {
		if s.Category != "error" {
			continue
		}
		dayErrors++
		if s.TimestampMs > nowMs-hourMs {
			hourErrors++
		}
		if !seen[s.Name] {
			seen[s.Name] = true
			errTypes = append(errTypes, s.Name)
		}
	}

	hourResponses := filter(lastHour, func(s models.Sample) bool { return s.Name == "response_time" })
	dayResponses := filter(lastDay, func(s models.Sample) bool { return s.Name == "response_time" })
	hourRequests := filter(lastHour, func(s models.Sample) bool { return s.Category == "request" })
	dayRequests := filter(lastDay, func(s models.Sample) bool { return s.Category == "request" })

	return models.DashboardSnapshot{
		Health: m.Health(),
		Errors: models.ErrorStats{
			LastHour: hourErrors,
			LastDay:  dayErrors,
			Types:    errTypes,
		},
		Performance: models.PerformanceStats{
			AvgResponseTime: models.WindowedValue{
				LastHour: stats.Average(hourResponses),
				LastDay:  stats.Average(dayResponses),
			},
			P95ResponseTime: models.WindowedValue{
				LastHour: stats.Percentile(hourResponses, 95),
				LastDay:  stats.Percentile(dayResponses, 95),
			},
			RequestCount: models.WindowedCount{
				LastHour: len(hourRequests),
				LastDay:  len(dayRequests),
			},
		},
		TopEndpoints: topEndpoints(hourRequests),
		TimestampMs:  nowMs,
	}
}

func filter(samples []models.Sample, keep func(models.Sample) bool) []models.Sample {
	out := make([]models.Sample, 0, len(samples))
	for _, s := range samples {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// topEndpoints ranks request endpoints by average response time.
func topEndpoints(requests []models.Sample) []models.EndpointStat {
	byEndpoint := map[string][]float64{}
	for _, s := range requests {
		endpoint := s.Endpoint
		if endpoint == "" {
			endpoint = "unknown"
		}
		byEndpoint[endpoint] = append(byEndpoint[endpoint], s.Value)
	}

	out := make([]models.EndpointStat, 0, len(byEndpoint))
	for endpoint, times := range byEndpoint {
		sum := 0.0
		for _, t := range times {
			sum += t
		}
		out = append(out, models.EndpointStat{
			Endpoint: endpoint,
			AvgTime:  sum / float64(len(times)),
			Calls:    len(times),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgTime != out[j].AvgTime {
			return out[i].AvgTime > out[j].AvgTime
		}
		return out[i].Endpoint < out[j].Endpoint
	})
	if len(out) > topEndpointsLimit {
		out = out[:topEndpointsLimit]
	}
	return out
}
