package models

// Sample is one timestamped numeric observation fed into the metrics window.
// Samples are immutable once recorded; the store owns them until eviction.
type Sample struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	TimestampMs int64   `json:"timestamp"`
	Category    string  `json:"category"`
	Endpoint    string  `json:"endpoint,omitempty"`
}

// SamplePoint is a single observation inside an aggregated group.
type SamplePoint struct {
	Value       float64 `json:"value"`
	TimestampMs int64   `json:"timestamp"`
}

// MetricGroup aggregates all samples sharing a name. Groups are only
// created on the first observed sample, so Min/Max are always real
// observations and Count is never zero for a group that exists.
type MetricGroup struct {
	Name     string        `json:"name"`
	Category string        `json:"category"`
	Unit     string        `json:"unit"`
	Values   []SamplePoint `json:"values"`
	Min      float64       `json:"min"`
	Max      float64       `json:"max"`
	Avg      float64       `json:"avg"`
	Count    int           `json:"count"`
}

// SystemHealth summarizes the service from the sample window.
type SystemHealth struct {
	Status            string  `json:"status"` // healthy or degraded
	UptimeSeconds     float64 `json:"uptime"`
	ResponseTimeMs    float64 `json:"responseTime"`
	ErrorRatePercent  float64 `json:"errorRate"`
	RequestsPerMinute int     `json:"requestsPerMinute"`
}

// WebVitals groups the browser performance metrics by their canonical names.
type WebVitals struct {
	LCP  MetricGroup `json:"lcp"`
	FID  MetricGroup `json:"fid"`
	CLS  MetricGroup `json:"cls"`
	FCP  MetricGroup `json:"fcp"`
	TTFB MetricGroup `json:"ttfb"`
	INP  MetricGroup `json:"inp"`
}

// MetricsSummary describes the queried slice of the window.
type MetricsSummary struct {
	TotalMetrics int      `json:"totalMetrics"`
	TimeRange    string   `json:"timeRange"`
	Categories   []string `json:"categories"`
}

// MetricsSnapshot is the GET /api/metrics response body.
type MetricsSnapshot struct {
	Health    SystemHealth   `json:"health"`
	Metrics   []MetricGroup  `json:"metrics"`
	WebVitals WebVitals      `json:"webVitals"`
	Summary   MetricsSummary `json:"summary"`
}

// ErrorStats splits recorded error samples by horizon.
type ErrorStats struct {
	LastHour int      `json:"lastHour"`
	LastDay  int      `json:"lastDay"`
	Types    []string `json:"types"`
}

// WindowedValue carries the same statistic over two horizons.
type WindowedValue struct {
	LastHour float64 `json:"lastHour"`
	LastDay  float64 `json:"lastDay"`
}

// WindowedCount carries a count over two horizons.
type WindowedCount struct {
	LastHour int `json:"lastHour"`
	LastDay  int `json:"lastDay"`
}

// PerformanceStats summarizes response-time samples for the dashboard.
type PerformanceStats struct {
	AvgResponseTime WindowedValue `json:"avgResponseTime"`
	P95ResponseTime WindowedValue `json:"p95ResponseTime"`
	RequestCount    WindowedCount `json:"requestCount"`
}

// EndpointStat ranks an endpoint by average response time.
type EndpointStat struct {
	Endpoint string  `json:"endpoint"`
	AvgTime  float64 `json:"avgTime"`
	Calls    int     `json:"calls"`
}

// DashboardSnapshot is the PUT /api/metrics response body.
type DashboardSnapshot struct {
	Health       SystemHealth     `json:"health"`
	Errors       ErrorStats       `json:"errors"`
	Performance  PerformanceStats `json:"performance"`
	TopEndpoints []EndpointStat   `json:"topEndpoints"`
	TimestampMs  int64            `json:"timestamp"`
}
