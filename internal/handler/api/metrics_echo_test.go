package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "DiviHub/internal/domain/models"
	"DiviHub/internal/domain/repository"
	"DiviHub/internal/engine/samplestore"
	"DiviHub/internal/service/ratelimit"
	"DiviHub/internal/usecase"
	"DiviHub/pkg/http/middleware"
	xlogger "DiviHub/pkg/logger"
)

type noopMetrics struct{}

func (noopMetrics) RecordSampleIngested(string)   {}
func (noopMetrics) RecordEvicted(int)             {}
func (noopMetrics) RecordError(string)            {}
func (noopMetrics) RecordLatency(string, float64) {}
func (noopMetrics) SetWindowSize(int)             {}

var _ repository.Metrics = noopMetrics{}

func newTestServer(t *testing.T, adminToken string, limiter *ratelimit.Limiter, capacity float64) *echo.Echo {
	t.Helper()

	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	mon := usecase.NewMonitoring(samplestore.New(), noopMetrics{}, log, 24*time.Hour.Milliseconds())

	h := NewMetricsEchoHandler(log, mon,
		middleware.RateLimit(limiter, capacity, 0.001),
		middleware.AdminAuth(adminToken),
	)

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func postMetric(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/metrics", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRecordMetricEndpoint(t *testing.T) {
	e := newTestServer(t, "", ratelimit.New(), 100)

	rec := postMetric(e, `{"name":"LCP","value":2400,"unit":"ms","category":"performance"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RecordMetricResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "LCP", resp.Metric.Name)
	assert.Equal(t, 2400.0, resp.Metric.Value)
	assert.NotZero(t, resp.Metric.TimestampMs)
}

func TestRecordMetricDefaults(t *testing.T) {
	e := newTestServer(t, "", ratelimit.New(), 100)

	rec := postMetric(e, `{"name":"cache_hits","value":0}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RecordMetricResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ms", resp.Metric.Unit)
	assert.Equal(t, "custom", resp.Metric.Category)
	assert.Zero(t, resp.Metric.Value)
}

func TestRecordMetricRejectsMissingValue(t *testing.T) {
	e := newTestServer(t, "", ratelimit.New(), 100)

	rec := postMetric(e, `{"name":"LCP"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid metric data")
}

func TestRecordMetricRateLimited(t *testing.T) {
	e := newTestServer(t, "", ratelimit.New(), 2)

	require.Equal(t, http.StatusOK, postMetric(e, `{"name":"a","value":1}`).Code)
	require.Equal(t, http.StatusOK, postMetric(e, `{"name":"b","value":1}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, postMetric(e, `{"name":"c","value":1}`).Code)
}

func TestSnapshotRequiresAdminToken(t *testing.T) {
	e := newTestServer(t, "s3cret", ratelimit.New(), 100)

	req := httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
	req.Header.Set(middleware.AdminTokenHeader, "s3cret")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoutesFailClosedWithoutConfiguredToken(t *testing.T) {
	e := newTestServer(t, "", ratelimit.New(), 100)

	for _, method := range []string{http.MethodGet, http.MethodPut} {
		req := httptest.NewRequest(method, "/api/metrics", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, method)

		// No header value passes while the token is unset.
		req = httptest.NewRequest(method, "/api/metrics", nil)
		req.Header.Set(middleware.AdminTokenHeader, "anything")
		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, method)
	}
}

func adminGet(e *echo.Echo, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(middleware.AdminTokenHeader, token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSnapshotReturnsRecordedMetrics(t *testing.T) {
	e := newTestServer(t, "s3cret", ratelimit.New(), 100)

	require.Equal(t, http.StatusOK, postMetric(e, `{"name":"LCP","value":2000,"category":"performance"}`).Code)
	require.Equal(t, http.StatusOK, postMetric(e, `{"name":"LCP","value":2600,"category":"performance"}`).Code)

	rec := adminGet(e, "/api/metrics?category=performance&range=3600000", "s3cret")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap models.MetricsSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Len(t, snap.Metrics, 1)
	assert.Equal(t, "LCP", snap.Metrics[0].Name)
	assert.Equal(t, 2, snap.Metrics[0].Count)
	assert.InDelta(t, 2300, snap.Metrics[0].Avg, 1e-9)
	assert.Equal(t, 2, snap.WebVitals.LCP.Count)
	assert.Equal(t, "healthy", snap.Health.Status)
}

func TestSnapshotBadRangeFallsBack(t *testing.T) {
	e := newTestServer(t, "s3cret", ratelimit.New(), 100)

	rec := adminGet(e, "/api/metrics?range=banana", "s3cret")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap models.MetricsSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "3600s", snap.Summary.TimeRange)
}

func TestDashboardEndpoint(t *testing.T) {
	e := newTestServer(t, "s3cret", ratelimit.New(), 100)

	require.Equal(t, http.StatusOK, postMetric(e, `{"name":"response_time","value":120,"category":"request","path":"/api/data"}`).Code)
	require.Equal(t, http.StatusOK, postMetric(e, `{"name":"api_failure","value":1,"category":"error"}`).Code)

	req := httptest.NewRequest(http.MethodPut, "/api/metrics", nil)
	req.Header.Set(middleware.AdminTokenHeader, "s3cret")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var dash models.DashboardSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.Equal(t, 1, dash.Errors.LastHour)
	assert.Equal(t, []string{"api_failure"}, dash.Errors.Types)
	assert.Equal(t, 1, dash.Performance.RequestCount.LastHour)
	require.Len(t, dash.TopEndpoints, 1)
	assert.Equal(t, "/api/data", dash.TopEndpoints[0].Endpoint)
}
