package api

import (
	"net/http"
	"time"

	models "DiviHub/internal/domain/models"
	"DiviHub/internal/usecase"
	xhttp "DiviHub/pkg/http"
	xlogger "DiviHub/pkg/logger"

	"github.com/labstack/echo/v4"
)

const defaultSnapshotRangeMs = int(time.Hour / time.Millisecond)

// MetricsEchoHandler exposes the monitoring window over HTTP. Ingestion
// is public behind a rate limit; the read and dashboard views are admin
// only. Bodies are the monitoring contract verbatim, not the standard
// API envelope, so existing dashboard clients keep working.
type MetricsEchoHandler struct {
	logger    *xlogger.Logger
	mon       *usecase.Monitoring
	rateLimit echo.MiddlewareFunc
	adminAuth echo.MiddlewareFunc
}

func NewMetricsEchoHandler(logger *xlogger.Logger, mon *usecase.Monitoring, rateLimit, adminAuth echo.MiddlewareFunc) *MetricsEchoHandler {
	return &MetricsEchoHandler{logger: logger, mon: mon, rateLimit: rateLimit, adminAuth: adminAuth}
}

func (h *MetricsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/metrics", h.Record, h.rateLimit)
	g.GET("/metrics", h.Snapshot, h.adminAuth)
	g.PUT("/metrics", h.Dashboard, h.adminAuth)
}

func (h *MetricsEchoHandler) Record(c echo.Context) error {
	req := &models.RecordMetricRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"error": "Invalid metric data"})
	}

	sample, err := h.mon.RecordSample(req)
	if err != nil {
		h.logger.Error("metrics record failed", xlogger.Error(err))
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"error": "Invalid metric data"})
	}

	return c.JSON(http.StatusOK, models.RecordMetricResponse{
		Success: true,
		Metric:  sample,
	})
}

// Snapshot reads query params by hand: an absent or malformed range
// falls back to one hour instead of failing the request.
func (h *MetricsEchoHandler) Snapshot(c echo.Context) error {
	category := c.QueryParam("category")
	rangeMs := xhttp.ParseIntDefault(c.QueryParam("range"), defaultSnapshotRangeMs)
	if rangeMs <= 0 {
		rangeMs = defaultSnapshotRangeMs
	}

	return c.JSON(http.StatusOK, h.mon.Snapshot(category, int64(rangeMs)))
}

func (h *MetricsEchoHandler) Dashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.mon.Dashboard())
}
