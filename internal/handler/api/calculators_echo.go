package api

import (
	"errors"
	"time"

	models "DiviHub/internal/domain/models"
	"DiviHub/internal/engine"
	"DiviHub/internal/service/metrics"
	"DiviHub/internal/usecase"
	xhttp "DiviHub/pkg/http"
	xlogger "DiviHub/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CalculatorsEchoHandler exposes the pure calculator engines.
type CalculatorsEchoHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
}

func NewCalculatorsEchoHandler(logger *xlogger.Logger, analyzer *usecase.Analyzer) *CalculatorsEchoHandler {
	metrics.Register()
	return &CalculatorsEchoHandler{logger: logger, analyzer: analyzer}
}

func (h *CalculatorsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/portfolio/analyze", h.AnalyzePortfolio)
	g.POST("/projection/income", h.ProjectIncome)
	g.POST("/retirement/plan", h.PlanRetirement)
	g.POST("/tax/estimate", h.EstimateTax)
}

func (h *CalculatorsEchoHandler) AnalyzePortfolio(c echo.Context) error {
	endpoint := "portfolio_analyze"
	start := time.Now()
	defer func() { metrics.CalculatorLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.AnalyzePortfolioRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.AnalyzePortfolio(c.Request().Context(), req)
	if err != nil {
		metrics.CalculatorErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("portfolio analyze usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, engineError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *CalculatorsEchoHandler) ProjectIncome(c echo.Context) error {
	endpoint := "projection_income"
	start := time.Now()
	defer func() { metrics.CalculatorLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.IncomeProjectionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.ProjectIncome(c.Request().Context(), req)
	if err != nil {
		metrics.CalculatorErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("income projection usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, engineError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *CalculatorsEchoHandler) PlanRetirement(c echo.Context) error {
	endpoint := "retirement_plan"
	start := time.Now()
	defer func() { metrics.CalculatorLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.RetirementPlanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.PlanRetirement(c.Request().Context(), req)
	if err != nil {
		metrics.CalculatorErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("retirement plan usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, engineError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *CalculatorsEchoHandler) EstimateTax(c echo.Context) error {
	endpoint := "tax_estimate"
	start := time.Now()
	defer func() { metrics.CalculatorLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.TaxEstimateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.EstimateTax(c.Request().Context(), req)
	if err != nil {
		metrics.CalculatorErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("tax estimate usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, engineError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// engineError maps engine sentinels onto application errors so clients
// see a 400 with a code instead of a blanket 500.
func engineError(err error) error {
	switch {
	case errors.Is(err, engine.ErrInvalidHolding):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, engine.ErrInvalidScenario):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, engine.ErrInvalidTimeline):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, engine.ErrUnknownJurisdiction):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	default:
		return err
	}
}
