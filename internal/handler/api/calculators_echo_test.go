package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DiviHub/internal/usecase"
	"DiviHub/pkg/cache"
	xlogger "DiviHub/pkg/logger"
)

func newCalculatorsServer(t *testing.T) *echo.Echo {
	t.Helper()

	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	analyzer := usecase.NewAnalyzer(cache.NewMemoryCache(), noopMetrics{}, log)
	h := NewCalculatorsEchoHandler(log, analyzer)

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func TestAnalyzePortfolioEndpoint(t *testing.T) {
	e := newCalculatorsServer(t)

	rec := postJSON(e, "/api/portfolio/analyze", `{
		"holdings": [
			{"ticker":"JNJ","shares":100,"costBasis":150,"currentPrice":160,"annualDividend":4.76,"sector":"Healthcare"}
		]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusOK, env.Status)

	var analysis struct {
		Report struct {
			TotalMarketValue float64 `json:"totalMarketValue"`
			HoldingCount     int     `json:"holdingCount"`
		} `json:"report"`
		ProjectedIncome []struct {
			Value float64 `json:"value"`
		} `json:"projectedIncome"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &analysis))
	assert.InDelta(t, 16000, analysis.Report.TotalMarketValue, 1e-9)
	assert.Equal(t, 1, analysis.Report.HoldingCount)
	// Default projection horizon applies when the request omits it.
	assert.Len(t, analysis.ProjectedIncome, 11)
}

func TestAnalyzePortfolioValidation(t *testing.T) {
	e := newCalculatorsServer(t)

	rec := postJSON(e, "/api/portfolio/analyze", `{"holdings": []}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestAnalyzePortfolioInvalidHolding(t *testing.T) {
	e := newCalculatorsServer(t)

	rec := postJSON(e, "/api/portfolio/analyze", `{
		"holdings": [
			{"ticker":"BAD","shares":1,"costBasis":10,"currentPrice":10,"annualDividend":-1,"sector":"Energy"}
		]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestProjectIncomeEndpoint(t *testing.T) {
	e := newCalculatorsServer(t)

	rec := postJSON(e, "/api/projection/income", `{"baseAnnualIncome":1000,"growthRate":0.05,"periods":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, http.StatusOK, env.Status)

	var points []struct {
		Period int     `json:"period"`
		Value  float64 `json:"value"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &points))
	require.Len(t, points, 4)
	assert.Equal(t, 0, points[0].Period)
	assert.InDelta(t, 1000, points[0].Value, 1e-9)
}

func TestPlanRetirementEndpoint(t *testing.T) {
	e := newCalculatorsServer(t)

	rec := postJSON(e, "/api/retirement/plan", `{
		"currentAge":30,"retirementAge":65,"lifeExpectancy":90,
		"currentSavings":50000,"annualContribution":10000,"annualExpenses":60000
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, http.StatusOK, env.Status)

	var plan struct {
		YearsToRetirement int     `json:"yearsToRetirement"`
		SuccessRate       float64 `json:"successRate"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &plan))
	assert.Equal(t, 35, plan.YearsToRetirement)
	assert.GreaterOrEqual(t, plan.SuccessRate, 0.0)
	assert.LessOrEqual(t, plan.SuccessRate, 100.0)
}

func TestPlanRetirementBadTimeline(t *testing.T) {
	e := newCalculatorsServer(t)

	rec := postJSON(e, "/api/retirement/plan", `{"currentAge":70,"retirementAge":65,"lifeExpectancy":90}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestEstimateTaxEndpoint(t *testing.T) {
	e := newCalculatorsServer(t)

	rec := postJSON(e, "/api/tax/estimate", `{
		"ordinaryIncome":85000,"dividendIncome":5000,"capitalGains":10000,
		"filingStatus":"single","state":"California"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, http.StatusOK, env.Status)

	var breakdown struct {
		FederalTax float64 `json:"federalTax"`
		StateTax   float64 `json:"stateTax"`
		Strategies []struct {
			Title string `json:"title"`
		} `json:"strategies"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &breakdown))
	assert.Greater(t, breakdown.FederalTax, 0.0)
	assert.Greater(t, breakdown.StateTax, 0.0)
	assert.Len(t, breakdown.Strategies, 5)
}

func TestEstimateTaxUnknownState(t *testing.T) {
	e := newCalculatorsServer(t)

	rec := postJSON(e, "/api/tax/estimate", `{"ordinaryIncome":50000,"filingStatus":"single","state":"Atlantis"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusBadRequest, env.Status)
}
