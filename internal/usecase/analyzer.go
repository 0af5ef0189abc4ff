package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"DiviHub/internal/domain/models"
	"DiviHub/internal/domain/repository"
	"DiviHub/internal/engine/portfolio"
	"DiviHub/internal/engine/projection"
	"DiviHub/internal/engine/tax"
	"DiviHub/pkg/cache"
	xlogger "DiviHub/pkg/logger"
)

const analysisCacheTTL = 5 * time.Minute

// Analyzer runs the pure calculator engines behind the HTTP surface.
// Portfolio analysis is cached because it is the only call whose input
// (a full holdings list) is large enough and repeated enough to matter;
// the other calculators are cheap closed-form math.
type Analyzer struct {
	cache cache.Service
	rec   repository.Metrics
	log   *xlogger.Logger
}

// NewAnalyzer creates the calculator use case.
func NewAnalyzer(cacheSvc cache.Service, rec repository.Metrics, log *xlogger.Logger) *Analyzer {
	return &Analyzer{
		cache: cacheSvc,
		rec:   rec,
		log:   log,
	}
}

// AnalyzePortfolio values and scores the holdings and seeds an income
// projection from the resulting annual income. Identical requests are
// served from cache.
func (a *Analyzer) AnalyzePortfolio(ctx context.Context, req *models.AnalyzePortfolioRequest) (*models.PortfolioAnalysis, error) {
	start := time.Now()
	defer func() {
		a.rec.RecordLatency("portfolio_analyze", time.Since(start).Seconds())
	}()

	key, err := analysisCacheKey(req)
	if err == nil && a.cache != nil {
		var cached models.PortfolioAnalysis
		switch cacheErr := a.cache.Get(ctx, key, &cached); {
		case cacheErr == nil:
			a.log.Debug("portfolio.analyze cache_hit", xlogger.String("key", key))
			return &cached, nil
		case errors.Is(cacheErr, cache.ErrCacheMiss):
			a.log.Debug("portfolio.analyze cache_miss", xlogger.String("key", key))
		default:
			a.log.Warn("portfolio.analyze cache_get failed", xlogger.Error(cacheErr))
		}
	}

	report, err := portfolio.Analyze(req.Holdings)
	if err != nil {
		a.rec.RecordError("portfolio_analyze")
		return nil, err
	}

	analysis := &models.PortfolioAnalysis{Report: report}
	if req.ProjectionYears > 0 {
		points, err := projection.Income(report.AnnualIncome, req.DividendGrowthRate, req.ProjectionYears)
		if err != nil {
			a.rec.RecordError("portfolio_analyze")
			return nil, err
		}
		analysis.ProjectedIncome = points
	}

	if key != "" && a.cache != nil {
		if err := a.cache.Set(ctx, key, analysis, analysisCacheTTL); err != nil {
			a.log.Warn("portfolio.analyze cache_set failed", xlogger.Error(err))
		}
	}
	return analysis, nil
}

// ProjectIncome runs the standalone constant-growth projection.
func (a *Analyzer) ProjectIncome(ctx context.Context, req *models.IncomeProjectionRequest) ([]models.ProjectionPoint, error) {
	start := time.Now()
	defer func() {
		a.rec.RecordLatency("projection_income", time.Since(start).Seconds())
	}()

	points, err := projection.Income(req.BaseAnnualIncome, req.GrowthRate, req.Periods)
	if err != nil {
		a.rec.RecordError("projection_income")
		return nil, err
	}
	return points, nil
}

// PlanRetirement runs the lifecycle savings projection.
func (a *Analyzer) PlanRetirement(ctx context.Context, req *models.RetirementPlanRequest) (*models.RetirementPlan, error) {
	start := time.Now()
	defer func() {
		a.rec.RecordLatency("retirement_plan", time.Since(start).Seconds())
	}()

	plan, err := projection.Retirement(models.RetirementScenario{
		CurrentAge:             req.CurrentAge,
		RetirementAge:          req.RetirementAge,
		LifeExpectancy:         req.LifeExpectancy,
		CurrentSavings:         req.CurrentSavings,
		AnnualContribution:     req.AnnualContribution,
		NominalReturn:          req.NominalReturn,
		InflationRate:          req.InflationRate,
		AnnualExpenses:         req.AnnualExpenses,
		AnnualGuaranteedIncome: req.AnnualGuaranteedIncome,
	})
	if err != nil {
		a.rec.RecordError("retirement_plan")
		return nil, err
	}
	return plan, nil
}

// EstimateTax resolves the jurisdiction and runs the layered estimate.
func (a *Analyzer) EstimateTax(ctx context.Context, req *models.TaxEstimateRequest) (*models.TaxBreakdown, error) {
	start := time.Now()
	defer func() {
		a.rec.RecordLatency("tax_estimate", time.Since(start).Seconds())
	}()

	stateRate, err := tax.StateRate(req.State)
	if err != nil {
		a.rec.RecordError("tax_estimate")
		return nil, err
	}

	breakdown, err := tax.Estimate(models.TaxScenario{
		OrdinaryIncome:          req.OrdinaryIncome,
		DividendIncome:          req.DividendIncome,
		CapitalGains:            req.CapitalGains,
		FilingStatus:            models.FilingStatus(req.FilingStatus),
		StateRate:               stateRate,
		RetirementContributions: req.RetirementContributions,
		LossHarvestAmount:       req.LossHarvestAmount,
	})
	if err != nil {
		a.rec.RecordError("tax_estimate")
		return nil, err
	}
	return breakdown, nil
}

// analysisCacheKey hashes the request so equivalent payloads share one
// cache entry without storing the holdings list in the key.
func analysisCacheKey(req *models.AnalyzePortfolioRequest) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	return cache.GenerateKey("portfolio:analysis", cache.HashKey(string(b))), nil
}
