// Package portfolio computes valuation, income, sector allocation, and
// composite health scores for a list of holdings.
package portfolio

import (
	"fmt"
	"math"
	"sort"

	"DiviHub/internal/domain/models"
	"DiviHub/internal/engine"
)

// MarketValue is shares times current price.
func MarketValue(h models.Holding) float64 {
	return h.Shares * h.CurrentPricePerShare
}

// CostValue is shares times cost basis.
func CostValue(h models.Holding) float64 {
	return h.Shares * h.CostBasisPerShare
}

// AnnualIncome is shares times annual dividend per share.
func AnnualIncome(h models.Holding) float64 {
	return h.Shares * h.AnnualDividendPerShare
}

func validate(h models.Holding) error {
	switch {
	case h.Shares <= 0:
		return fmt.Errorf("%w: %s shares must be positive", engine.ErrInvalidHolding, h.Ticker)
	case h.CostBasisPerShare <= 0:
		return fmt.Errorf("%w: %s cost basis must be positive", engine.ErrInvalidHolding, h.Ticker)
	case h.CurrentPricePerShare < 0:
		return fmt.Errorf("%w: %s price must not be negative", engine.ErrInvalidHolding, h.Ticker)
	case h.AnnualDividendPerShare < 0:
		return fmt.Errorf("%w: %s dividend must not be negative", engine.ErrInvalidHolding, h.Ticker)
	}
	for _, v := range []float64{h.Shares, h.CostBasisPerShare, h.CurrentPricePerShare, h.AnnualDividendPerShare} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s has a non-finite field", engine.ErrInvalidHolding, h.Ticker)
		}
	}
	return nil
}

// Analyze scores a portfolio. Every holding is validated before any
// aggregation so a malformed position fails the whole call instead of
// silently skewing the totals.
//
// The diversification score rewards sector count and the absence of a
// dominant sector: min(100, sectors*10 + (100 - largestSectorPercent)).
// It is a heuristic, not a Herfindahl-style concentration index. The
// income stability score is likewise a simple weighted blend of current
// yield and diversification.
func Analyze(holdings []models.Holding) (*models.PortfolioReport, error) {
	for _, h := range holdings {
		if err := validate(h); err != nil {
			return nil, err
		}
	}

	r := &models.PortfolioReport{HoldingCount: len(holdings)}

	buckets := make(map[string]*models.SectorBucket)
	for _, h := range holdings {
		mv := MarketValue(h)
		cv := CostValue(h)
		income := AnnualIncome(h)

		r.TotalMarketValue += mv
		r.TotalCostValue += cv
		r.AnnualIncome += income

		hm := models.HoldingMetrics{
			Ticker:       h.Ticker,
			MarketValue:  mv,
			CostValue:    cv,
			AnnualIncome: income,
		}
		if h.CurrentPricePerShare > 0 {
			hm.DividendYield = h.AnnualDividendPerShare / h.CurrentPricePerShare * 100
		}
		hm.GainPercent = (h.CurrentPricePerShare - h.CostBasisPerShare) / h.CostBasisPerShare * 100
		r.Holdings = append(r.Holdings, hm)

		b, ok := buckets[h.Sector]
		if !ok {
			b = &models.SectorBucket{Sector: h.Sector}
			buckets[h.Sector] = b
		}
		b.MarketValue += mv
		b.AnnualIncome += income
	}

	r.TotalGain = r.TotalMarketValue - r.TotalCostValue
	if r.TotalCostValue > 0 {
		r.TotalGainPercent = r.TotalGain / r.TotalCostValue * 100
		r.YieldOnCostPercent = r.AnnualIncome / r.TotalCostValue * 100
	}
	if r.TotalMarketValue > 0 {
		r.PortfolioYieldPercent = r.AnnualIncome / r.TotalMarketValue * 100
	}
	r.MonthlyIncome = r.AnnualIncome / 12

	largestSectorPercent := 0.0
	for _, b := range buckets {
		if r.TotalMarketValue > 0 {
			b.PercentOfPortfolio = b.MarketValue / r.TotalMarketValue * 100
		}
		if b.PercentOfPortfolio > largestSectorPercent {
			largestSectorPercent = b.PercentOfPortfolio
		}
		r.Sectors = append(r.Sectors, *b)
	}
	sort.Slice(r.Sectors, func(i, j int) bool {
		if r.Sectors[i].MarketValue != r.Sectors[j].MarketValue {
			return r.Sectors[i].MarketValue > r.Sectors[j].MarketValue
		}
		return r.Sectors[i].Sector < r.Sectors[j].Sector
	})

	if len(buckets) > 0 {
		r.DiversificationScore = math.Min(100, float64(len(buckets))*10+(100-largestSectorPercent))
	}
	r.IncomeStabilityScore = math.Min(100, r.PortfolioYieldPercent*20+r.DiversificationScore/2)

	r.Breakdown = models.ScoreBreakdown{
		Yield:     math.Min(100, r.PortfolioYieldPercent*20),
		Growth:    math.Min(100, math.Abs(r.TotalGainPercent)),
		Diversity: r.DiversificationScore,
		Stability: r.IncomeStabilityScore,
		Size:      math.Min(100, float64(len(holdings))*5),
	}

	return r, nil
}
