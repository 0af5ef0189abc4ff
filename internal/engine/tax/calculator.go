// Package tax computes a layered, progressive tax liability and ranks
// mitigation strategies. The bracket tables are simplified planning
// figures; precise tax-law correctness is out of scope.
package tax

import (
	"fmt"
	"math"
	"sort"

	"DiviHub/internal/domain/models"
	"DiviHub/internal/engine"
)

// ProgressiveTax applies an ordered bracket table to taxableIncome.
// Each bracket taxes the slice of income between its bounds; the
// open-ended top bracket works because min(income, +Inf) is income.
func ProgressiveTax(brackets []models.TaxBracket, taxableIncome float64) float64 {
	total := 0.0
	for _, b := range brackets {
		if taxableIncome <= b.Min {
			break
		}
		total += (math.Min(taxableIncome, b.Max) - b.Min) * b.Rate
	}
	return total
}

// MarginalRate returns the rate of the bracket containing
// taxableIncome, 0 below the first bracket.
func MarginalRate(brackets []models.TaxBracket, taxableIncome float64) float64 {
	rate := 0.0
	for _, b := range brackets {
		if taxableIncome <= b.Min {
			break
		}
		rate = b.Rate
	}
	return rate
}

// Estimate computes the full layered liability for a scenario:
// progressive federal tax on ordinary taxable income, a flat
// preferential rate on dividends and harvested capital gains, a flat
// state rate on gross income, plus the ranked mitigation strategies.
//
// Strategy savings are independent approximations; they are not
// additive across strategies and are not meant to be summed into a
// guaranteed outcome.
func Estimate(sc models.TaxScenario) (*models.TaxBreakdown, error) {
	if sc.OrdinaryIncome < 0 || sc.DividendIncome < 0 || sc.CapitalGains < 0 ||
		sc.RetirementContributions < 0 || sc.LossHarvestAmount < 0 {
		return nil, fmt.Errorf("%w: income components must not be negative", engine.ErrInvalidScenario)
	}
	if sc.StateRate < 0 {
		return nil, fmt.Errorf("%w: state rate must not be negative", engine.ErrInvalidScenario)
	}

	brackets, err := BracketsFor(sc.FilingStatus)
	if err != nil {
		return nil, err
	}
	deduction, err := StandardDeduction(sc.FilingStatus)
	if err != nil {
		return nil, err
	}

	gross := sc.OrdinaryIncome + sc.DividendIncome + sc.CapitalGains
	taxable := math.Max(0, gross-sc.RetirementContributions-deduction)

	prefRate := PreferentialRate(taxable)
	b := &models.TaxBreakdown{
		TaxableIncome:   taxable,
		FederalTax:      ProgressiveTax(brackets, taxable),
		DividendTax:     sc.DividendIncome * prefRate,
		CapitalGainsTax: math.Max(0, (sc.CapitalGains-sc.LossHarvestAmount)*prefRate),
		StateTax:        gross * sc.StateRate,
		MarginalRate:    MarginalRate(brackets, taxable),
	}
	b.TotalTax = b.FederalTax + b.DividendTax + b.CapitalGainsTax + b.StateTax
	if gross > 0 {
		b.EffectiveRatePercent = b.TotalTax / gross * 100
	}
	b.AfterTaxIncome = gross - b.TotalTax

	b.Strategies = rankStrategies(sc, b.MarginalRate, prefRate)
	for _, s := range b.Strategies {
		b.TotalPotentialSavings += s.EstimatedSavings
	}
	return b, nil
}

// rankStrategies orders the candidate strategies by estimated savings
// descending. The sort is stable so ties keep declaration order.
func rankStrategies(sc models.TaxScenario, marginalRate, prefRate float64) []models.Strategy {
	strategies := buildStrategies(sc, marginalRate, prefRate)
	sort.SliceStable(strategies, func(i, j int) bool {
		return strategies[i].EstimatedSavings > strategies[j].EstimatedSavings
	})
	return strategies
}
