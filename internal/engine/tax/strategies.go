package tax

import (
	"math"

	"DiviHub/internal/domain/models"
)

// Planning-year contribution limits used by the strategy estimates.
const (
	retirementContributionLimit = 23000
	lossHarvestAnnualCap        = 3000
	hsaContributionLimit        = 4150
)

// buildStrategies produces the candidate mitigation strategies in their
// canonical declaration order. Each estimate is computed against the
// scenario in isolation; combining strategies can double-count.
func buildStrategies(sc models.TaxScenario, marginalRate, prefRate float64) []models.Strategy {
	return []models.Strategy{
		{
			Title:            "Max Out 401(k)",
			Description:      "Contribute the full retirement limit to reduce taxable income",
			EstimatedSavings: math.Max(0, retirementContributionLimit-sc.RetirementContributions) * marginalRate,
			Difficulty:       models.DifficultyEasy,
		},
		{
			Title:            "Tax Loss Harvesting",
			Description:      "Offset capital gains with losses from underperforming positions",
			EstimatedSavings: math.Min(sc.CapitalGains, lossHarvestAnnualCap) * prefRate,
			Difficulty:       models.DifficultyMedium,
		},
		{
			Title:            "Municipal Bonds",
			Description:      "Shift part of the dividend income into tax-free municipal bonds",
			EstimatedSavings: sc.DividendIncome * prefRate * 0.5,
			Difficulty:       models.DifficultyEasy,
		},
		{
			Title:            "Qualified Opportunity Zones",
			Description:      "Defer and reduce capital gains tax through QOZ investments",
			EstimatedSavings: sc.CapitalGains * 0.1,
			Difficulty:       models.DifficultyHard,
		},
		{
			Title:            "HSA Contributions",
			Description:      "Deductible contributions with tax-free growth and withdrawals",
			EstimatedSavings: hsaContributionLimit * marginalRate,
			Difficulty:       models.DifficultyEasy,
		},
	}
}
