package tax

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DiviHub/internal/domain/models"
	"DiviHub/internal/engine"
)

func TestProgressiveTaxConcrete(t *testing.T) {
	brackets := []models.TaxBracket{
		{Min: 0, Max: 11600, Rate: 0.10},
		{Min: 11600, Max: 47150, Rate: 0.12},
		{Min: 47150, Max: math.Inf(1), Rate: 0.22},
	}
	// 11600*0.10 + 35550*0.12 + 2850*0.22 = 1160 + 4266 + 627
	assert.InDelta(t, 6053, ProgressiveTax(brackets, 50000), 1e-9)
}

func TestProgressiveTaxAtBracketBoundary(t *testing.T) {
	brackets, err := BracketsFor(models.FilingSingle)
	require.NoError(t, err)

	// At an exact boundary the tax equals the sum of the lower
	// brackets' full contributions; the next bracket must add nothing.
	wantAt47150 := 11600*0.10 + (47150-11600)*0.12
	assert.InDelta(t, wantAt47150, ProgressiveTax(brackets, 47150), 1e-9)

	delta := ProgressiveTax(brackets, 47150.01) - ProgressiveTax(brackets, 47150)
	assert.InDelta(t, 0.01*0.22, delta, 1e-6)
}

func TestProgressiveTaxTopBracket(t *testing.T) {
	brackets, err := BracketsFor(models.FilingSingle)
	require.NoError(t, err)

	tax := ProgressiveTax(brackets, 1_000_000)
	assert.False(t, math.IsInf(tax, 0))
	assert.Greater(t, tax, 0.37*(1_000_000-609350))
}

func TestMarginalRate(t *testing.T) {
	brackets, _ := BracketsFor(models.FilingSingle)
	assert.Equal(t, 0.0, MarginalRate(brackets, 0))
	assert.Equal(t, 0.10, MarginalRate(brackets, 5000))
	assert.Equal(t, 0.22, MarginalRate(brackets, 50000))
	assert.Equal(t, 0.37, MarginalRate(brackets, 2_000_000))
}

func scenario() models.TaxScenario {
	return models.TaxScenario{
		OrdinaryIncome:          85000,
		DividendIncome:          5000,
		CapitalGains:            10000,
		FilingStatus:            models.FilingSingle,
		StateRate:               0.133,
		RetirementContributions: 6000,
	}
}

func TestEstimateLayers(t *testing.T) {
	b, err := Estimate(scenario())
	require.NoError(t, err)

	// 100000 gross - 6000 contributions - 14600 deduction.
	assert.InDelta(t, 79400, b.TaxableIncome, 1e-9)
	assert.InDelta(t, ProgressiveTax(bracketsSingle, 79400), b.FederalTax, 1e-9)

	// Taxable income lands in the 15% preferential tier.
	assert.InDelta(t, 5000*0.15, b.DividendTax, 1e-9)
	assert.InDelta(t, 10000*0.15, b.CapitalGainsTax, 1e-9)
	assert.InDelta(t, 100000*0.133, b.StateTax, 1e-9)

	wantTotal := b.FederalTax + b.DividendTax + b.CapitalGainsTax + b.StateTax
	assert.InDelta(t, wantTotal, b.TotalTax, 1e-9)
	assert.InDelta(t, wantTotal/100000*100, b.EffectiveRatePercent, 1e-9)
	assert.InDelta(t, 100000-wantTotal, b.AfterTaxIncome, 1e-9)
	assert.Equal(t, 0.22, b.MarginalRate)
}

func TestEstimatePreferentialTiers(t *testing.T) {
	low := scenario()
	low.OrdinaryIncome = 30000
	low.CapitalGains = 5000
	b, err := Estimate(low)
	require.NoError(t, err)
	// Taxable income below the zero-rate breakpoint.
	assert.Equal(t, 0.0, b.DividendTax)
	assert.Equal(t, 0.0, b.CapitalGainsTax)

	high := scenario()
	high.OrdinaryIncome = 700000
	b, err = Estimate(high)
	require.NoError(t, err)
	assert.InDelta(t, 5000*0.20, b.DividendTax, 1e-9)
}

func TestEstimateLossHarvestReducesGainsTax(t *testing.T) {
	sc := scenario()
	sc.LossHarvestAmount = 4000
	b, err := Estimate(sc)
	require.NoError(t, err)
	assert.InDelta(t, (10000-4000)*0.15, b.CapitalGainsTax, 1e-9)

	// Harvesting more than the gains floors the tax at zero.
	sc.LossHarvestAmount = 50000
	b, err = Estimate(sc)
	require.NoError(t, err)
	assert.Equal(t, 0.0, b.CapitalGainsTax)
}

func TestEstimateStrategiesRanked(t *testing.T) {
	b, err := Estimate(scenario())
	require.NoError(t, err)
	require.Len(t, b.Strategies, 5)

	for i := 1; i < len(b.Strategies); i++ {
		assert.GreaterOrEqual(t, b.Strategies[i-1].EstimatedSavings, b.Strategies[i].EstimatedSavings)
	}

	total := 0.0
	for _, s := range b.Strategies {
		total += s.EstimatedSavings
	}
	assert.InDelta(t, total, b.TotalPotentialSavings, 1e-9)
}

func TestEstimateStrategyTieKeepsDeclarationOrder(t *testing.T) {
	// Zero everything: all estimates are 0 and the stable sort must
	// preserve declaration order.
	sc := models.TaxScenario{
		FilingStatus:            models.FilingSingle,
		RetirementContributions: retirementContributionLimit,
	}
	b, err := Estimate(sc)
	require.NoError(t, err)
	require.Len(t, b.Strategies, 5)
	assert.Equal(t, "Max Out 401(k)", b.Strategies[0].Title)
	assert.Equal(t, "Tax Loss Harvesting", b.Strategies[1].Title)
	assert.Equal(t, "Municipal Bonds", b.Strategies[2].Title)
	assert.Equal(t, "Qualified Opportunity Zones", b.Strategies[3].Title)
	assert.Equal(t, "HSA Contributions", b.Strategies[4].Title)
}

func TestEstimateRejectsBadInput(t *testing.T) {
	sc := scenario()
	sc.DividendIncome = -1
	_, err := Estimate(sc)
	require.ErrorIs(t, err, engine.ErrInvalidScenario)

	sc = scenario()
	sc.FilingStatus = "communal"
	_, err = Estimate(sc)
	require.ErrorIs(t, err, engine.ErrUnknownJurisdiction)

	sc = scenario()
	sc.StateRate = -0.01
	_, err = Estimate(sc)
	require.ErrorIs(t, err, engine.ErrInvalidScenario)
}

func TestStateRate(t *testing.T) {
	r, err := StateRate("Texas")
	require.NoError(t, err)
	assert.Equal(t, 0.0, r)

	r, err = StateRate("California")
	require.NoError(t, err)
	assert.Equal(t, 0.133, r)

	_, err = StateRate("Atlantis")
	require.ErrorIs(t, err, engine.ErrUnknownJurisdiction)
}

func TestStandardDeductionPerStatus(t *testing.T) {
	single, _ := StandardDeduction(models.FilingSingle)
	joint, _ := StandardDeduction(models.FilingMarriedJoint)
	head, _ := StandardDeduction(models.FilingHeadOfHousehold)
	assert.Equal(t, 14600.0, single)
	assert.Equal(t, 29200.0, joint)
	assert.Equal(t, 21900.0, head)

	_, err := StandardDeduction("unknown")
	require.ErrorIs(t, err, engine.ErrUnknownJurisdiction)
}
