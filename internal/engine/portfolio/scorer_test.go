package portfolio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DiviHub/internal/domain/models"
	"DiviHub/internal/engine"
)

func holding(ticker string, shares, cost, price, div float64, sector string) models.Holding {
	return models.Holding{
		Ticker:                 ticker,
		Shares:                 shares,
		CostBasisPerShare:      cost,
		CurrentPricePerShare:   price,
		AnnualDividendPerShare: div,
		Sector:                 sector,
	}
}

func TestAnalyzeValuation(t *testing.T) {
	holdings := []models.Holding{
		holding("JNJ", 100, 140, 156.23, 4.76, "Healthcare"),
		holding("KO", 200, 55, 61.45, 1.84, "Consumer Staples"),
	}

	r, err := Analyze(holdings)
	require.NoError(t, err)

	assert.InDelta(t, 27913, r.TotalMarketValue, 1e-9)
	assert.InDelta(t, 25000, r.TotalCostValue, 1e-9)
	assert.InDelta(t, 844, r.AnnualIncome, 1e-9)
	assert.InDelta(t, 844.0/12, r.MonthlyIncome, 1e-9)
	assert.InDelta(t, 3.02, r.PortfolioYieldPercent, 0.01)
	assert.InDelta(t, 844.0/25000*100, r.YieldOnCostPercent, 1e-9)
	assert.Equal(t, 2, r.HoldingCount)
}

func TestSectorPercentagesSumTo100(t *testing.T) {
	holdings := []models.Holding{
		holding("JNJ", 100, 140, 156.23, 4.76, "Healthcare"),
		holding("KO", 200, 55, 61.45, 1.84, "Consumer Staples"),
		holding("MSFT", 50, 350, 415.23, 3.00, "Technology"),
		holding("O", 150, 58, 52.34, 3.06, "Real Estate"),
	}

	r, err := Analyze(holdings)
	require.NoError(t, err)
	require.Len(t, r.Sectors, 4)

	total := 0.0
	for _, b := range r.Sectors {
		total += b.PercentOfPortfolio
	}
	assert.InDelta(t, 100, total, 1e-6)

	// Buckets are ordered largest first.
	for i := 1; i < len(r.Sectors); i++ {
		assert.GreaterOrEqual(t, r.Sectors[i-1].MarketValue, r.Sectors[i].MarketValue)
	}
}

func TestDiversificationScoreMonotonicInSectorCount(t *testing.T) {
	// Equal-weight portfolios: largest sector percent falls as sector
	// count rises, so the score must not decrease.
	prev := 0.0
	for sectors := 1; sectors <= 10; sectors++ {
		holdings := make([]models.Holding, sectors)
		for i := range holdings {
			holdings[i] = holding("T", 10, 100, 100, 2, string(rune('A'+i)))
		}
		r, err := Analyze(holdings)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, r.DiversificationScore, prev, "sectors=%d", sectors)
		assert.LessOrEqual(t, r.DiversificationScore, 100.0)
		prev = r.DiversificationScore
	}
}

func TestScoresCappedAt100(t *testing.T) {
	// A very high-yield single holding pushes the stability formula
	// well past the cap.
	r, err := Analyze([]models.Holding{holding("X", 100, 10, 10, 9, "Energy")})
	require.NoError(t, err)
	assert.Equal(t, 100.0, r.IncomeStabilityScore)
	assert.LessOrEqual(t, r.Breakdown.Yield, 100.0)
}

func TestInvalidHoldingRejected(t *testing.T) {
	tests := []struct {
		name string
		h    models.Holding
	}{
		{"zero shares", holding("A", 0, 100, 100, 1, "Tech")},
		{"negative shares", holding("A", -5, 100, 100, 1, "Tech")},
		{"zero cost basis", holding("A", 10, 0, 100, 1, "Tech")},
		{"negative price", holding("A", 10, 100, -1, 1, "Tech")},
		{"negative dividend", holding("A", 10, 100, 100, -0.5, "Tech")},
		{"nan shares", holding("A", math.NaN(), 100, 100, 1, "Tech")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good := holding("JNJ", 100, 140, 156.23, 4.76, "Healthcare")
			_, err := Analyze([]models.Holding{good, tt.h})
			require.ErrorIs(t, err, engine.ErrInvalidHolding)
		})
	}
}

func TestAnalyzeEmptyPortfolio(t *testing.T) {
	r, err := Analyze(nil)
	require.NoError(t, err)
	assert.Zero(t, r.TotalMarketValue)
	assert.Zero(t, r.PortfolioYieldPercent)
	assert.Zero(t, r.DiversificationScore)
	assert.Empty(t, r.Sectors)
}

func TestZeroPriceHolding(t *testing.T) {
	// A delisted position: zero market value is legal, the yield just
	// reads as zero for it.
	r, err := Analyze([]models.Holding{
		holding("DEAD", 100, 5, 0, 0, "Energy"),
		holding("KO", 200, 55, 61.45, 1.84, "Consumer Staples"),
	})
	require.NoError(t, err)
	assert.InDelta(t, 200*61.45, r.TotalMarketValue, 1e-9)
	assert.Equal(t, 0.0, r.Holdings[0].DividendYield)
}
