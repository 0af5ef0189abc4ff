package models

// Holding is one stock position. The engine never mutates a Holding;
// derived figures (market value, yield, gain) are computed per call so
// they cannot go stale.
type Holding struct {
	Ticker                 string  `json:"ticker" validate:"required"`
	Shares                 float64 `json:"shares" validate:"gt=0"`
	CostBasisPerShare      float64 `json:"costBasis" validate:"gt=0"`
	CurrentPricePerShare   float64 `json:"currentPrice" validate:"gte=0"`
	AnnualDividendPerShare float64 `json:"annualDividend" validate:"gte=0"`
	Sector                 string  `json:"sector" validate:"required"`
}

// HoldingMetrics carries the per-position derived figures.
type HoldingMetrics struct {
	Ticker        string  `json:"ticker"`
	MarketValue   float64 `json:"marketValue"`
	CostValue     float64 `json:"costValue"`
	AnnualIncome  float64 `json:"annualIncome"`
	DividendYield float64 `json:"dividendYield"` // percent of current price
	GainPercent   float64 `json:"gainPercent"`
}

// SectorBucket aggregates the holdings of one sector. Recomputed on
// every scoring call; percentages across all buckets sum to 100 when
// the portfolio has any market value.
type SectorBucket struct {
	Sector             string  `json:"sector"`
	MarketValue        float64 `json:"marketValue"`
	AnnualIncome       float64 `json:"annualIncome"`
	PercentOfPortfolio float64 `json:"percentOfPortfolio"`
}

// ScoreBreakdown is the radar-style composite view of the portfolio,
// each axis scaled 0-100.
type ScoreBreakdown struct {
	Yield     float64 `json:"yield"`
	Growth    float64 `json:"growth"`
	Diversity float64 `json:"diversity"`
	Stability float64 `json:"stability"`
	Size      float64 `json:"size"`
}

// PortfolioReport is the full valuation and scoring output.
//
// DiversificationScore and IncomeStabilityScore are heuristics, not
// statistically rigorous concentration indexes; see the portfolio
// package for the exact formulas.
type PortfolioReport struct {
	TotalMarketValue      float64          `json:"totalMarketValue"`
	TotalCostValue        float64          `json:"totalCostValue"`
	TotalGain             float64          `json:"totalGain"`
	TotalGainPercent      float64          `json:"totalGainPercent"`
	AnnualIncome          float64          `json:"annualIncome"`
	MonthlyIncome         float64          `json:"monthlyIncome"`
	PortfolioYieldPercent float64          `json:"portfolioYield"`
	YieldOnCostPercent    float64          `json:"yieldOnCost"`
	Holdings              []HoldingMetrics `json:"holdings"`
	Sectors               []SectorBucket   `json:"sectorAllocation"`
	DiversificationScore  float64          `json:"diversificationScore"`
	IncomeStabilityScore  float64          `json:"incomeStabilityScore"`
	Breakdown             ScoreBreakdown   `json:"breakdown"`
	HoldingCount          int              `json:"holdingCount"`
}

// PortfolioAnalysis pairs a report with the income projection it seeds.
type PortfolioAnalysis struct {
	Report          *PortfolioReport  `json:"report"`
	ProjectedIncome []ProjectionPoint `json:"projectedIncome,omitempty"`
}
