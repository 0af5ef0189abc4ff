package models

// Requests for the engine HTTP endpoints. Defined in domain for consistency and reuse.

// RecordMetricRequest is the POST /api/metrics body. Value is a pointer
// so a missing value is distinguishable from an explicit zero.
type RecordMetricRequest struct {
	Name     string   `json:"name" validate:"required"`
	Value    *float64 `json:"value" validate:"required,finite"`
	Unit     string   `json:"unit" default:"ms"`
	Category string   `json:"category" default:"custom"`
	Path     string   `json:"path"`
}

// RecordMetricResponse mirrors the monitoring contract: the stored
// sample echoed back on success.
type RecordMetricResponse struct {
	Success bool   `json:"success"`
	Metric  Sample `json:"metric"`
}

// AnalyzePortfolioRequest is the POST /api/portfolio/analyze body.
type AnalyzePortfolioRequest struct {
	Holdings           []Holding `json:"holdings" validate:"required,min=1,dive"`
	ProjectionYears    int       `json:"projectionYears" default:"10" validate:"gte=0,lte=60"`
	DividendGrowthRate float64   `json:"dividendGrowthRate" default:"0.05" validate:"gte=-1,lte=1"`
}

// IncomeProjectionRequest is the POST /api/projection/income body.
type IncomeProjectionRequest struct {
	BaseAnnualIncome float64 `json:"baseAnnualIncome" validate:"gte=0"`
	GrowthRate       float64 `json:"growthRate" validate:"gte=-1,lte=1"`
	Periods          int     `json:"periods" default:"10" validate:"gte=0,lte=100"`
}

// RetirementPlanRequest is the POST /api/retirement/plan body. Rates are
// decimals, consistent with RetirementScenario.
type RetirementPlanRequest struct {
	CurrentAge             int     `json:"currentAge" validate:"gte=0,lte=120"`
	RetirementAge          int     `json:"retirementAge" validate:"gte=0,lte=120"`
	LifeExpectancy         int     `json:"lifeExpectancy" validate:"gte=0,lte=120"`
	CurrentSavings         float64 `json:"currentSavings" validate:"gte=0"`
	AnnualContribution     float64 `json:"annualContribution" validate:"gte=0"`
	NominalReturn          float64 `json:"nominalReturn" default:"0.07" validate:"gte=-1,lte=1"`
	InflationRate          float64 `json:"inflationRate" default:"0.03" validate:"gte=-1,lte=1"`
	AnnualExpenses         float64 `json:"annualExpenses" validate:"gte=0"`
	AnnualGuaranteedIncome float64 `json:"annualGuaranteedIncome" validate:"gte=0"`
}

// TaxEstimateRequest is the POST /api/tax/estimate body. State is a
// named jurisdiction resolved against the flat-rate table; unknown
// states are rejected rather than defaulted.
type TaxEstimateRequest struct {
	OrdinaryIncome          float64 `json:"ordinaryIncome" validate:"gte=0"`
	DividendIncome          float64 `json:"dividendIncome" validate:"gte=0"`
	CapitalGains            float64 `json:"capitalGains" validate:"gte=0"`
	FilingStatus            string  `json:"filingStatus" default:"single" validate:"oneof=single married_joint head_of_household"`
	State                   string  `json:"state" validate:"required"`
	RetirementContributions float64 `json:"retirementContributions" validate:"gte=0"`
	LossHarvestAmount       float64 `json:"lossHarvestAmount" validate:"gte=0"`
}
