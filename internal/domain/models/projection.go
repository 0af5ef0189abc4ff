package models

// ProjectionPoint is one step of a constant-growth income series.
// Period is a 0-based index; the whole series is regenerated per call.
type ProjectionPoint struct {
	Period     int     `json:"period"`
	Value      float64 `json:"value"`
	Cumulative float64 `json:"cumulative"`
}

// Lifecycle phases for the retirement projection.
const (
	PhaseAccumulation = "accumulation"
	PhaseDistribution = "distribution"
)

// BalancePoint is one age step of a retirement projection.
type BalancePoint struct {
	Age     int     `json:"age"`
	Balance float64 `json:"balance"`
	Phase   string  `json:"phase"`
}

// RetirementScenario is the input to the lifecycle projection. All rates
// are decimals (0.07 = 7%) and stay decimal through the whole series.
type RetirementScenario struct {
	CurrentAge             int
	RetirementAge          int
	LifeExpectancy         int
	CurrentSavings         float64
	AnnualContribution     float64
	NominalReturn          float64
	InflationRate          float64
	AnnualExpenses         float64
	AnnualGuaranteedIncome float64
}

// RetirementPlan is the lifecycle projection output.
//
// SuccessRate is a deterministic heuristic confidence score, not a
// Monte-Carlo probability.
type RetirementPlan struct {
	Points                  []BalancePoint `json:"projection"`
	SavingsAtRetirement     float64        `json:"savingsAtRetirement"`
	FinalBalance            float64        `json:"finalBalance"`
	TotalNeeded             float64        `json:"totalNeeded"`
	Surplus                 float64        `json:"surplus"`
	SuccessRate             float64        `json:"successRate"`
	YearsToRetirement       int            `json:"yearsToRetirement"`
	YearsInRetirement       int            `json:"yearsInRetirement"`
	MonthlyRetirementIncome float64        `json:"monthlyRetirementIncome"`
	AdjustedMonthlyExpenses float64        `json:"adjustedMonthlyExpenses"`
}
