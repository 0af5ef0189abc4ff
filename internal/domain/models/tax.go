package models

// FilingStatus selects the bracket table and standard deduction.
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJoint    FilingStatus = "married_joint"
	FilingHeadOfHousehold FilingStatus = "head_of_household"
)

// TaxBracket is one progressive bracket. The top bracket uses
// math.Inf(1) as Max.
type TaxBracket struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Rate float64 `json:"rate"`
}

// TaxScenario is the pure input to a tax estimate. StateRate is a flat
// decimal rate applied to gross income.
type TaxScenario struct {
	OrdinaryIncome          float64
	DividendIncome          float64
	CapitalGains            float64
	FilingStatus            FilingStatus
	StateRate               float64
	RetirementContributions float64
	LossHarvestAmount       float64
}

// Strategy difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Strategy is one ranked mitigation suggestion. Savings estimates are
// independent approximations; applying several together may
// double-count, so they are not additive.
type Strategy struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	EstimatedSavings float64 `json:"estimatedSavings"`
	Difficulty       string  `json:"difficulty"`
}

// TaxBreakdown is the layered liability plus the ranked strategies,
// ordered by EstimatedSavings descending (stable on ties).
type TaxBreakdown struct {
	TaxableIncome         float64    `json:"taxableIncome"`
	FederalTax            float64    `json:"federalTax"`
	DividendTax           float64    `json:"dividendTax"`
	CapitalGainsTax       float64    `json:"capitalGainsTax"`
	StateTax              float64    `json:"stateTax"`
	TotalTax              float64    `json:"totalTax"`
	EffectiveRatePercent  float64    `json:"effectiveRate"`
	MarginalRate          float64    `json:"marginalRate"`
	AfterTaxIncome        float64    `json:"afterTaxIncome"`
	TotalPotentialSavings float64    `json:"totalPotentialSavings"`
	Strategies            []Strategy `json:"strategies"`
}
