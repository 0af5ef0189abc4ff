// Package projection produces deterministic forward time series: a
// constant-growth income series and a lifecycle accumulation /
// distribution balance projection.
package projection

import (
	"fmt"
	"math"

	"DiviHub/internal/domain/models"
	"DiviHub/internal/engine"
)

// Income projects baseAnnualIncome forward under a constant growth
// rate. The returned series has periods+1 points indexed from 0.
// Cumulative uses the closed geometric form; growthRate == 0 takes the
// explicit linear limit base*(i+1) instead of dividing by zero.
func Income(baseAnnualIncome, growthRate float64, periods int) ([]models.ProjectionPoint, error) {
	if baseAnnualIncome < 0 || math.IsNaN(baseAnnualIncome) || math.IsInf(baseAnnualIncome, 0) {
		return nil, fmt.Errorf("%w: base annual income must be a non-negative finite number", engine.ErrInvalidScenario)
	}
	if math.IsNaN(growthRate) || math.IsInf(growthRate, 0) {
		return nil, fmt.Errorf("%w: growth rate must be finite", engine.ErrInvalidScenario)
	}
	if periods < 0 {
		return nil, fmt.Errorf("%w: periods must not be negative", engine.ErrInvalidScenario)
	}

	points := make([]models.ProjectionPoint, 0, periods+1)
	for i := 0; i <= periods; i++ {
		p := models.ProjectionPoint{
			Period: i,
			Value:  baseAnnualIncome * math.Pow(1+growthRate, float64(i)),
		}
		if growthRate == 0 {
			p.Cumulative = baseAnnualIncome * float64(i+1)
		} else {
			p.Cumulative = baseAnnualIncome * (math.Pow(1+growthRate, float64(i+1)) - 1) / growthRate
		}
		points = append(points, p)
	}
	return points, nil
}

// Retirement runs the lifecycle state machine over integer ages from
// CurrentAge to LifeExpectancy. Before RetirementAge the balance
// compounds at the real return and receives the annual contribution;
// from RetirementAge on it compounds and pays the inflation-adjusted
// expense shortfall. The switch is one-way. A depleted balance stays at
// zero for every later age - the plan has failed and there is no
// borrowing against it.
func Retirement(sc models.RetirementScenario) (*models.RetirementPlan, error) {
	if sc.RetirementAge < sc.CurrentAge {
		return nil, fmt.Errorf("%w: retirement age %d precedes current age %d",
			engine.ErrInvalidTimeline, sc.RetirementAge, sc.CurrentAge)
	}
	if sc.LifeExpectancy < sc.RetirementAge {
		return nil, fmt.Errorf("%w: life expectancy %d precedes retirement age %d",
			engine.ErrInvalidTimeline, sc.LifeExpectancy, sc.RetirementAge)
	}
	if sc.CurrentSavings < 0 || sc.AnnualContribution < 0 || sc.AnnualExpenses < 0 || sc.AnnualGuaranteedIncome < 0 {
		return nil, fmt.Errorf("%w: contributions, expenses, and savings must not be negative", engine.ErrInvalidScenario)
	}

	// Real return, decimal, used consistently for the whole series.
	realReturn := sc.NominalReturn - sc.InflationRate

	yearsToRetirement := sc.RetirementAge - sc.CurrentAge
	yearsInRetirement := sc.LifeExpectancy - sc.RetirementAge

	// Expenses are adjusted to retirement-date dollars once and held
	// there; the series itself is in real terms.
	adjustedExpenses := sc.AnnualExpenses * math.Pow(1+sc.InflationRate, float64(yearsToRetirement))
	annualShortfall := adjustedExpenses - sc.AnnualGuaranteedIncome

	plan := &models.RetirementPlan{
		YearsToRetirement:       yearsToRetirement,
		YearsInRetirement:       yearsInRetirement,
		AdjustedMonthlyExpenses: adjustedExpenses / 12,
	}

	balance := sc.CurrentSavings
	savingsAtRetirement := sc.CurrentSavings
	depleted := false

	for age := sc.CurrentAge; age <= sc.LifeExpectancy; age++ {
		phase := models.PhaseDistribution
		if age < sc.RetirementAge {
			phase = models.PhaseAccumulation
			balance = balance*(1+realReturn) + sc.AnnualContribution
		} else if !depleted {
			balance = balance*(1+realReturn) - annualShortfall
			if balance <= 0 {
				balance = 0
				depleted = true
			}
		}
		if age == sc.RetirementAge-1 {
			savingsAtRetirement = balance
		}
		plan.Points = append(plan.Points, models.BalancePoint{
			Age:     age,
			Balance: balance,
			Phase:   phase,
		})
	}

	plan.SavingsAtRetirement = savingsAtRetirement
	plan.FinalBalance = balance
	plan.TotalNeeded = annualShortfall * float64(yearsInRetirement)
	plan.Surplus = savingsAtRetirement - plan.TotalNeeded

	// Deterministic heuristic, not a Monte-Carlo result: centered at 50
	// and pulled up or down by the surplus relative to total need.
	if plan.TotalNeeded > 0 {
		plan.SuccessRate = clamp(50+plan.Surplus/plan.TotalNeeded*50, 0, 100)
	} else {
		// Guaranteed income covers expenses outright.
		plan.SuccessRate = 100
	}

	if yearsInRetirement > 0 {
		plan.MonthlyRetirementIncome = savingsAtRetirement / float64(yearsInRetirement*12)
	}
	return plan, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
