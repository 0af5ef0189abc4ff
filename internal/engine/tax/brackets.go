package tax

import (
	"fmt"
	"math"

	"DiviHub/internal/domain/models"
	"DiviHub/internal/engine"
)

// 2024 federal tables. These are illustrative planning figures, not a
// production tax engine.
var bracketsSingle = []models.TaxBracket{
	{Min: 0, Max: 11600, Rate: 0.10},
	{Min: 11600, Max: 47150, Rate: 0.12},
	{Min: 47150, Max: 100525, Rate: 0.22},
	{Min: 100525, Max: 191950, Rate: 0.24},
	{Min: 191950, Max: 243725, Rate: 0.32},
	{Min: 243725, Max: 609350, Rate: 0.35},
	{Min: 609350, Max: math.Inf(1), Rate: 0.37},
}

var bracketsMarriedJoint = []models.TaxBracket{
	{Min: 0, Max: 23200, Rate: 0.10},
	{Min: 23200, Max: 94300, Rate: 0.12},
	{Min: 94300, Max: 201050, Rate: 0.22},
	{Min: 201050, Max: 383900, Rate: 0.24},
	{Min: 383900, Max: 487450, Rate: 0.32},
	{Min: 487450, Max: 731200, Rate: 0.35},
	{Min: 731200, Max: math.Inf(1), Rate: 0.37},
}

var standardDeductions = map[models.FilingStatus]float64{
	models.FilingSingle:          14600,
	models.FilingMarriedJoint:    29200,
	models.FilingHeadOfHousehold: 21900,
}

// Preferential-rate breakpoints for qualified dividends and long-term
// gains. The whole preferential amount takes one flat rate chosen by
// taxable income; the tiers are not themselves progressive.
const (
	preferentialZeroCap    = 47025
	preferentialFifteenCap = 518900
)

// Flat state rates for the supported jurisdictions.
var stateRates = map[string]float64{
	"California":    0.133,
	"New York":      0.109,
	"Texas":         0,
	"Florida":       0,
	"Illinois":      0.0495,
	"Pennsylvania":  0.0307,
	"Massachusetts": 0.05,
	"Washington":    0,
	"Nevada":        0,
	"Oregon":        0.099,
}

// BracketsFor returns the progressive table for a filing status. Head
// of household uses the single table with its own standard deduction.
func BracketsFor(fs models.FilingStatus) ([]models.TaxBracket, error) {
	switch fs {
	case models.FilingSingle, models.FilingHeadOfHousehold:
		return bracketsSingle, nil
	case models.FilingMarriedJoint:
		return bracketsMarriedJoint, nil
	default:
		return nil, fmt.Errorf("%w: filing status %q", engine.ErrUnknownJurisdiction, fs)
	}
}

// StandardDeduction returns the deduction for a filing status.
func StandardDeduction(fs models.FilingStatus) (float64, error) {
	d, ok := standardDeductions[fs]
	if !ok {
		return 0, fmt.Errorf("%w: filing status %q", engine.ErrUnknownJurisdiction, fs)
	}
	return d, nil
}

// StateRate resolves a named state to its flat rate. Unknown states are
// an error, never a defaulted rate.
func StateRate(state string) (float64, error) {
	r, ok := stateRates[state]
	if !ok {
		return 0, fmt.Errorf("%w: state %q", engine.ErrUnknownJurisdiction, state)
	}
	return r, nil
}

// PreferentialRate picks the flat dividend/capital-gains rate from the
// taxable-income breakpoints.
func PreferentialRate(taxableIncome float64) float64 {
	switch {
	case taxableIncome < preferentialZeroCap:
		return 0
	case taxableIncome < preferentialFifteenCap:
		return 0.15
	default:
		return 0.20
	}
}
