// Package calculator holds the closed-form projections behind the investment and
// loan calculators. Every function is pure and total: no rounding, no errors, no
// logging. Callers validate ranges before calling in.
package calculator

import "math"

const monthsPerYear = 12

// monthlyRate converts an annual percentage into a monthly fraction.
func monthlyRate(annualRate float64) float64 {
	return annualRate / 100 / monthsPerYear
}

// compound returns principal grown at annualRate percent for years whole periods.
func compound(principal, annualRate float64, years int) float64 {
	return principal * math.Pow(1+annualRate/100, float64(years))
}
