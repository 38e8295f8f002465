package calculator

import (
	"math"

	"wealth-agent/domain"
)

// EMI computes the equated monthly installment for a loan repaid over
// TenureYears*12 payments: P*i*(1+i)^N / ((1+i)^N - 1).
//
// A zero rate splits the principal evenly. Zero or negative tenure has no
// repayment schedule and yields NaN in every field.
func EMI(in domain.LoanInput) domain.LoanResult {
	n := in.TenureYears * monthsPerYear
	if n <= 0 {
		nan := math.NaN()
		return domain.LoanResult{MonthlyPayment: nan, TotalPayment: nan, TotalInterest: nan}
	}

	i := monthlyRate(in.InterestRate)
	var emi float64
	if i == 0 {
		emi = in.Amount / float64(n)
	} else {
		growth := math.Pow(1+i, float64(n))
		emi = in.Amount * i * growth / (growth - 1)
	}

	total := emi * float64(n)
	return domain.LoanResult{
		MonthlyPayment: emi,
		TotalPayment:   total,
		TotalInterest:  total - in.Amount,
	}
}
