package calculator

import (
	"math"

	"wealth-agent/domain"
)

// SIP projects a monthly contribution paid at the start of each month.
// At a zero rate the future value is the limit M*N.
func SIP(in domain.SIPInput) domain.SIPResult {
	n := in.Years * monthsPerYear
	invested := in.MonthlyInvestment * monthsPerYear * float64(in.Years)

	i := monthlyRate(in.AnnualRate)
	var maturity float64
	if i == 0 {
		maturity = in.MonthlyInvestment * float64(n)
	} else {
		maturity = in.MonthlyInvestment * (math.Pow(1+i, float64(n)) - 1) * (1 + i) / i
	}

	return domain.SIPResult{
		InvestedAmount:   invested,
		EstimatedReturns: maturity - invested,
		TotalValue:       maturity,
	}
}

// Lumpsum compounds a single upfront investment annually.
func Lumpsum(in domain.LumpsumInput) domain.LumpsumResult {
	maturity := compound(in.Principal, in.AnnualRate, in.Years)
	return domain.LumpsumResult{
		InvestedAmount:   in.Principal,
		EstimatedReturns: maturity - in.Principal,
		TotalValue:       maturity,
	}
}

// FixedDeposit compounds annually for cumulative payout. For annual payout the
// interest is withdrawn every year, so returns are simple interest.
// Any payout other than PayoutAnnually is treated as cumulative.
func FixedDeposit(in domain.FDInput) domain.FDResult {
	var returns float64
	if in.Payout == domain.PayoutAnnually {
		returns = in.Deposit * (in.AnnualRate / 100) * float64(in.Years)
	} else {
		returns = compound(in.Deposit, in.AnnualRate, in.Years) - in.Deposit
	}

	return domain.FDResult{
		InvestedAmount:   in.Deposit,
		EstimatedReturns: returns,
		TotalValue:       in.Deposit + returns,
	}
}
