package calculator

import (
	"math"
	"testing"

	"wealth-agent/domain"
)

func closeTo(got, want, relTol float64) bool {
	if want == 0 {
		return math.Abs(got) <= relTol
	}
	return math.Abs(got-want)/math.Abs(want) <= relTol
}

func TestSIP_MonthlyScenario(t *testing.T) {
	in := domain.SIPInput{MonthlyInvestment: 5000, AnnualRate: 12, Years: 1}

	result := SIP(in)

	if result.InvestedAmount != 60000 {
		t.Fatalf("expected invested 60000, got %.2f", result.InvestedAmount)
	}

	i := 0.01
	want := 5000 * (math.Pow(1+i, 12) - 1) * (1 + i) / i
	if !closeTo(result.TotalValue, want, 1e-12) {
		t.Errorf("expected maturity %.6f, got %.6f", want, result.TotalValue)
	}
	if !closeTo(result.EstimatedReturns, want-60000, 1e-9) {
		t.Errorf("expected returns %.6f, got %.6f", want-60000, result.EstimatedReturns)
	}
}

func TestSIP_InvestedIsExact(t *testing.T) {
	for _, m := range []float64{5000, 34388, 1000000} {
		for years := 1; years <= 30; years++ {
			result := SIP(domain.SIPInput{MonthlyInvestment: m, AnnualRate: 12, Years: years})
			if want := m * 12 * float64(years); result.InvestedAmount != want {
				t.Fatalf("m=%.0f years=%d: expected %.0f, got %.0f", m, years, want, result.InvestedAmount)
			}
		}
	}
}

func TestSIP_ZeroRateIsContributionSum(t *testing.T) {
	result := SIP(domain.SIPInput{MonthlyInvestment: 1000, AnnualRate: 0, Years: 2})

	if result.TotalValue != 24000 {
		t.Errorf("expected 24000, got %.4f", result.TotalValue)
	}
	if result.EstimatedReturns != 0 {
		t.Errorf("expected no returns, got %.4f", result.EstimatedReturns)
	}
}

func TestLumpsum_MatchesCompoundFormula(t *testing.T) {
	cases := []struct {
		p     float64
		r     float64
		years int
	}{
		{25000, 12, 10},
		{100000, 7.5, 5},
		{10000000, 30, 30},
		{50000, 1, 1},
	}

	for _, tc := range cases {
		result := Lumpsum(domain.LumpsumInput{Principal: tc.p, AnnualRate: tc.r, Years: tc.years})
		want := tc.p * math.Pow(1+tc.r/100, float64(tc.years))
		if !closeTo(result.TotalValue, want, 1e-9) {
			t.Errorf("%v: expected %.6f, got %.6f", tc, want, result.TotalValue)
		}
		if result.EstimatedReturns != result.TotalValue-tc.p {
			t.Errorf("%v: returns must equal maturity minus principal", tc)
		}
	}
}

func TestFixedDeposit_CumulativeDominatesAnnualPayout(t *testing.T) {
	for years := 2; years <= 25; years++ {
		for _, rate := range []float64{1, 5.5, 7, 15} {
			cum := FixedDeposit(domain.FDInput{Deposit: 100000, AnnualRate: rate, Years: years, Payout: domain.PayoutCumulative})
			ann := FixedDeposit(domain.FDInput{Deposit: 100000, AnnualRate: rate, Years: years, Payout: domain.PayoutAnnually})
			if cum.TotalValue < ann.TotalValue {
				t.Fatalf("years=%d rate=%.1f: cumulative %.2f below annual %.2f", years, rate, cum.TotalValue, ann.TotalValue)
			}
		}
	}
}

func TestFixedDeposit_AnnualPayoutIsSimpleInterest(t *testing.T) {
	result := FixedDeposit(domain.FDInput{Deposit: 100000, AnnualRate: 7, Years: 5, Payout: domain.PayoutAnnually})

	if !closeTo(result.EstimatedReturns, 35000, 1e-12) {
		t.Errorf("expected returns 35000, got %.4f", result.EstimatedReturns)
	}
	if !closeTo(result.TotalValue, 135000, 1e-12) {
		t.Errorf("expected total 135000, got %.4f", result.TotalValue)
	}
}

func TestEMI_LoanScenario(t *testing.T) {
	result := EMI(domain.LoanInput{Amount: 500000, InterestRate: 12, TenureYears: 5})

	if math.Abs(result.MonthlyPayment-11122.22) > 0.01 {
		t.Errorf("expected EMI ~11122.22, got %.4f", result.MonthlyPayment)
	}
	if math.Abs(result.TotalPayment-667333.34) > 1 {
		t.Errorf("expected total ~667333, got %.4f", result.TotalPayment)
	}
	if math.Abs(result.TotalInterest-167333.34) > 1 {
		t.Errorf("expected interest ~167333, got %.4f", result.TotalInterest)
	}
}

func TestEMI_TotalsAreConsistent(t *testing.T) {
	for _, amount := range []float64{100000, 750000, 10000000} {
		for _, rate := range []float64{1, 8.5, 12, 30} {
			for years := 1; years <= 30; years += 7 {
				result := EMI(domain.LoanInput{Amount: amount, InterestRate: rate, TenureYears: years})
				n := float64(years * 12)
				if result.TotalPayment != result.MonthlyPayment*n {
					t.Fatalf("total must equal EMI * N for %.0f/%.1f/%d", amount, rate, years)
				}
				if result.TotalInterest != result.TotalPayment-amount {
					t.Fatalf("interest must equal total minus principal for %.0f/%.1f/%d", amount, rate, years)
				}
			}
		}
	}
}

func TestEMI_ZeroRateSplitsPrincipal(t *testing.T) {
	result := EMI(domain.LoanInput{Amount: 1200, InterestRate: 0, TenureYears: 1})

	if result.MonthlyPayment != 100 {
		t.Errorf("expected 100, got %.2f", result.MonthlyPayment)
	}
	if result.TotalInterest != 0 {
		t.Errorf("expected no interest, got %.2f", result.TotalInterest)
	}
}

func TestEMI_ZeroTenureIsNaN(t *testing.T) {
	result := EMI(domain.LoanInput{Amount: 1200, InterestRate: 10, TenureYears: 0})

	if !math.IsNaN(result.MonthlyPayment) || !math.IsNaN(result.TotalPayment) || !math.IsNaN(result.TotalInterest) {
		t.Errorf("expected NaN fields, got %+v", result)
	}
}

func TestCalculators_AreDeterministic(t *testing.T) {
	in := domain.SIPInput{MonthlyInvestment: 34388, AnnualRate: 12.7, Years: 17}
	if SIP(in) != SIP(in) {
		t.Error("SIP must return identical results for identical input")
	}
	loan := domain.LoanInput{Amount: 987654, InterestRate: 9.9, TenureYears: 13}
	if EMI(loan) != EMI(loan) {
		t.Error("EMI must return identical results for identical input")
	}
}
