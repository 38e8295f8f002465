package domain

import "time"

type SIPInput struct {
	MonthlyInvestment float64 `json:"monthly_investment"`
	AnnualRate        float64 `json:"annual_rate"`
	Years             int     `json:"years"`
}

type SIPResult struct {
	InvestedAmount   float64
	EstimatedReturns float64
	TotalValue       float64
}

type LumpsumInput struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	Years      int     `json:"years"`
}

type LumpsumResult struct {
	InvestedAmount   float64
	EstimatedReturns float64
	TotalValue       float64
}

// PayoutMode selects how fixed deposit interest is paid out.
type PayoutMode string

const (
	PayoutCumulative PayoutMode = "cumulative"
	PayoutAnnually   PayoutMode = "annually"
)

func (m PayoutMode) Valid() bool {
	return m == PayoutCumulative || m == PayoutAnnually
}

type FDInput struct {
	Deposit    float64    `json:"deposit"`
	AnnualRate float64    `json:"annual_rate"`
	Years      int        `json:"years"`
	Payout     PayoutMode `json:"payout"`
}

type FDResult struct {
	InvestedAmount   float64
	EstimatedReturns float64
	TotalValue       float64
}

type LoanInput struct {
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"annual_rate"`
	TenureYears  int     `json:"tenure_years"`
}

type LoanResult struct {
	MonthlyPayment float64
	TotalPayment   float64
	TotalInterest  float64
}

// CalculationKind names the calculator a record was produced by.
type CalculationKind string

const (
	KindSIP     CalculationKind = "sip"
	KindLumpsum CalculationKind = "lumpsum"
	KindFD      CalculationKind = "fd"
	KindLoan    CalculationKind = "loan"
)

// CalculationRecord is one stored calculator invocation. Input and Result hold the
// JSON encoding of the typed values above.
type CalculationRecord struct {
	ID        string
	Kind      CalculationKind
	Input     []byte
	Result    []byte
	CreatedAt time.Time
}
