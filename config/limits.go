package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Range is an inclusive bound on a calculator input.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

type SIPLimits struct {
	MonthlyInvestment Range `yaml:"monthly_investment"`
	AnnualRate        Range `yaml:"annual_rate"`
	Years             Range `yaml:"years"`
}

type LumpsumLimits struct {
	Principal  Range `yaml:"principal"`
	AnnualRate Range `yaml:"annual_rate"`
	Years      Range `yaml:"years"`
}

type FDLimits struct {
	Deposit    Range `yaml:"deposit"`
	AnnualRate Range `yaml:"annual_rate"`
	Years      Range `yaml:"years"`
}

type LoanLimits struct {
	Amount      Range `yaml:"amount"`
	AnnualRate  Range `yaml:"annual_rate"`
	TenureYears Range `yaml:"tenure_years"`
}

// Limits bounds every calculator input accepted by the service layer.
type Limits struct {
	SIP     SIPLimits     `yaml:"sip"`
	Lumpsum LumpsumLimits `yaml:"lumpsum"`
	FD      FDLimits      `yaml:"fd"`
	Loan    LoanLimits    `yaml:"loan"`
}

// DefaultLimits mirrors the slider bounds of the mobile calculators.
func DefaultLimits() Limits {
	return Limits{
		SIP: SIPLimits{
			MonthlyInvestment: Range{Min: 5000, Max: 1_000_000},
			AnnualRate:        Range{Min: 1, Max: 30},
			Years:             Range{Min: 1, Max: 30},
		},
		Lumpsum: LumpsumLimits{
			Principal:  Range{Min: 25000, Max: 10_000_000},
			AnnualRate: Range{Min: 1, Max: 30},
			Years:      Range{Min: 1, Max: 30},
		},
		FD: FDLimits{
			Deposit:    Range{Min: 100_000, Max: 10_000_000},
			AnnualRate: Range{Min: 1, Max: 15},
			Years:      Range{Min: 1, Max: 25},
		},
		Loan: LoanLimits{
			Amount:      Range{Min: 100_000, Max: 10_000_000},
			AnnualRate:  Range{Min: 1, Max: 30},
			TenureYears: Range{Min: 1, Max: 30},
		},
	}
}

// LoadLimits overlays the YAML file at path on DefaultLimits. Ranges left out of
// the file keep their defaults. An empty path returns the defaults.
func LoadLimits(path string) (Limits, error) {
	limits := DefaultLimits()
	if path == "" {
		return limits, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("read limits file: %w", err)
	}
	if err := yaml.Unmarshal(data, &limits); err != nil {
		return Limits{}, fmt.Errorf("parse limits file: %w", err)
	}
	return limits, nil
}
