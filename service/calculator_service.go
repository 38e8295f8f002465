package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"wealth-agent/calculator"
	"wealth-agent/config"
	"wealth-agent/domain"
	"wealth-agent/repository"
)

type CalculatorService struct {
	repo   repository.CalculationRepository
	cache  repository.CacheRepository
	limits config.Limits
	logger *logrus.Logger
	now    func() time.Time
}

// NewCalculatorService creates a CalculatorService that validates input against
// limits before running the engine.
func NewCalculatorService(
	repo repository.CalculationRepository,
	cache repository.CacheRepository,
	limits config.Limits,
	logger *logrus.Logger,
) *CalculatorService {
	return &CalculatorService{
		repo:   repo,
		cache:  cache,
		limits: limits,
		logger: logger,
		now:    time.Now,
	}
}

func (s *CalculatorService) CalculateSIP(ctx context.Context, input domain.SIPInput) (domain.SIPResult, error) {
	l := s.limits.SIP
	if err := checkRange(input.MonthlyInvestment, l.MonthlyInvestment, ErrInvalidAmount, "monthly investment"); err != nil {
		return domain.SIPResult{}, err
	}
	if err := checkRange(input.AnnualRate, l.AnnualRate, ErrInvalidRate, "annual rate"); err != nil {
		return domain.SIPResult{}, err
	}
	if err := checkRange(float64(input.Years), l.Years, ErrInvalidTenure, "years"); err != nil {
		return domain.SIPResult{}, err
	}

	return calculate(ctx, s, domain.KindSIP, input, calculator.SIP), nil
}

func (s *CalculatorService) CalculateLumpsum(ctx context.Context, input domain.LumpsumInput) (domain.LumpsumResult, error) {
	l := s.limits.Lumpsum
	if err := checkRange(input.Principal, l.Principal, ErrInvalidAmount, "principal"); err != nil {
		return domain.LumpsumResult{}, err
	}
	if err := checkRange(input.AnnualRate, l.AnnualRate, ErrInvalidRate, "annual rate"); err != nil {
		return domain.LumpsumResult{}, err
	}
	if err := checkRange(float64(input.Years), l.Years, ErrInvalidTenure, "years"); err != nil {
		return domain.LumpsumResult{}, err
	}

	return calculate(ctx, s, domain.KindLumpsum, input, calculator.Lumpsum), nil
}

func (s *CalculatorService) CalculateFD(ctx context.Context, input domain.FDInput) (domain.FDResult, error) {
	if input.Payout == "" {
		input.Payout = domain.PayoutCumulative
	}
	if !input.Payout.Valid() {
		return domain.FDResult{}, fmt.Errorf("%w: %q", ErrInvalidPayout, input.Payout)
	}

	l := s.limits.FD
	if err := checkRange(input.Deposit, l.Deposit, ErrInvalidAmount, "deposit"); err != nil {
		return domain.FDResult{}, err
	}
	if err := checkRange(input.AnnualRate, l.AnnualRate, ErrInvalidRate, "annual rate"); err != nil {
		return domain.FDResult{}, err
	}
	if err := checkRange(float64(input.Years), l.Years, ErrInvalidTenure, "years"); err != nil {
		return domain.FDResult{}, err
	}

	return calculate(ctx, s, domain.KindFD, input, calculator.FixedDeposit), nil
}

func (s *CalculatorService) CalculateLoan(ctx context.Context, input domain.LoanInput) (domain.LoanResult, error) {
	l := s.limits.Loan
	if err := checkRange(input.Amount, l.Amount, ErrInvalidAmount, "amount"); err != nil {
		return domain.LoanResult{}, err
	}
	if err := checkRange(input.InterestRate, l.AnnualRate, ErrInvalidRate, "annual rate"); err != nil {
		return domain.LoanResult{}, err
	}
	// the engine has no schedule for zero payments, whatever the configured bounds
	if input.TenureYears <= 0 {
		return domain.LoanResult{}, fmt.Errorf("%w: tenure must be positive", ErrInvalidTenure)
	}
	if err := checkRange(float64(input.TenureYears), l.TenureYears, ErrInvalidTenure, "tenure years"); err != nil {
		return domain.LoanResult{}, err
	}

	return calculate(ctx, s, domain.KindLoan, input, calculator.EMI), nil
}

// History returns the most recent stored calculations of kind.
func (s *CalculatorService) History(
	ctx context.Context,
	kind domain.CalculationKind,
	limit int,
) ([]domain.CalculationRecord, error) {
	switch kind {
	case domain.KindSIP, domain.KindLumpsum, domain.KindFD, domain.KindLoan:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.repo.Recent(ctx, kind, limit)
}

// calculate serves compute(input) from the cache when possible and records
// fresh results. Cache and history failures are logged, never returned.
func calculate[I, R any](
	ctx context.Context,
	s *CalculatorService,
	kind domain.CalculationKind,
	input I,
	compute func(I) R,
) R {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		s.logger.WithError(err).WithField("kind", kind).Warn("could not encode calculator input")
		return compute(input)
	}
	key := string(kind) + ":" + string(inputJSON)

	if cached, ok := s.cache.Get(ctx, key); ok {
		var result R
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result
		}
		s.logger.WithField("key", key).Warn("discarding unreadable cache entry")
	}

	result := compute(input)

	resultJSON, err := json.Marshal(result)
	if err != nil {
		s.logger.WithError(err).WithField("kind", kind).Warn("could not encode calculator result")
		return result
	}

	if err := s.cache.Set(ctx, key, string(resultJSON), CalculationCacheTTL); err != nil {
		s.logger.WithError(err).WithField("kind", kind).Warn("failed to cache calculation")
	}

	record := domain.CalculationRecord{
		ID:        uuid.NewString(),
		Kind:      kind,
		Input:     inputJSON,
		Result:    resultJSON,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.WithError(err).WithField("kind", kind).Warn("failed to save calculation")
	}

	return result
}

func checkRange(v float64, r config.Range, sentinel error, field string) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || !r.Contains(v) {
		return fmt.Errorf("%w: %s must be between %g and %g", sentinel, field, r.Min, r.Max)
	}
	return nil
}
