package repository

import (
	"context"

	"wealth-agent/domain"
)

type CalculationRepository interface {
	Save(ctx context.Context, record domain.CalculationRecord) error
	// Recent returns up to limit records of kind, newest first.
	Recent(ctx context.Context, kind domain.CalculationKind, limit int) ([]domain.CalculationRecord, error)
}
