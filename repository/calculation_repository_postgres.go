package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"wealth-agent/domain"
)

const createCalculationsTable = `
CREATE TABLE IF NOT EXISTS calculations (
	id         UUID PRIMARY KEY,
	kind       TEXT NOT NULL,
	input      JSONB NOT NULL,
	result     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// CalculationRepositoryPostgres keeps calculation history in a Postgres table.
type CalculationRepositoryPostgres struct {
	pool   *pgxpool.Pool
	logger *logrus.Logger
}

// NewCalculationRepositoryPostgres opens a pool on databaseURL and ensures the
// calculations table exists.
func NewCalculationRepositoryPostgres(
	ctx context.Context,
	databaseURL string,
	logger *logrus.Logger,
) (*CalculationRepositoryPostgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createCalculationsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create calculations table: %w", err)
	}
	logger.Info("calculation history stored in postgres")

	return &CalculationRepositoryPostgres{pool: pool, logger: logger}, nil
}

func (r *CalculationRepositoryPostgres) Save(ctx context.Context, record domain.CalculationRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO calculations (id, kind, input, result, created_at) VALUES ($1, $2, $3, $4, $5)`,
		record.ID, string(record.Kind), record.Input, record.Result, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert calculation %s: %w", record.ID, err)
	}
	return nil
}

func (r *CalculationRepositoryPostgres) Recent(
	ctx context.Context,
	kind domain.CalculationKind,
	limit int,
) ([]domain.CalculationRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, kind, input, result, created_at
		   FROM calculations
		  WHERE kind = $1
		  ORDER BY created_at DESC
		  LIMIT $2`,
		string(kind), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CalculationRecord, error) {
		var rec domain.CalculationRecord
		var k string
		if err := row.Scan(&rec.ID, &k, &rec.Input, &rec.Result, &rec.CreatedAt); err != nil {
			return rec, err
		}
		rec.Kind = domain.CalculationKind(k)
		return rec, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan calculations: %w", err)
	}
	return records, nil
}

func (r *CalculationRepositoryPostgres) Close() {
	r.pool.Close()
}
