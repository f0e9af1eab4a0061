// Package journal persists item outcomes to Postgres so runs can be
// audited after the browser session is gone. The journal is optional:
// without a DSN every call is a no-op.
package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artemdev/ozon-cart-bot/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS item_outcomes (
	id         BIGSERIAL PRIMARY KEY,
	run_id     UUID NOT NULL,
	item       TEXT NOT NULL,
	status     TEXT NOT NULL,
	product    TEXT NOT NULL DEFAULT '',
	price      DOUBLE PRECISION,
	delivery   TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_item_outcomes_run_id ON item_outcomes(run_id);
`

type Journal struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Open connects to Postgres and ensures the outcome table exists. An
// empty DSN returns a nil journal, which is safe to use.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Journal, error) {
	if dsn == "" {
		return nil, nil
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse journal DSN: %w", err)
	}
	poolConfig.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &Journal{pool: pool, logger: logger.With("component", "journal")}, nil
}

func (j *Journal) Close() {
	if j == nil {
		return
	}
	j.pool.Close()
}

// Record writes one outcome row. A write failure is logged and swallowed:
// the journal must never break a shopping run.
func (j *Journal) Record(ctx context.Context, outcome models.ItemOutcome) {
	if j == nil {
		return
	}

	var price *float64
	if outcome.Price > 0 {
		price = &outcome.Price
	}

	_, err := j.pool.Exec(ctx,
		`INSERT INTO item_outcomes (run_id, item, status, product, price, delivery, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		outcome.RunID, outcome.Item, string(outcome.Status),
		outcome.Product, price, outcome.Delivery, outcome.Timestamp,
	)
	if err != nil {
		j.logger.Error("failed to journal outcome", "item", outcome.Item, "error", err)
	}
}
