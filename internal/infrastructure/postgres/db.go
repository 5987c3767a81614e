package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates a pgx connection pool.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	return pgxpool.NewWithConfig(ctx, config)
}

// EnsureSchema creates the bridge tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS bridge_cells (
			key   TEXT PRIMARY KEY,
			value BYTEA NOT NULL
		);
		CREATE TABLE IF NOT EXISTS price_pairs (
			symbol     TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS price_observations (
			id     BIGSERIAL PRIMARY KEY,
			symbol TEXT NOT NULL REFERENCES price_pairs(symbol) ON DELETE CASCADE,
			ts     BIGINT NOT NULL,
			price  BIGINT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_price_observations_symbol_id
			ON price_observations (symbol, id DESC);
	`)
	return err
}
