package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/oracle-bridge/oracle-bridge/internal/domain/pricepair"
)

// AddPair starts tracking a pair.
func (s *Store) AddPair(ctx context.Context, symbol string) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO price_pairs (symbol) VALUES ($1) ON CONFLICT (symbol) DO NOTHING
	`, symbol)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pricepair.ErrPairExists
	}
	return nil
}

// DeletePair stops tracking a pair; its history is removed by cascade.
func (s *Store) DeletePair(ctx context.Context, symbol string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM price_pairs WHERE symbol=$1`, symbol)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pricepair.ErrPairNotFound
	}
	return nil
}

// ListPairs returns tracked pair symbols.
func (s *Store) ListPairs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT symbol FROM price_pairs ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var symbols []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, err
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

// Exists reports whether a pair is tracked.
func (s *Store) Exists(ctx context.Context, symbol string) (bool, error) {
	var found bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM price_pairs WHERE symbol=$1)
	`, symbol).Scan(&found)
	return found, err
}

// AppendPrice appends an observation and evicts rows beyond the
// configured history cap.
func (s *Store) AppendPrice(ctx context.Context, symbol string, obs pricepair.Observation) error {
	exists, err := s.Exists(ctx, symbol)
	if err != nil {
		return err
	}
	if !exists {
		return pricepair.ErrPairNotFound
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO price_observations (symbol, ts, price) VALUES ($1, $2, $3)
	`, symbol, int64(obs.Timestamp), int64(obs.Price))
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		DELETE FROM price_observations
		WHERE symbol=$1 AND id NOT IN (
			SELECT id FROM price_observations WHERE symbol=$1 ORDER BY id DESC LIMIT $2
		)
	`, symbol, s.maxHistory)
	return err
}

// LatestPrice returns the most recent observation for a pair.
func (s *Store) LatestPrice(ctx context.Context, symbol string) (pricepair.Observation, error) {
	exists, err := s.Exists(ctx, symbol)
	if err != nil {
		return pricepair.Observation{}, err
	}
	if !exists {
		return pricepair.Observation{}, pricepair.ErrPairNotFound
	}
	var ts, price int64
	err = s.pool.QueryRow(ctx, `
		SELECT ts, price FROM price_observations WHERE symbol=$1 ORDER BY id DESC LIMIT 1
	`, symbol).Scan(&ts, &price)
	if errors.Is(err, pgx.ErrNoRows) {
		return pricepair.Observation{}, pricepair.ErrNoPrice
	}
	if err != nil {
		return pricepair.Observation{}, err
	}
	return pricepair.Observation{Timestamp: uint64(ts), Price: uint64(price)}, nil
}

// Prices returns up to n most recent observations, oldest first.
func (s *Store) Prices(ctx context.Context, symbol string, n int) ([]pricepair.Observation, error) {
	exists, err := s.Exists(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, pricepair.ErrPairNotFound
	}
	rows, err := s.pool.Query(ctx, `
		SELECT ts, price FROM (
			SELECT id, ts, price FROM price_observations
			WHERE symbol=$1 ORDER BY id DESC LIMIT $2
		) recent ORDER BY id ASC
	`, symbol, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []pricepair.Observation
	for rows.Next() {
		var ts, price int64
		if err := rows.Scan(&ts, &price); err != nil {
			return nil, err
		}
		out = append(out, pricepair.Observation{Timestamp: uint64(ts), Price: uint64(price)})
	}
	return out, rows.Err()
}
