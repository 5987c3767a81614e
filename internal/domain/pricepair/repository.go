package pricepair

import "context"

// Repository persists tracked pairs and their bounded observation
// histories. AppendPrice evicts the oldest observation once the
// configured cap is reached. Callers append in timestamp order; the
// store does not reorder.
type Repository interface {
	AddPair(ctx context.Context, symbol string) error
	DeletePair(ctx context.Context, symbol string) error
	ListPairs(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, symbol string) (bool, error)

	AppendPrice(ctx context.Context, symbol string, obs Observation) error
	LatestPrice(ctx context.Context, symbol string) (Observation, error)

	// Prices returns up to n most recent observations, oldest first.
	Prices(ctx context.Context, symbol string, n int) ([]Observation, error)
}
