// Package nonce coordinates the single transaction sequence counter
// shared by all outgoing submissions to the remote host.
package nonce

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/rs/zerolog"

	"github.com/oracle-bridge/oracle-bridge/internal/domain/nonce"
)

// Coordinator hands out nonces optimistically: the counter is advanced
// before the remote call completes, so independent transactions can be
// issued back-to-back. Correctness is restored after the fact through
// Reconcile when the host reports a mismatch.
type Coordinator struct {
	repo   nonce.Repository
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewCoordinator creates a coordinator over the persisted counter cell.
func NewCoordinator(repo nonce.Repository, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		repo:   repo,
		logger: logger.With().Str("service", "nonce").Logger(),
	}
}

// NextNonce returns the current counter value and persists the
// incremented successor. A counter that was never written starts at one.
func (c *Coordinator) NextNonce(ctx context.Context) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read nonce counter: %w", err)
	}
	if current == nil || current.Sign() == 0 {
		current = big.NewInt(1)
	}
	next := new(big.Int).Add(current, big.NewInt(1))
	if err := c.repo.Set(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to advance nonce counter: %w", err)
	}
	return current, nil
}

// Reconcile unconditionally overwrites the counter with the value the
// host reported as expected. This is the sole correction path; it may
// move the counter backward, never speculatively forward.
func (c *Coordinator) Reconcile(ctx context.Context, expected *big.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.repo.Set(ctx, new(big.Int).Set(expected)); err != nil {
		return fmt.Errorf("failed to reconcile nonce counter: %w", err)
	}
	c.logger.Warn().Str("expected", expected.String()).Msg("nonce counter reconciled from host feedback")
	return nil
}
