// Package nonce holds the persisted transaction sequence counter shared
// by every outgoing submission to the remote host.
package nonce

import (
	"context"
	"math/big"
)

// Repository persists the nonce counter cell. Get returns nil when the
// cell has never been written; the coordinator then starts at one.
type Repository interface {
	Get(ctx context.Context) (*big.Int, error)
	Set(ctx context.Context, value *big.Int) error
}
