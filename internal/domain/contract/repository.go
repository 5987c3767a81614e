package contract

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Repository persists the deployment status cell and its companion
// pending-tx cell. Both survive process restarts; missing cells read as
// Unregistered and the zero hash respectively.
type Repository interface {
	GetStatus(ctx context.Context) (Status, error)
	SetStatus(ctx context.Context, status Status) error

	// GetPendingTx returns the pending creation transaction hash; the
	// zero hash means nothing is pending.
	GetPendingTx(ctx context.Context) (common.Hash, error)
	SetPendingTx(ctx context.Context, hash common.Hash) error
}
