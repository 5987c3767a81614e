package account

import "context"

// Repository persists the registration status cell. The cell survives
// process restarts; a missing cell reads as Unregistered.
type Repository interface {
	GetStatus(ctx context.Context) (Status, error)
	SetStatus(ctx context.Context, status Status) error
}
