package account

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// State is the registration workflow state.
type State string

const (
	StateUnregistered State = "UNREGISTERED"
	StateInProgress   State = "IN_PROGRESS"
	StateRegistered   State = "REGISTERED"
)

var (
	// ErrAlreadyRegistered is returned when registration is re-entered
	// while a workflow is in progress or already complete.
	ErrAlreadyRegistered = errors.New("account already registered or registration in progress")

	// ErrNotRegistered is returned by queries before registration completes.
	ErrNotRegistered = errors.New("account not registered yet")
)

// Status is the persisted registration status. Address is meaningful
// only in StateRegistered.
type Status struct {
	State   State
	Address common.Address
}

// Unregistered is the initial status.
func Unregistered() Status {
	return Status{State: StateUnregistered}
}

// InProgress marks a workflow under way.
func InProgress() Status {
	return Status{State: StateInProgress}
}

// Registered marks a completed registration for the given identity.
func Registered(addr common.Address) Status {
	return Status{State: StateRegistered, Address: addr}
}
