package contract

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// State is the deployment workflow state.
type State string

const (
	StateUnregistered State = "UNREGISTERED"
	StateInProgress   State = "IN_PROGRESS"
	StateRegistered   State = "REGISTERED"
)

var (
	// ErrAlreadyDeployed is returned when deployment is re-entered
	// while a workflow is in progress or already complete.
	ErrAlreadyDeployed = errors.New("contract already deployed or deployment in progress")

	// ErrNotDeployed is returned by queries and invokes before a
	// deployment is confirmed.
	ErrNotDeployed = errors.New("contract not deployed yet")

	// ErrNothingPending is returned by Confirm when no deployment
	// transaction is awaiting a receipt.
	ErrNothingPending = errors.New("no pending deployment transaction")

	// ErrDeploymentLost is returned by Confirm when the deployment
	// transaction failed or its receipt is not yet available; the
	// workflow has been reset and must be retried from Deploy.
	ErrDeploymentLost = errors.New("deployment transaction failed or not yet mined; deployment reset")
)

// Status is the persisted deployment status. Address is meaningful only
// in StateRegistered. While InProgress, the companion pending-tx cell
// holds the hash of the submitted creation transaction.
type Status struct {
	State   State
	Address common.Address
}

// Unregistered is the initial status.
func Unregistered() Status {
	return Status{State: StateUnregistered}
}

// InProgress marks a deployment under way.
func InProgress() Status {
	return Status{State: StateInProgress}
}

// Registered marks a confirmed deployment at the given address.
func Registered(addr common.Address) Status {
	return Status{State: StateRegistered, Address: addr}
}
