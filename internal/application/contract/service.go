// Package contract drives the aggregator deployment workflow: a
// two-phase submit/confirm state machine over a persisted status cell
// and a companion pending-tx cell, plus the typed call surface of the
// deployed contract.
package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/oracle-bridge/oracle-bridge/internal/application/gateway"
	"github.com/oracle-bridge/oracle-bridge/internal/contracts"
	domainContract "github.com/oracle-bridge/oracle-bridge/internal/domain/contract"
)

// Service is the contract deployment state machine.
type Service struct {
	repo   domainContract.Repository
	gw     gateway.Gateway
	logger zerolog.Logger

	// mu serializes the check-and-set on the status cell. It is held
	// only across the local read and write, never across a remote call.
	mu sync.Mutex
}

// NewService creates the deployment state machine.
func NewService(repo domainContract.Repository, gw gateway.Gateway, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		gw:     gw,
		logger: logger.With().Str("service", "contract").Logger(),
	}
}

// Deploy submits the aggregator creation transaction and persists its
// hash in the pending-tx cell, leaving the status InProgress until
// Confirm resolves it. On submission failure the status rolls back to
// Unregistered. The constructor payload is built before the status
// transition so an encoding failure mutates nothing.
func (s *Service) Deploy(ctx context.Context) (common.Hash, error) {
	code, err := contracts.AggregatorSingle()
	if err != nil {
		return common.Hash{}, err
	}
	// The aggregator constructor takes no arguments.
	payload, err := constructorPayload(code, nil)
	if err != nil {
		return common.Hash{}, err
	}

	if err := s.acquire(ctx); err != nil {
		return common.Hash{}, err
	}

	submitted := false
	defer func() {
		if !submitted {
			s.rollback(ctx)
		}
	}()

	hash, err := s.gw.CreateContract(ctx, new(big.Int), payload)
	if err != nil {
		return common.Hash{}, fmt.Errorf("contract creation submit failed: %w", err)
	}
	if err := s.repo.SetPendingTx(ctx, hash); err != nil {
		return common.Hash{}, fmt.Errorf("failed to persist pending deployment tx: %w", err)
	}
	submitted = true

	s.logger.Info().Str("tx", hash.Hex()).Msg("aggregator deployment submitted")
	return hash, nil
}

// Confirm resolves a pending deployment from its transaction receipt. A
// receipt with success status and a created address completes the
// workflow; a failed or absent receipt resets it to Unregistered so
// Deploy can be retried. The reset does not distinguish "still in the
// mempool" from "permanently failed", trading spurious redeployments
// for state-machine simplicity.
func (s *Service) Confirm(ctx context.Context) (common.Address, error) {
	pending, err := s.repo.GetPendingTx(ctx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read pending deployment tx: %w", err)
	}
	if pending == (common.Hash{}) {
		return common.Address{}, domainContract.ErrNothingPending
	}

	receipt, receiptErr := s.gw.GetTransactionReceipt(ctx, pending)

	var created *common.Address
	if receiptErr == nil && receipt.Succeeded() {
		created = receipt.ContractAddress
	}

	if created == nil {
		if err := s.repo.SetStatus(context.WithoutCancel(ctx), domainContract.Unregistered()); err != nil {
			return common.Address{}, fmt.Errorf("failed to reset deployment status: %w", err)
		}
		if err := s.repo.SetPendingTx(context.WithoutCancel(ctx), common.Hash{}); err != nil {
			return common.Address{}, fmt.Errorf("failed to clear pending deployment tx: %w", err)
		}
		if receiptErr != nil {
			return common.Address{}, fmt.Errorf("receipt lookup failed, deployment reset: %w", receiptErr)
		}
		return common.Address{}, domainContract.ErrDeploymentLost
	}

	if err := s.repo.SetStatus(ctx, domainContract.Registered(*created)); err != nil {
		return common.Address{}, fmt.Errorf("failed to persist deployed status: %w", err)
	}
	if err := s.repo.SetPendingTx(ctx, common.Hash{}); err != nil {
		return common.Address{}, fmt.Errorf("failed to clear pending deployment tx: %w", err)
	}

	s.logger.Info().Str("address", created.Hex()).Msg("aggregator deployment confirmed")
	return *created, nil
}

// CurrentContract returns the confirmed aggregator address.
func (s *Service) CurrentContract(ctx context.Context) (common.Address, error) {
	status, err := s.repo.GetStatus(ctx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read deployment status: %w", err)
	}
	if status.State != domainContract.StateRegistered {
		return common.Address{}, domainContract.ErrNotDeployed
	}
	return status.Address, nil
}

// AddPair calls the aggregator's addPair(string,uint8,string,uint256)
// and returns the submitted transaction hash.
func (s *Service) AddPair(ctx context.Context, pair string, decimals uint8, description string, version *big.Int) (common.Hash, error) {
	addr, err := s.CurrentContract(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	data, err := packCall(addPairMethod, pair, decimals, description, version)
	if err != nil {
		return common.Hash{}, err
	}
	return s.gw.Transact(ctx, new(big.Int), addr, data)
}

// UpdateAnswers calls the aggregator's
// updateAnswers(string[],uint256[],uint256[]) with one batched update
// per tracked pair and returns the submitted transaction hash.
func (s *Service) UpdateAnswers(ctx context.Context, pairs []string, timestamps, answers []*big.Int) (common.Hash, error) {
	if len(pairs) != len(timestamps) || len(pairs) != len(answers) {
		return common.Hash{}, errors.New("pairs, timestamps and answers must have equal length")
	}
	addr, err := s.CurrentContract(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	data, err := packCall(updateAnswersMethod, pairs, timestamps, answers)
	if err != nil {
		return common.Hash{}, err
	}
	return s.gw.Transact(ctx, new(big.Int), addr, data)
}

// acquire performs the atomic check-and-set: only a caller observing
// Unregistered may move the cell to InProgress and enter the workflow.
func (s *Service) acquire(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := s.repo.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to read deployment status: %w", err)
	}
	if status.State != domainContract.StateUnregistered {
		return domainContract.ErrAlreadyDeployed
	}
	if err := s.repo.SetStatus(ctx, domainContract.InProgress()); err != nil {
		return fmt.Errorf("failed to mark deployment in progress: %w", err)
	}
	return nil
}

func (s *Service) rollback(ctx context.Context) {
	if err := s.repo.SetStatus(context.WithoutCancel(ctx), domainContract.Unregistered()); err != nil {
		s.logger.Error().Err(err).Msg("deployment rollback write failed")
	}
}
