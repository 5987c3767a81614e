// Package account drives the identity registration workflow: four
// dependent remote calls guarded by a persisted status cell, with
// rollback to Unregistered on any failure.
package account

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/oracle-bridge/oracle-bridge/internal/application/gateway"
	domainAccount "github.com/oracle-bridge/oracle-bridge/internal/domain/account"
	"github.com/oracle-bridge/oracle-bridge/internal/domain/evm"
)

// Service is the identity registration state machine.
type Service struct {
	repo   domainAccount.Repository
	gw     gateway.Gateway
	logger zerolog.Logger

	// mu serializes the check-and-set on the status cell. It is held
	// only across the local read and write, never across a remote call.
	mu sync.Mutex
}

// NewService creates the registration state machine.
func NewService(repo domainAccount.Repository, gw gateway.Gateway, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		gw:     gw,
		logger: logger.With().Str("service", "account").Logger(),
	}
}

// Register runs the registration workflow for the sender of the
// caller-supplied signed transaction: checks the address is not already
// registered on the host, mints the registration stipend, registers the
// agent transaction and verifies the signing key. Any failing step
// rolls the status back to Unregistered so a later retry starts from
// scratch; only full success persists Registered(sender).
func (s *Service) Register(ctx context.Context, tx evm.Transaction, signingKey []byte) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	sender := tx.From

	// Scoped release: every exit path before completion restores the
	// initial state, so no partial failure can block a future retry.
	completed := false
	defer func() {
		if !completed {
			s.rollback(ctx)
		}
	}()

	registered, err := s.gw.IsAgentRegistered(ctx, sender)
	if err != nil {
		return fmt.Errorf("registration check failed: %w", err)
	}
	if registered {
		return fmt.Errorf("%s is already registered on the host", sender)
	}

	stipend := new(big.Int).SetUint64(evm.RegistrationStipend)
	if _, err := s.gw.MintTokens(ctx, sender, stipend); err != nil {
		return fmt.Errorf("registration stipend mint failed: %w", err)
	}

	if err := s.gw.RegisterAgent(ctx, tx); err != nil {
		return fmt.Errorf("agent registration failed: %w", err)
	}

	if err := s.gw.VerifyRegistration(ctx, signingKey); err != nil {
		return fmt.Errorf("registration verification failed: %w", err)
	}

	if err := s.repo.SetStatus(ctx, domainAccount.Registered(sender)); err != nil {
		return fmt.Errorf("failed to persist registered status: %w", err)
	}
	completed = true

	s.logger.Info().Str("address", sender.Hex()).Msg("bridge identity registered")
	return nil
}

// CurrentIdentity returns the registered identity address.
func (s *Service) CurrentIdentity(ctx context.Context) (common.Address, error) {
	status, err := s.repo.GetStatus(ctx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read account status: %w", err)
	}
	if status.State != domainAccount.StateRegistered {
		return common.Address{}, domainAccount.ErrNotRegistered
	}
	return status.Address, nil
}

// Reset unconditionally forces the status back to Unregistered. The
// request shell restricts it to the owning principal.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.SetStatus(ctx, domainAccount.Unregistered()); err != nil {
		return fmt.Errorf("failed to reset account status: %w", err)
	}
	s.logger.Warn().Msg("account registration status force-reset")
	return nil
}

// acquire performs the atomic check-and-set: only a caller observing
// Unregistered may move the cell to InProgress and enter the workflow.
func (s *Service) acquire(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := s.repo.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to read account status: %w", err)
	}
	if status.State != domainAccount.StateUnregistered {
		return domainAccount.ErrAlreadyRegistered
	}
	if err := s.repo.SetStatus(ctx, domainAccount.InProgress()); err != nil {
		return fmt.Errorf("failed to mark registration in progress: %w", err)
	}
	return nil
}

// rollback restores Unregistered after a failed workflow. It must
// succeed even when the caller's context is already cancelled.
func (s *Service) rollback(ctx context.Context) {
	if err := s.repo.SetStatus(context.WithoutCancel(ctx), domainAccount.Unregistered()); err != nil {
		s.logger.Error().Err(err).Msg("registration rollback write failed")
	}
}
