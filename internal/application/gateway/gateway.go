// Package gateway wraps every outbound call to the remote host: it
// stamps coordinator nonces into outgoing transactions and feeds
// invalid-nonce feedback back into the coordinator before surfacing the
// error.
package gateway

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog"

	"github.com/oracle-bridge/oracle-bridge/internal/application/nonce"
	"github.com/oracle-bridge/oracle-bridge/internal/domain/account"
	"github.com/oracle-bridge/oracle-bridge/internal/domain/evm"
)

// Gateway is the typed call surface the state machines use to reach the
// remote host.
type Gateway interface {
	Transact(ctx context.Context, value *big.Int, to common.Address, data []byte) (common.Hash, error)
	CreateContract(ctx context.Context, value *big.Int, code []byte) (common.Hash, error)
	GetBalance(ctx context.Context, address common.Address) (*big.Int, error)
	GetTransactionByHash(ctx context.Context, hash common.Hash) (*evm.Transaction, error)
	GetTransactionReceipt(ctx context.Context, hash common.Hash) (*evm.TransactionReceipt, error)
	MintTokens(ctx context.Context, to common.Address, amount *big.Int) (*big.Int, error)
	RegisterAgent(ctx context.Context, tx evm.Transaction) error
	VerifyRegistration(ctx context.Context, signingKey []byte) error
	IsAgentRegistered(ctx context.Context, address common.Address) (bool, error)
}

// Service implements Gateway over an evm.Host.
type Service struct {
	host     evm.Host
	nonces   *nonce.Coordinator
	accounts account.Repository
	logger   zerolog.Logger
}

// NewService creates a gateway. The account repository supplies the
// sender address for transaction submissions.
func NewService(host evm.Host, nonces *nonce.Coordinator, accounts account.Repository, logger zerolog.Logger) *Service {
	return &Service{
		host:     host,
		nonces:   nonces,
		accounts: accounts,
		logger:   logger.With().Str("service", "gateway").Logger(),
	}
}

// txParams builds the outgoing transaction parameters, consuming one
// coordinator nonce. This happens in the same synchronous turn as the
// caller's status check, before any remote call is made.
func (s *Service) txParams(ctx context.Context, value *big.Int) (evm.TransactionParams, error) {
	status, err := s.accounts.GetStatus(ctx)
	if err != nil {
		return evm.TransactionParams{}, fmt.Errorf("failed to read account status: %w", err)
	}
	if status.State != account.StateRegistered {
		return evm.TransactionParams{}, account.ErrNotRegistered
	}
	n, err := s.nonces.NextNonce(ctx)
	if err != nil {
		return evm.TransactionParams{}, err
	}
	return evm.TransactionParams{
		From:     status.Address,
		Value:    evm.BigValue(value),
		GasLimit: hexutil.Uint64(evm.DefaultGasLimit),
		Nonce:    (*hexutil.Big)(n),
	}, nil
}

// Transact submits a value transfer or contract call.
func (s *Service) Transact(ctx context.Context, value *big.Int, to common.Address, data []byte) (common.Hash, error) {
	params, err := s.txParams(ctx, value)
	if err != nil {
		return common.Hash{}, err
	}
	hash, err := s.host.CallMessage(ctx, params, to, data)
	return hash, s.observe(ctx, err)
}

// CreateContract submits a contract-creation transaction.
func (s *Service) CreateContract(ctx context.Context, value *big.Int, code []byte) (common.Hash, error) {
	params, err := s.txParams(ctx, value)
	if err != nil {
		return common.Hash{}, err
	}
	hash, err := s.host.CreateContract(ctx, params, code)
	return hash, s.observe(ctx, err)
}

// GetBalance returns the host balance of an address.
func (s *Service) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	acc, err := s.host.AccountBasic(ctx, address)
	if err != nil {
		return nil, err
	}
	return (*big.Int)(acc.Balance), nil
}

// GetTransactionByHash looks up a submitted transaction.
func (s *Service) GetTransactionByHash(ctx context.Context, hash common.Hash) (*evm.Transaction, error) {
	return s.host.TransactionByHash(ctx, hash)
}

// GetTransactionReceipt looks up a mined transaction's receipt.
func (s *Service) GetTransactionReceipt(ctx context.Context, hash common.Hash) (*evm.TransactionReceipt, error) {
	return s.host.TransactionReceipt(ctx, hash)
}

// MintTokens credits an address with native tokens.
func (s *Service) MintTokens(ctx context.Context, to common.Address, amount *big.Int) (*big.Int, error) {
	balance, err := s.host.MintNativeTokens(ctx, to, amount)
	if err != nil {
		return nil, s.observe(ctx, err)
	}
	return balance, nil
}

// RegisterAgent registers the bridge identity with the host.
func (s *Service) RegisterAgent(ctx context.Context, tx evm.Transaction) error {
	return s.observe(ctx, s.host.RegisterAgent(ctx, tx))
}

// VerifyRegistration completes registration with the signing key.
func (s *Service) VerifyRegistration(ctx context.Context, signingKey []byte) error {
	return s.observe(ctx, s.host.VerifyRegistration(ctx, signingKey))
}

// IsAgentRegistered reports whether an address is a registered agent.
func (s *Service) IsAgentRegistered(ctx context.Context, address common.Address) (bool, error) {
	return s.host.IsAgentRegistered(ctx, address)
}

// observe intercepts invalid-nonce rejections to reconcile the counter
// with the host's expectation, then surfaces the original error. All
// other errors pass through untouched.
func (s *Service) observe(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if hostErr, ok := evm.AsHostError(err); ok && hostErr.Kind == evm.KindInvalidNonce && hostErr.ExpectedNonce != nil {
		if recErr := s.nonces.Reconcile(ctx, hostErr.ExpectedNonce); recErr != nil {
			s.logger.Error().Err(recErr).Msg("nonce reconcile failed")
		}
	}
	return err
}
