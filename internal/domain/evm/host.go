package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Host is the transport-level interface to the remote EVM-compatible
// execution environment. Implementations return a *HostError when the
// host executed the call but rejected it, and any other error when the
// call itself could not complete.
type Host interface {
	// CallMessage submits a value-transfer or contract-call transaction.
	CallMessage(ctx context.Context, params TransactionParams, to common.Address, data []byte) (common.Hash, error)

	// CreateContract submits a contract-creation transaction.
	CreateContract(ctx context.Context, params TransactionParams, code []byte) (common.Hash, error)

	// AccountBasic returns the host's balance/nonce view of an address.
	AccountBasic(ctx context.Context, address common.Address) (BasicAccount, error)

	// TransactionByHash looks up a submitted transaction; nil when unknown.
	TransactionByHash(ctx context.Context, hash common.Hash) (*Transaction, error)

	// TransactionReceipt looks up a mined transaction's receipt; nil
	// while the transaction is unknown or still pending.
	TransactionReceipt(ctx context.Context, hash common.Hash) (*TransactionReceipt, error)

	// MintNativeTokens credits an address with native tokens and
	// returns the resulting balance.
	MintNativeTokens(ctx context.Context, to common.Address, amount *big.Int) (*big.Int, error)

	// RegisterAgent registers the bridge identity with the host using a
	// caller-supplied signed transaction.
	RegisterAgent(ctx context.Context, tx Transaction) error

	// VerifyRegistration completes registration by proving possession
	// of the signing key.
	VerifyRegistration(ctx context.Context, signingKey []byte) error

	// IsAgentRegistered reports whether an address is already
	// registered as a bridge agent.
	IsAgentRegistered(ctx context.Context, address common.Address) (bool, error)
}
