// Package evmrpc implements the evm.Host interface over the remote
// host's JSON-RPC endpoint.
package evmrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"

	"github.com/oracle-bridge/oracle-bridge/internal/domain/evm"
)

// Client talks to the remote host over JSON-RPC. Bridge-specific
// methods live under the ebridge namespace; transaction lookups use the
// standard eth namespace.
type Client struct {
	rpc    *rpc.Client
	logger zerolog.Logger
}

// Dial connects to the host RPC endpoint.
func Dial(ctx context.Context, url string, logger zerolog.Logger) (*Client, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial host rpc: %w", err)
	}
	return &Client{
		rpc:    c,
		logger: logger.With().Str("component", "evmrpc").Logger(),
	}, nil
}

// Close closes the underlying RPC connection.
func (c *Client) Close() {
	c.rpc.Close()
}

// CallMessage submits a value-transfer or contract-call transaction.
func (c *Client) CallMessage(ctx context.Context, params evm.TransactionParams, to common.Address, data []byte) (common.Hash, error) {
	var hash common.Hash
	err := c.call(ctx, &hash, "ebridge_callMessage", params, to, hexutil.Bytes(data))
	return hash, err
}

// CreateContract submits a contract-creation transaction.
func (c *Client) CreateContract(ctx context.Context, params evm.TransactionParams, code []byte) (common.Hash, error) {
	var hash common.Hash
	err := c.call(ctx, &hash, "ebridge_createContract", params, hexutil.Bytes(code))
	return hash, err
}

// AccountBasic returns the host's balance/nonce view of an address.
func (c *Client) AccountBasic(ctx context.Context, address common.Address) (evm.BasicAccount, error) {
	var acc evm.BasicAccount
	err := c.call(ctx, &acc, "ebridge_accountBasic", address)
	return acc, err
}

// TransactionByHash looks up a submitted transaction; nil when unknown.
func (c *Client) TransactionByHash(ctx context.Context, hash common.Hash) (*evm.Transaction, error) {
	var tx *evm.Transaction
	err := c.call(ctx, &tx, "eth_getTransactionByHash", hash)
	return tx, err
}

// TransactionReceipt looks up a mined transaction's receipt; nil while
// the transaction is unknown or still pending.
func (c *Client) TransactionReceipt(ctx context.Context, hash common.Hash) (*evm.TransactionReceipt, error) {
	var receipt *evm.TransactionReceipt
	err := c.call(ctx, &receipt, "eth_getTransactionReceipt", hash)
	return receipt, err
}

// MintNativeTokens credits an address with native tokens.
func (c *Client) MintNativeTokens(ctx context.Context, to common.Address, amount *big.Int) (*big.Int, error) {
	var balance hexutil.Big
	err := c.call(ctx, &balance, "ebridge_mintNativeTokens", to, (*hexutil.Big)(amount))
	if err != nil {
		return nil, err
	}
	return (*big.Int)(&balance), nil
}

// RegisterAgent registers the bridge identity with the host.
func (c *Client) RegisterAgent(ctx context.Context, tx evm.Transaction) error {
	return c.call(ctx, nil, "ebridge_registerAgent", tx)
}

// VerifyRegistration completes registration with the signing key.
func (c *Client) VerifyRegistration(ctx context.Context, signingKey []byte) error {
	return c.call(ctx, nil, "ebridge_verifyRegistration", hexutil.Bytes(signingKey))
}

// IsAgentRegistered reports whether an address is a registered agent.
func (c *Client) IsAgentRegistered(ctx context.Context, address common.Address) (bool, error) {
	var registered bool
	err := c.call(ctx, &registered, "ebridge_isAgentRegistered", address)
	return registered, err
}

func (c *Client) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	err := c.rpc.CallContext(ctx, result, method, args...)
	if err == nil {
		return nil
	}
	if hostErr := translateError(err); hostErr != nil {
		c.logger.Debug().Str("method", method).Str("kind", string(hostErr.Kind)).Msg("host rejected call")
		return hostErr
	}
	return fmt.Errorf("host call %s failed: %w", method, err)
}

// errorPayload is the structured data the host attaches to application
// level rejections.
type errorPayload struct {
	Kind          string       `json:"kind"`
	Message       string       `json:"message"`
	ExpectedNonce *hexutil.Big `json:"expectedNonce,omitempty"`
}

// translateError maps a JSON-RPC error carrying structured data into an
// evm.HostError; any other error is treated as a transport failure.
func translateError(err error) *evm.HostError {
	var de rpc.DataError
	if !errors.As(err, &de) {
		return nil
	}
	data := de.ErrorData()
	if data == nil {
		return &evm.HostError{Kind: evm.KindGeneric, Message: err.Error()}
	}
	raw, marshalErr := json.Marshal(data)
	if marshalErr != nil {
		return &evm.HostError{Kind: evm.KindGeneric, Message: err.Error()}
	}
	var payload errorPayload
	if json.Unmarshal(raw, &payload) != nil || payload.Kind == "" {
		return &evm.HostError{Kind: evm.KindGeneric, Message: err.Error()}
	}
	hostErr := &evm.HostError{Message: payload.Message}
	switch payload.Kind {
	case "invalid_nonce":
		hostErr.Kind = evm.KindInvalidNonce
		if payload.ExpectedNonce != nil {
			hostErr.ExpectedNonce = (*big.Int)(payload.ExpectedNonce)
		}
	case "insufficient_funds":
		hostErr.Kind = evm.KindInsufficientFunds
	default:
		hostErr.Kind = evm.KindGeneric
	}
	if hostErr.Message == "" {
		hostErr.Message = err.Error()
	}
	return hostErr
}
