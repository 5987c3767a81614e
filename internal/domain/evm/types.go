package evm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	// RegistrationStipend is the amount of native tokens minted to a
	// bridge identity as part of registration.
	RegistrationStipend uint64 = 100_000

	// DefaultGasLimit is stamped into every outgoing transaction.
	DefaultGasLimit uint64 = 30_000_000
)

// TransactionParams carries the sender-side parameters stamped into an
// outgoing transaction before submission.
type TransactionParams struct {
	From     common.Address `json:"from"`
	Value    *hexutil.Big   `json:"value"`
	GasLimit hexutil.Uint64 `json:"gasLimit"`
	GasPrice *hexutil.Big   `json:"gasPrice,omitempty"`
	Nonce    *hexutil.Big   `json:"nonce"`
}

// Transaction is a signed transaction in the host's wire format. The
// registration workflow submits one supplied by the caller.
type Transaction struct {
	Hash     common.Hash     `json:"hash"`
	From     common.Address  `json:"from"`
	To       *common.Address `json:"to,omitempty"`
	Nonce    *hexutil.Big    `json:"nonce"`
	Value    *hexutil.Big    `json:"value"`
	Gas      *hexutil.Big    `json:"gas"`
	GasPrice *hexutil.Big    `json:"gasPrice,omitempty"`
	Input    hexutil.Bytes   `json:"input"`
	V        *hexutil.Big    `json:"v"`
	R        *hexutil.Big    `json:"r"`
	S        *hexutil.Big    `json:"s"`
}

// TransactionReceipt is the host's record of a mined transaction.
type TransactionReceipt struct {
	TransactionHash common.Hash     `json:"transactionHash"`
	BlockNumber     *hexutil.Big    `json:"blockNumber,omitempty"`
	Status          *hexutil.Uint64 `json:"status,omitempty"`
	GasUsed         *hexutil.Big    `json:"gasUsed,omitempty"`
	ContractAddress *common.Address `json:"contractAddress,omitempty"`
}

// Succeeded reports whether the receipt carries an explicit success status.
func (r *TransactionReceipt) Succeeded() bool {
	return r != nil && r.Status != nil && uint64(*r.Status) == 1
}

// BasicAccount is the host's balance/nonce view of an address.
type BasicAccount struct {
	Balance *hexutil.Big `json:"balance"`
	Nonce   *hexutil.Big `json:"nonce"`
}

// BigValue converts a plain integer into the wire representation,
// treating nil as zero.
func BigValue(v *big.Int) *hexutil.Big {
	if v == nil {
		v = new(big.Int)
	}
	return (*hexutil.Big)(new(big.Int).Set(v))
}
