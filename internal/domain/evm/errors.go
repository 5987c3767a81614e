package evm

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrorKind classifies an application-level failure reported by the host.
type ErrorKind string

const (
	KindInvalidNonce      ErrorKind = "INVALID_NONCE"
	KindInsufficientFunds ErrorKind = "INSUFFICIENT_FUNDS"
	KindGeneric           ErrorKind = "GENERIC"
)

// HostError is an application-level error returned by the remote host:
// the call itself completed, but the host rejected it. An invalid-nonce
// rejection carries the nonce the host expected.
type HostError struct {
	Kind          ErrorKind
	Message       string
	ExpectedNonce *big.Int
}

func (e *HostError) Error() string {
	if e.Kind == KindInvalidNonce && e.ExpectedNonce != nil {
		return fmt.Sprintf("host rejected transaction: %s (expected nonce %s)", e.Message, e.ExpectedNonce)
	}
	return fmt.Sprintf("host rejected transaction: %s", e.Message)
}

// AsHostError unwraps err into a HostError if one is in the chain.
func AsHostError(err error) (*HostError, bool) {
	var he *HostError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
