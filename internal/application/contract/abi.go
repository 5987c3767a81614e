package contract

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Fixed call signatures of the aggregator contract.
var (
	addPairMethod = abi.NewMethod("addPair", "addPair", abi.Function, "nonpayable", false, false, abi.Arguments{
		{Name: "pair", Type: mustType("string")},
		{Name: "decimal", Type: mustType("uint8")},
		{Name: "description", Type: mustType("string")},
		{Name: "version", Type: mustType("uint256")},
	}, nil)

	updateAnswersMethod = abi.NewMethod("updateAnswers", "updateAnswers", abi.Function, "nonpayable", false, false, abi.Arguments{
		{Name: "_pairs", Type: mustType("string[]")},
		{Name: "_timestamps", Type: mustType("uint256[]")},
		{Name: "_answers", Type: mustType("uint256[]")},
	}, nil)
)

func mustType(sig string) abi.Type {
	t, err := abi.NewType(sig, "", nil)
	if err != nil {
		panic(fmt.Sprintf("invalid abi type %q: %v", sig, err))
	}
	return t
}

// packCall encodes a contract function call: 4-byte selector followed
// by the ABI-encoded arguments.
func packCall(method abi.Method, args ...interface{}) ([]byte, error) {
	packed, err := method.Inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s call data: %w", method.Name, err)
	}
	return append(append([]byte{}, method.ID...), packed...), nil
}

// constructorPayload concatenates contract bytecode with the
// ABI-encoded constructor arguments.
func constructorPayload(code []byte, inputs abi.Arguments, args ...interface{}) ([]byte, error) {
	packed, err := inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor args: %w", err)
	}
	return append(append([]byte{}, code...), packed...), nil
}
