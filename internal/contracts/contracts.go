// Package contracts exposes the build-time embedded smart contract
// bytecode artifacts. The hex files are produced by the external
// contract compilation step and treated as opaque blobs here.
package contracts

import (
	"embed"
	"encoding/hex"
	"fmt"
	"strings"
)

//go:embed artifacts/*.hex
var artifacts embed.FS

// AggregatorSingle returns the AggregatorSingle contract bytecode.
func AggregatorSingle() ([]byte, error) {
	return load("artifacts/aggregator_single.hex")
}

// AggregatorProxy returns the AggregatorProxy contract bytecode.
func AggregatorProxy() ([]byte, error) {
	return load("artifacts/aggregator_proxy.hex")
}

func load(name string) ([]byte, error) {
	raw, err := artifacts.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("missing contract artifact %s: %w", name, err)
	}
	code, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("corrupt contract artifact %s: %w", name, err)
	}
	return code, nil
}
