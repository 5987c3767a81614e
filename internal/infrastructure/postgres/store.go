// Package postgres provides a Postgres-backed implementation of the
// bridge's persisted cells and price history.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oracle-bridge/oracle-bridge/internal/domain/account"
	"github.com/oracle-bridge/oracle-bridge/internal/domain/contract"
)

const (
	cellNonce          = "nonce"
	cellAccountStatus  = "account_status"
	cellContractStatus = "contract_status"
	cellPendingTx      = "pending_tx"
)

const (
	tagUnregistered byte = 0
	tagInProgress   byte = 1
	tagRegistered   byte = 2
)

// Store implements the nonce, account, contract and pricepair
// repository interfaces on a pgx pool.
type Store struct {
	pool       *pgxpool.Pool
	maxHistory int
}

// NewStore creates a Store. maxHistory bounds each pair's observation
// history.
func NewStore(pool *pgxpool.Pool, maxHistory int) *Store {
	return &Store{pool: pool, maxHistory: maxHistory}
}

func (s *Store) getCell(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM bridge_cells WHERE key=$1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return value, err
}

func (s *Store) putCell(ctx context.Context, key string, value []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO bridge_cells (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	return err
}

// Get returns the persisted nonce counter, or nil when never written.
func (s *Store) Get(ctx context.Context) (*big.Int, error) {
	raw, err := s.getCell(ctx, cellNonce)
	if err != nil || raw == nil {
		return nil, err
	}
	return new(big.Int).SetBytes(raw), nil
}

// Set overwrites the persisted nonce counter.
func (s *Store) Set(ctx context.Context, value *big.Int) error {
	return s.putCell(ctx, cellNonce, value.Bytes())
}

// GetStatus returns the registration status cell.
func (s *Store) GetStatus(ctx context.Context) (account.Status, error) {
	raw, err := s.getCell(ctx, cellAccountStatus)
	if err != nil {
		return account.Status{}, err
	}
	tag, addr, err := decodeStatus(raw)
	if err != nil {
		return account.Status{}, err
	}
	switch tag {
	case tagInProgress:
		return account.InProgress(), nil
	case tagRegistered:
		return account.Registered(addr), nil
	default:
		return account.Unregistered(), nil
	}
}

// SetStatus overwrites the registration status cell.
func (s *Store) SetStatus(ctx context.Context, status account.Status) error {
	return s.putCell(ctx, cellAccountStatus, encodeStatus(string(status.State), status.Address))
}

// GetContractStatus returns the deployment status cell.
func (s *Store) GetContractStatus(ctx context.Context) (contract.Status, error) {
	raw, err := s.getCell(ctx, cellContractStatus)
	if err != nil {
		return contract.Status{}, err
	}
	tag, addr, err := decodeStatus(raw)
	if err != nil {
		return contract.Status{}, err
	}
	switch tag {
	case tagInProgress:
		return contract.InProgress(), nil
	case tagRegistered:
		return contract.Registered(addr), nil
	default:
		return contract.Unregistered(), nil
	}
}

// SetContractStatus overwrites the deployment status cell.
func (s *Store) SetContractStatus(ctx context.Context, status contract.Status) error {
	return s.putCell(ctx, cellContractStatus, encodeStatus(string(status.State), status.Address))
}

// GetPendingTx returns the pending deployment transaction hash; the
// zero hash when nothing is pending.
func (s *Store) GetPendingTx(ctx context.Context) (common.Hash, error) {
	raw, err := s.getCell(ctx, cellPendingTx)
	if err != nil {
		return common.Hash{}, err
	}
	if len(raw) != common.HashLength {
		return common.Hash{}, nil
	}
	return common.BytesToHash(raw), nil
}

// SetPendingTx overwrites the pending deployment transaction hash.
func (s *Store) SetPendingTx(ctx context.Context, hash common.Hash) error {
	return s.putCell(ctx, cellPendingTx, hash.Bytes())
}

// ContractCells exposes the deployment status and pending-tx cells
// under the contract repository's method names.
func (s *Store) ContractCells() *ContractStore {
	return &ContractStore{store: s}
}

// ContractStore adapts Store to the contract repository interface.
type ContractStore struct {
	store *Store
}

func (c *ContractStore) GetStatus(ctx context.Context) (contract.Status, error) {
	return c.store.GetContractStatus(ctx)
}

func (c *ContractStore) SetStatus(ctx context.Context, status contract.Status) error {
	return c.store.SetContractStatus(ctx, status)
}

func (c *ContractStore) GetPendingTx(ctx context.Context) (common.Hash, error) {
	return c.store.GetPendingTx(ctx)
}

func (c *ContractStore) SetPendingTx(ctx context.Context, hash common.Hash) error {
	return c.store.SetPendingTx(ctx, hash)
}

func encodeStatus(state string, addr common.Address) []byte {
	buf := make([]byte, 1+common.AddressLength)
	switch state {
	case "IN_PROGRESS":
		buf[0] = tagInProgress
	case "REGISTERED":
		buf[0] = tagRegistered
		copy(buf[1:], addr.Bytes())
	default:
		buf[0] = tagUnregistered
	}
	return buf
}

func decodeStatus(raw []byte) (byte, common.Address, error) {
	if raw == nil {
		return tagUnregistered, common.Address{}, nil
	}
	if len(raw) != 1+common.AddressLength {
		return 0, common.Address{}, fmt.Errorf("corrupt status cell: %d bytes", len(raw))
	}
	return raw[0], common.BytesToAddress(raw[1:]), nil
}
