// Package bolt provides a file-backed implementation of the bridge's
// persisted cells and price history on top of bbolt.
package bolt

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	bbolt "go.etcd.io/bbolt"

	"github.com/oracle-bridge/oracle-bridge/internal/domain/account"
	"github.com/oracle-bridge/oracle-bridge/internal/domain/contract"
)

var (
	bucketCells  = []byte("cells")
	bucketPairs  = []byte("pairs")
	bucketPrices = []byte("prices")

	keyNonce          = []byte("nonce")
	keyAccountStatus  = []byte("account_status")
	keyContractStatus = []byte("contract_status")
	keyPendingTx      = []byte("pending_tx")
)

const (
	tagUnregistered byte = 0
	tagInProgress   byte = 1
	tagRegistered   byte = 2
)

// Store is a bbolt-backed store for the four bridge cells and the
// per-pair observation histories. It implements the nonce, account,
// contract and pricepair repository interfaces.
type Store struct {
	db         *bbolt.DB
	maxHistory int
}

// Open opens (creating if needed) the store at path. maxHistory bounds
// each pair's observation history.
func Open(path string, maxHistory int) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt store: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketCells, bucketPairs, bucketPrices} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize bolt store: %w", err)
	}
	return &Store{db: db, maxHistory: maxHistory}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the persisted nonce counter, or nil when never written.
func (s *Store) Get(_ context.Context) (*big.Int, error) {
	var value *big.Int
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketCells).Get(keyNonce)
		if raw != nil {
			value = new(big.Int).SetBytes(raw)
		}
		return nil
	})
	return value, err
}

// Set overwrites the persisted nonce counter.
func (s *Store) Set(_ context.Context, value *big.Int) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCells).Put(keyNonce, value.Bytes())
	})
}

// GetStatus returns the registration status cell.
func (s *Store) GetStatus(_ context.Context) (account.Status, error) {
	status := account.Unregistered()
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketCells).Get(keyAccountStatus)
		tag, addr, err := decodeStatus(raw)
		if err != nil {
			return err
		}
		switch tag {
		case tagInProgress:
			status = account.InProgress()
		case tagRegistered:
			status = account.Registered(addr)
		}
		return nil
	})
	return status, err
}

// SetStatus overwrites the registration status cell.
func (s *Store) SetStatus(_ context.Context, status account.Status) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCells).Put(keyAccountStatus, encodeStatus(string(status.State), status.Address))
	})
}

// GetContractStatus returns the deployment status cell.
func (s *Store) GetContractStatus(_ context.Context) (contract.Status, error) {
	status := contract.Unregistered()
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketCells).Get(keyContractStatus)
		tag, addr, err := decodeStatus(raw)
		if err != nil {
			return err
		}
		switch tag {
		case tagInProgress:
			status = contract.InProgress()
		case tagRegistered:
			status = contract.Registered(addr)
		}
		return nil
	})
	return status, err
}

// SetContractStatus overwrites the deployment status cell.
func (s *Store) SetContractStatus(_ context.Context, status contract.Status) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCells).Put(keyContractStatus, encodeStatus(string(status.State), status.Address))
	})
}

// GetPendingTx returns the pending deployment transaction hash; the
// zero hash when nothing is pending.
func (s *Store) GetPendingTx(_ context.Context) (common.Hash, error) {
	var hash common.Hash
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketCells).Get(keyPendingTx)
		if len(raw) == common.HashLength {
			hash = common.BytesToHash(raw)
		}
		return nil
	})
	return hash, err
}

// SetPendingTx overwrites the pending deployment transaction hash.
func (s *Store) SetPendingTx(_ context.Context, hash common.Hash) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCells).Put(keyPendingTx, hash.Bytes())
	})
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

// Statuses are stored as one tag byte followed by a 20-byte address;
// the address bytes are meaningful only for the registered tag.
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

func u64be(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}
