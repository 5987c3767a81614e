package bolt

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oracle-bridge/oracle-bridge/internal/domain/account"
	"github.com/oracle-bridge/oracle-bridge/internal/domain/contract"
	"github.com/oracle-bridge/oracle-bridge/internal/domain/pricepair"
)

func openStore(t *testing.T, path string, maxHistory int) *Store {
	t.Helper()
	store, err := Open(path, maxHistory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_CellsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.db")
	ctx := context.Background()
	addr := common.HexToAddress("0x1111111111111111111111111111111111111111")
	pending := common.HexToHash("0xdeadbeef")

	store, err := Open(path, 100)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, big.NewInt(42)))
	require.NoError(t, store.SetStatus(ctx, account.Registered(addr)))
	require.NoError(t, store.SetContractStatus(ctx, contract.InProgress()))
	require.NoError(t, store.SetPendingTx(ctx, pending))
	require.NoError(t, store.Close())

	store = openStore(t, path, 100)

	n, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n.Int64())

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, account.StateRegistered, status.State)
	assert.Equal(t, addr, status.Address)

	cstatus, err := store.GetContractStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, contract.StateInProgress, cstatus.State)

	tx, err := store.GetPendingTx(ctx)
	require.NoError(t, err)
	assert.Equal(t, pending, tx)
}

func TestStore_MissingCellsReadAsDefaults(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "bridge.db"), 100)
	ctx := context.Background()

	n, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, n)

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, account.StateUnregistered, status.State)

	cstatus, err := store.GetContractStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, contract.StateUnregistered, cstatus.State)

	tx, err := store.GetPendingTx(ctx)
	require.NoError(t, err)
	assert.Equal(t, common.Hash{}, tx)
}

func TestStore_ContractCellsAdapter(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "bridge.db"), 100)
	ctx := context.Background()
	cells := store.ContractCells()
	addr := common.HexToAddress("0x2222222222222222222222222222222222222222")

	require.NoError(t, cells.SetStatus(ctx, contract.Registered(addr)))

	status, err := cells.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, contract.StateRegistered, status.State)
	assert.Equal(t, addr, status.Address)

	// The adapter writes the contract cell, not the account cell.
	astatus, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, account.StateUnregistered, astatus.State)
}

func TestStore_PriceHistory(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "bridge.db"), 5)
	ctx := context.Background()
	require.NoError(t, store.AddPair(ctx, "ETH/USD"))

	for i := uint64(1); i <= 8; i++ {
		require.NoError(t, store.AppendPrice(ctx, "ETH/USD", pricepair.Observation{
			Timestamp: i, Price: i * 100,
		}))
	}

	// Oldest observations are evicted past the cap.
	prices, err := store.Prices(ctx, "ETH/USD", 100)
	require.NoError(t, err)
	require.Len(t, prices, 5)
	assert.Equal(t, uint64(4), prices[0].Timestamp)
	assert.Equal(t, uint64(8), prices[len(prices)-1].Timestamp)

	// Prices limits from the recent end, oldest first.
	prices, err = store.Prices(ctx, "ETH/USD", 2)
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, uint64(7), prices[0].Timestamp)
	assert.Equal(t, uint64(8), prices[1].Timestamp)

	latest, err := store.LatestPrice(ctx, "ETH/USD")
	require.NoError(t, err)
	assert.Equal(t, uint64(800), latest.Price)
}

func TestStore_PriceHistoryErrors(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "bridge.db"), 5)
	ctx := context.Background()

	err := store.AppendPrice(ctx, "ETH/USD", pricepair.Observation{Timestamp: 1, Price: 1})
	require.ErrorIs(t, err, pricepair.ErrPairNotFound)

	_, err = store.LatestPrice(ctx, "ETH/USD")
	require.ErrorIs(t, err, pricepair.ErrPairNotFound)

	require.NoError(t, store.AddPair(ctx, "ETH/USD"))
	_, err = store.LatestPrice(ctx, "ETH/USD")
	require.ErrorIs(t, err, pricepair.ErrNoPrice)
}

func TestStore_DeletePairDiscardsHistory(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "bridge.db"), 5)
	ctx := context.Background()

	require.NoError(t, store.AddPair(ctx, "ETH/USD"))
	require.NoError(t, store.AppendPrice(ctx, "ETH/USD", pricepair.Observation{Timestamp: 1, Price: 1}))
	require.NoError(t, store.DeletePair(ctx, "ETH/USD"))

	exists, err := store.Exists(ctx, "ETH/USD")
	require.NoError(t, err)
	assert.False(t, exists)

	// Re-adding starts with a fresh history.
	require.NoError(t, store.AddPair(ctx, "ETH/USD"))
	_, err = store.LatestPrice(ctx, "ETH/USD")
	require.ErrorIs(t, err, pricepair.ErrNoPrice)
}

func TestStore_ListPairs(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "bridge.db"), 5)
	ctx := context.Background()

	require.NoError(t, store.AddPair(ctx, "ETH/USD"))
	require.NoError(t, store.AddPair(ctx, "BTC/USD"))
	require.ErrorIs(t, store.AddPair(ctx, "BTC/USD"), pricepair.ErrPairExists)

	pairs, err := store.ListPairs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC/USD", "ETH/USD"}, pairs)
}
