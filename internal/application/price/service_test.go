package price

import (
	"context"
	"errors"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oracle-bridge/oracle-bridge/internal/domain/pricepair"
	"github.com/oracle-bridge/oracle-bridge/internal/infrastructure/bolt"
)

type stubInvoker struct {
	pairs      []string
	timestamps []*big.Int
	answers    []*big.Int
	hash       common.Hash
	err        error
}

func (s *stubInvoker) UpdateAnswers(_ context.Context, pairs []string, timestamps, answers []*big.Int) (common.Hash, error) {
	s.pairs = pairs
	s.timestamps = timestamps
	s.answers = answers
	return s.hash, s.err
}

func newPriceService(t *testing.T, invoker Invoker, rules []pricepair.AlertRule) *Service {
	t.Helper()
	store, err := bolt.Open(filepath.Join(t.TempDir(), "bridge.db"), 100)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewService(store, invoker, rules, zerolog.Nop())
}

func TestService_PairLifecycle(t *testing.T) {
	svc := newPriceService(t, nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.AddPair(ctx, "ETH/USD"))
	require.ErrorIs(t, svc.AddPair(ctx, "ETH/USD"), pricepair.ErrPairExists)

	pairs, err := svc.Pairs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ETH/USD"}, pairs)

	_, err = svc.LatestPrice(ctx, "ETH/USD")
	require.ErrorIs(t, err, pricepair.ErrNoPrice)

	require.NoError(t, svc.RemovePair(ctx, "ETH/USD"))
	require.ErrorIs(t, svc.RemovePair(ctx, "ETH/USD"), pricepair.ErrPairNotFound)
}

func TestService_PushAnswers(t *testing.T) {
	t.Run("pushes the latest observation of every pair", func(t *testing.T) {
		invoker := &stubInvoker{hash: common.HexToHash("0xans")}
		svc := newPriceService(t, invoker, nil)
		ctx := context.Background()

		require.NoError(t, svc.AddPair(ctx, "BTC/USD"))
		require.NoError(t, svc.AddPair(ctx, "ETH/USD"))
		require.NoError(t, svc.appendObservation(ctx, "ETH/USD", pricepair.Observation{Timestamp: 100, Price: 250000000000}))
		require.NoError(t, svc.appendObservation(ctx, "ETH/USD", pricepair.Observation{Timestamp: 200, Price: 251000000000}))
		require.NoError(t, svc.appendObservation(ctx, "BTC/USD", pricepair.Observation{Timestamp: 200, Price: 4200000000000}))

		hash, err := svc.PushAnswers(ctx)
		require.NoError(t, err)
		assert.Equal(t, invoker.hash, hash)

		require.Equal(t, []string{"BTC/USD", "ETH/USD"}, invoker.pairs)
		assert.Equal(t, int64(4200000000000), invoker.answers[0].Int64())
		// Only the most recent ETH observation is pushed.
		assert.Equal(t, int64(251000000000), invoker.answers[1].Int64())
		assert.Equal(t, int64(200), invoker.timestamps[1].Int64())
	})

	t.Run("skips pairs without observations", func(t *testing.T) {
		invoker := &stubInvoker{}
		svc := newPriceService(t, invoker, nil)
		ctx := context.Background()

		require.NoError(t, svc.AddPair(ctx, "BTC/USD"))
		require.NoError(t, svc.AddPair(ctx, "ETH/USD"))
		require.NoError(t, svc.appendObservation(ctx, "ETH/USD", pricepair.Observation{Timestamp: 100, Price: 1}))

		_, err := svc.PushAnswers(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"ETH/USD"}, invoker.pairs)
	})

	t.Run("fails when nothing can be pushed", func(t *testing.T) {
		svc := newPriceService(t, &stubInvoker{}, nil)
		ctx := context.Background()
		require.NoError(t, svc.AddPair(ctx, "ETH/USD"))

		_, err := svc.PushAnswers(ctx)
		require.Error(t, err)
	})

	t.Run("surfaces submission failures", func(t *testing.T) {
		invoker := &stubInvoker{err: errors.New("host down")}
		svc := newPriceService(t, invoker, nil)
		ctx := context.Background()

		require.NoError(t, svc.AddPair(ctx, "ETH/USD"))
		require.NoError(t, svc.appendObservation(ctx, "ETH/USD", pricepair.Observation{Timestamp: 100, Price: 1}))

		_, err := svc.PushAnswers(ctx)
		require.ErrorIs(t, err, invoker.err)
	})
}

func TestService_AlertRules(t *testing.T) {
	t.Run("deviation rule fires on a large move", func(t *testing.T) {
		rules := []pricepair.AlertRule{
			{Name: "big-move", Expression: "deviation_pct > 10 || deviation_pct < -10"},
		}
		svc := newPriceService(t, nil, rules)
		ctx := context.Background()
		require.NoError(t, svc.AddPair(ctx, "ETH/USD"))

		require.NoError(t, svc.appendObservation(ctx, "ETH/USD", pricepair.Observation{Timestamp: 100, Price: 100000000000}))
		assert.Empty(t, svc.Alerts(), "first observation has no deviation")

		require.NoError(t, svc.appendObservation(ctx, "ETH/USD", pricepair.Observation{Timestamp: 200, Price: 120000000000}))

		alerts := svc.Alerts()
		require.Len(t, alerts, 1)
		assert.Equal(t, "big-move", alerts[0].Rule)
		assert.Equal(t, "ETH/USD", alerts[0].Pair)
		assert.Equal(t, uint64(120000000000), alerts[0].Price)
		assert.Equal(t, uint64(100000000000), alerts[0].PrevPrice)
		assert.InDelta(t, 20.0, alerts[0].DeviationPct, 0.001)
	})

	t.Run("small moves do not fire", func(t *testing.T) {
		rules := []pricepair.AlertRule{
			{Name: "big-move", Expression: "deviation_pct > 10"},
		}
		svc := newPriceService(t, nil, rules)
		ctx := context.Background()
		require.NoError(t, svc.AddPair(ctx, "ETH/USD"))

		require.NoError(t, svc.appendObservation(ctx, "ETH/USD", pricepair.Observation{Timestamp: 100, Price: 100000000000}))
		require.NoError(t, svc.appendObservation(ctx, "ETH/USD", pricepair.Observation{Timestamp: 200, Price: 101000000000}))

		assert.Empty(t, svc.Alerts())
	})

	t.Run("price threshold rule", func(t *testing.T) {
		rules := []pricepair.AlertRule{
			{Name: "eth-above-2k", Expression: "pair == 'ETH/USD' && price > 2000"},
		}
		svc := newPriceService(t, nil, rules)
		ctx := context.Background()
		require.NoError(t, svc.AddPair(ctx, "ETH/USD"))
		require.NoError(t, svc.AddPair(ctx, "BTC/USD"))

		require.NoError(t, svc.appendObservation(ctx, "BTC/USD", pricepair.Observation{Timestamp: 100, Price: 4200000000000}))
		assert.Empty(t, svc.Alerts(), "rule is scoped to ETH/USD")

		require.NoError(t, svc.appendObservation(ctx, "ETH/USD", pricepair.Observation{Timestamp: 100, Price: 250000000000}))
		require.Len(t, svc.Alerts(), 1)
	})

	t.Run("broken rules never block ingestion", func(t *testing.T) {
		rules := []pricepair.AlertRule{
			{Name: "malformed", Expression: "price >>> oops"},
			{Name: "not-boolean", Expression: "price + 1"},
		}
		svc := newPriceService(t, nil, rules)
		ctx := context.Background()
		require.NoError(t, svc.AddPair(ctx, "ETH/USD"))

		require.NoError(t, svc.appendObservation(ctx, "ETH/USD", pricepair.Observation{Timestamp: 100, Price: 1}))
		assert.Empty(t, svc.Alerts())

		obs, err := svc.LatestPrice(ctx, "ETH/USD")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), obs.Price)
	})
}
