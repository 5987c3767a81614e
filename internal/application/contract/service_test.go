package contract

import (
	"context"
	"errors"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	gatewayMocks "github.com/oracle-bridge/oracle-bridge/internal/application/gateway/mocks"
	domainContract "github.com/oracle-bridge/oracle-bridge/internal/domain/contract"
	"github.com/oracle-bridge/oracle-bridge/internal/domain/evm"
	"github.com/oracle-bridge/oracle-bridge/internal/infrastructure/bolt"
)

var (
	deployTx   = common.HexToHash("0xdeadbeef")
	aggregator = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func newService(t *testing.T, gw *gatewayMocks.MockGateway) (*Service, *bolt.ContractStore) {
	t.Helper()
	store, err := bolt.Open(filepath.Join(t.TempDir(), "bridge.db"), 100)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	cells := store.ContractCells()
	return NewService(cells, gw, zerolog.Nop()), cells
}

func successReceipt() *evm.TransactionReceipt {
	status := hexutil.Uint64(1)
	addr := aggregator
	return &evm.TransactionReceipt{
		TransactionHash: deployTx,
		Status:          &status,
		ContractAddress: &addr,
	}
}

func failedReceipt() *evm.TransactionReceipt {
	status := hexutil.Uint64(0)
	return &evm.TransactionReceipt{TransactionHash: deployTx, Status: &status}
}

func TestService_Deploy(t *testing.T) {
	t.Run("submits creation and persists pending tx", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gw := gatewayMocks.NewMockGateway(ctrl)
		svc, cells := newService(t, gw)
		ctx := context.Background()

		gw.EXPECT().CreateContract(gomock.Any(), gomock.Any(), gomock.Any()).Return(deployTx, nil)

		hash, err := svc.Deploy(ctx)
		require.NoError(t, err)
		assert.Equal(t, deployTx, hash)

		pending, err := cells.GetPendingTx(ctx)
		require.NoError(t, err)
		assert.Equal(t, deployTx, pending)

		status, err := cells.GetStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, domainContract.StateInProgress, status.State)
	})

	t.Run("rejects re-entry while a deployment is running", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gw := gatewayMocks.NewMockGateway(ctrl)
		svc, cells := newService(t, gw)
		ctx := context.Background()

		require.NoError(t, cells.SetStatus(ctx, domainContract.InProgress()))
		_, err := svc.Deploy(ctx)
		require.ErrorIs(t, err, domainContract.ErrAlreadyDeployed)

		require.NoError(t, cells.SetStatus(ctx, domainContract.Registered(aggregator)))
		_, err = svc.Deploy(ctx)
		require.ErrorIs(t, err, domainContract.ErrAlreadyDeployed)
	})

	t.Run("submission failure rolls back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gw := gatewayMocks.NewMockGateway(ctrl)
		svc, cells := newService(t, gw)
		ctx := context.Background()

		gw.EXPECT().
			CreateContract(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(common.Hash{}, errors.New("host down"))

		_, err := svc.Deploy(ctx)
		require.Error(t, err)

		status, err := cells.GetStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, domainContract.StateUnregistered, status.State)

		pending, err := cells.GetPendingTx(ctx)
		require.NoError(t, err)
		assert.Equal(t, common.Hash{}, pending)
	})
}

func TestService_Confirm(t *testing.T) {
	t.Run("nothing pending fails without a remote call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gw := gatewayMocks.NewMockGateway(ctrl)
		svc, _ := newService(t, gw)

		_, err := svc.Confirm(context.Background())
		require.ErrorIs(t, err, domainContract.ErrNothingPending)
	})

	t.Run("successful receipt completes the deployment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gw := gatewayMocks.NewMockGateway(ctrl)
		svc, cells := newService(t, gw)
		ctx := context.Background()

		require.NoError(t, cells.SetStatus(ctx, domainContract.InProgress()))
		require.NoError(t, cells.SetPendingTx(ctx, deployTx))

		gw.EXPECT().GetTransactionReceipt(gomock.Any(), deployTx).Return(successReceipt(), nil)

		addr, err := svc.Confirm(ctx)
		require.NoError(t, err)
		assert.Equal(t, aggregator, addr)

		status, err := cells.GetStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, domainContract.StateRegistered, status.State)
		assert.Equal(t, aggregator, status.Address)

		pending, err := cells.GetPendingTx(ctx)
		require.NoError(t, err)
		assert.Equal(t, common.Hash{}, pending)

		current, err := svc.CurrentContract(ctx)
		require.NoError(t, err)
		assert.Equal(t, aggregator, current)
	})

	t.Run("failed receipt resets the workflow", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gw := gatewayMocks.NewMockGateway(ctrl)
		svc, cells := newService(t, gw)
		ctx := context.Background()

		require.NoError(t, cells.SetStatus(ctx, domainContract.InProgress()))
		require.NoError(t, cells.SetPendingTx(ctx, deployTx))

		gw.EXPECT().GetTransactionReceipt(gomock.Any(), deployTx).Return(failedReceipt(), nil)

		_, err := svc.Confirm(ctx)
		require.ErrorIs(t, err, domainContract.ErrDeploymentLost)

		status, err := cells.GetStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, domainContract.StateUnregistered, status.State)

		pending, err := cells.GetPendingTx(ctx)
		require.NoError(t, err)
		assert.Equal(t, common.Hash{}, pending)
	})

	t.Run("absent receipt resets and allows redeploy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gw := gatewayMocks.NewMockGateway(ctrl)
		svc, cells := newService(t, gw)
		ctx := context.Background()

		gw.EXPECT().CreateContract(gomock.Any(), gomock.Any(), gomock.Any()).Return(deployTx, nil)
		_, err := svc.Deploy(ctx)
		require.NoError(t, err)

		// The transaction is still unknown to the host.
		gw.EXPECT().GetTransactionReceipt(gomock.Any(), deployTx).Return(nil, nil)
		_, err = svc.Confirm(ctx)
		require.ErrorIs(t, err, domainContract.ErrDeploymentLost)

		status, err := cells.GetStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, domainContract.StateUnregistered, status.State)

		gw.EXPECT().CreateContract(gomock.Any(), gomock.Any(), gomock.Any()).Return(deployTx, nil)
		_, err = svc.Deploy(ctx)
		require.NoError(t, err)
	})

	t.Run("receipt lookup failure resets and surfaces the error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gw := gatewayMocks.NewMockGateway(ctrl)
		svc, cells := newService(t, gw)
		ctx := context.Background()

		require.NoError(t, cells.SetStatus(ctx, domainContract.InProgress()))
		require.NoError(t, cells.SetPendingTx(ctx, deployTx))

		lookupErr := errors.New("receipt unavailable")
		gw.EXPECT().GetTransactionReceipt(gomock.Any(), deployTx).Return(nil, lookupErr)

		_, err := svc.Confirm(ctx)
		require.ErrorIs(t, err, lookupErr)

		// Deploy can be retried from scratch afterwards.
		gw.EXPECT().CreateContract(gomock.Any(), gomock.Any(), gomock.Any()).Return(deployTx, nil)
		_, err = svc.Deploy(ctx)
		require.NoError(t, err)
	})
}

func TestService_CurrentContract_NotDeployed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _ := newService(t, gatewayMocks.NewMockGateway(ctrl))

	_, err := svc.CurrentContract(context.Background())
	require.ErrorIs(t, err, domainContract.ErrNotDeployed)
}

func TestService_AddPair(t *testing.T) {
	t.Run("requires a deployed contract", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _ := newService(t, gatewayMocks.NewMockGateway(ctrl))

		_, err := svc.AddPair(context.Background(), "ETH/USD", 8, "ETH / USD", big.NewInt(1))
		require.ErrorIs(t, err, domainContract.ErrNotDeployed)
	})

	t.Run("encodes the call against the deployed address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gw := gatewayMocks.NewMockGateway(ctrl)
		svc, cells := newService(t, gw)
		ctx := context.Background()

		require.NoError(t, cells.SetStatus(ctx, domainContract.Registered(aggregator)))

		txHash := common.HexToHash("0xadd")
		gw.EXPECT().
			Transact(gomock.Any(), gomock.Any(), aggregator, gomock.Any()).
			DoAndReturn(func(_ context.Context, value *big.Int, _ common.Address, data []byte) (common.Hash, error) {
				assert.Zero(t, value.Sign())
				assert.Equal(t, addPairMethod.ID, data[:4])
				return txHash, nil
			})

		hash, err := svc.AddPair(ctx, "ETH/USD", 8, "ETH / USD", big.NewInt(1))
		require.NoError(t, err)
		assert.Equal(t, txHash, hash)
	})
}

func TestService_UpdateAnswers(t *testing.T) {
	t.Run("rejects mismatched argument lengths", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _ := newService(t, gatewayMocks.NewMockGateway(ctrl))

		_, err := svc.UpdateAnswers(context.Background(),
			[]string{"ETH/USD"},
			[]*big.Int{big.NewInt(1), big.NewInt(2)},
			[]*big.Int{big.NewInt(1)})
		require.Error(t, err)
	})

	t.Run("submits the batched update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gw := gatewayMocks.NewMockGateway(ctrl)
		svc, cells := newService(t, gw)
		ctx := context.Background()

		require.NoError(t, cells.SetStatus(ctx, domainContract.Registered(aggregator)))

		gw.EXPECT().
			Transact(gomock.Any(), gomock.Any(), aggregator, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *big.Int, _ common.Address, data []byte) (common.Hash, error) {
				assert.Equal(t, updateAnswersMethod.ID, data[:4])
				return common.HexToHash("0xans"), nil
			})

		_, err := svc.UpdateAnswers(ctx,
			[]string{"ETH/USD", "BTC/USD"},
			[]*big.Int{big.NewInt(1700000000), big.NewInt(1700000000)},
			[]*big.Int{big.NewInt(250000000000), big.NewInt(4200000000000)})
		require.NoError(t, err)
	})
}
