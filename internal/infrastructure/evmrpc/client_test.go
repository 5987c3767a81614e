package evmrpc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oracle-bridge/oracle-bridge/internal/domain/evm"
)

// dataError mimics the structured error the rpc client surfaces for
// application-level rejections.
type dataError struct {
	msg  string
	data interface{}
}

func (e *dataError) Error() string          { return e.msg }
func (e *dataError) ErrorData() interface{} { return e.data }

func TestTranslateError(t *testing.T) {
	t.Run("plain errors are not host errors", func(t *testing.T) {
		assert.Nil(t, translateError(errors.New("connection refused")))
	})

	t.Run("data error without payload is generic", func(t *testing.T) {
		hostErr := translateError(&dataError{msg: "execution reverted"})
		require.NotNil(t, hostErr)
		assert.Equal(t, evm.KindGeneric, hostErr.Kind)
		assert.Equal(t, "execution reverted", hostErr.Message)
	})

	t.Run("invalid nonce payload carries the expected value", func(t *testing.T) {
		hostErr := translateError(&dataError{
			msg: "rejected",
			data: map[string]interface{}{
				"kind":          "invalid_nonce",
				"message":       "nonce too low",
				"expectedNonce": "0x5",
			},
		})
		require.NotNil(t, hostErr)
		assert.Equal(t, evm.KindInvalidNonce, hostErr.Kind)
		assert.Equal(t, "nonce too low", hostErr.Message)
		require.NotNil(t, hostErr.ExpectedNonce)
		assert.Equal(t, int64(5), hostErr.ExpectedNonce.Int64())
	})

	t.Run("insufficient funds payload", func(t *testing.T) {
		hostErr := translateError(&dataError{
			msg:  "rejected",
			data: map[string]interface{}{"kind": "insufficient_funds", "message": "balance too low"},
		})
		require.NotNil(t, hostErr)
		assert.Equal(t, evm.KindInsufficientFunds, hostErr.Kind)
	})

	t.Run("unknown kind falls back to generic", func(t *testing.T) {
		hostErr := translateError(&dataError{
			msg:  "rejected",
			data: map[string]interface{}{"kind": "something_else"},
		})
		require.NotNil(t, hostErr)
		assert.Equal(t, evm.KindGeneric, hostErr.Kind)
		assert.Equal(t, "rejected", hostErr.Message)
	})

	t.Run("unparseable payload falls back to generic", func(t *testing.T) {
		hostErr := translateError(&dataError{msg: "rejected", data: "0xdeadbeef"})
		require.NotNil(t, hostErr)
		assert.Equal(t, evm.KindGeneric, hostErr.Kind)
	})
}
