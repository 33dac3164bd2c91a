package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"webmail/client/internal/storage"
	"webmail/client/internal/storage/memory"
)

func TestChecker(t *testing.T) {
	store := memory.NewStore()
	checker := NewChecker(store, zap.NewNop())

	t.Run("存储可用时检查通过", func(t *testing.T) {
		assert.NoError(t, checker.Check())
	})

	t.Run("报告区分空键与已写入的键", func(t *testing.T) {
		require.NoError(t, store.Save(storage.KeyMessages, []byte("[]")))

		report := checker.Report()
		assert.Equal(t, "OK", report["store"])
		assert.Equal(t, "OK", report[storage.KeyMessages])
		assert.Equal(t, "EMPTY", report[storage.KeyUsers])
		assert.Equal(t, "EMPTY", report[storage.KeySession])
		assert.NotEmpty(t, report["timestamp"])
	})

	t.Run("存储关闭后检查失败", func(t *testing.T) {
		require.NoError(t, store.Close())

		err := checker.Check()
		assert.ErrorIs(t, err, storage.ErrClosed)

		report := checker.Report()
		assert.Contains(t, report["store"], "ERROR")
	})
}
