package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webmail/client/internal/storage"
)

func TestSQLiteStore_LoadSave(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	t.Run("读取不存在的键", func(t *testing.T) {
		_, ok, err := store.Load("messages")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("写入后读取", func(t *testing.T) {
		require.NoError(t, store.Save("messages", []byte(`[{"id":"1"}]`)))

		data, ok, err := store.Load("messages")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `[{"id":"1"}]`, string(data))
	})

	t.Run("写入整体覆盖旧快照", func(t *testing.T) {
		require.NoError(t, store.Save("messages", []byte(`[]`)))

		data, _, err := store.Load("messages")
		assert.NoError(t, err)
		assert.Equal(t, []byte(`[]`), data)
	})

	t.Run("空键被拒绝", func(t *testing.T) {
		assert.ErrorIs(t, store.Save("", []byte("x")), storage.ErrInvalidKey)
	})
}

func TestSQLiteStore_Delete(t *testing.T) {
	store, err := Open("")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save("session", []byte("tok")))
	assert.NoError(t, store.Delete("session"))

	_, ok, err := store.Load("session")
	assert.NoError(t, err)
	assert.False(t, ok)

	// 重复删除静默成功
	assert.NoError(t, store.Delete("session"))
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webmail.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save("users", []byte(`[{"id":"u1"}]`)))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	data, ok, err := reopened.Load("users")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"u1"}]`, string(data))
}

func TestSQLiteStore_Health(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)

	assert.NoError(t, store.Health())
	require.NoError(t, store.Close())
	assert.Error(t, store.Health())
}
