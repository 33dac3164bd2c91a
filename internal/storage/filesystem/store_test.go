package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webmail/client/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestFilesystemStore_LoadSave(t *testing.T) {
	store := newTestStore(t)

	t.Run("读取不存在的键", func(t *testing.T) {
		_, ok, err := store.Load("users")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("写入后读取", func(t *testing.T) {
		require.NoError(t, store.Save("users", []byte(`[{"id":"u1"}]`)))

		data, ok, err := store.Load("users")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `[{"id":"u1"}]`, string(data))
	})

	t.Run("写入整体覆盖旧快照", func(t *testing.T) {
		require.NoError(t, store.Save("users", []byte(`[]`)))

		data, _, err := store.Load("users")
		assert.NoError(t, err)
		assert.Equal(t, []byte(`[]`), data)
	})

	t.Run("写入不残留临时文件", func(t *testing.T) {
		require.NoError(t, store.Save("messages", []byte(`[]`)))

		_, err := os.Stat(filepath.Join(store.basePath, "messages.json.tmp"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestFilesystemStore_Delete(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("session", []byte("tok")))
	assert.NoError(t, store.Delete("session"))

	_, ok, err := store.Load("session")
	assert.NoError(t, err)
	assert.False(t, ok)

	// 重复删除静默成功
	assert.NoError(t, store.Delete("session"))
}

func TestFilesystemStore_RejectsUnsafeKeys(t *testing.T) {
	store := newTestStore(t)

	for _, key := range []string{"", "../escape", "a/b", `a\b`} {
		t.Run("拒绝键名 "+key, func(t *testing.T) {
			assert.ErrorIs(t, store.Save(key, nil), storage.ErrInvalidKey)

			_, _, err := store.Load(key)
			assert.ErrorIs(t, err, storage.ErrInvalidKey)
		})
	}
}

func TestFilesystemStore_CreatesBaseDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(base)
	require.NoError(t, err)
	assert.NoError(t, store.Health())

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFilesystemStore_EmptyBasePath(t *testing.T) {
	_, err := NewStore("   ")
	assert.Error(t, err)
}
