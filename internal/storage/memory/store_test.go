package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"webmail/client/internal/storage"
)

func TestMemoryStore_LoadSave(t *testing.T) {
	store := NewStore()
	defer store.Close()

	t.Run("读取不存在的键", func(t *testing.T) {
		data, ok, err := store.Load("missing")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, data)
	})

	t.Run("写入后读取", func(t *testing.T) {
		err := store.Save("messages", []byte(`[{"id":"1"}]`))
		assert.NoError(t, err)

		data, ok, err := store.Load("messages")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte(`[{"id":"1"}]`), data)
	})

	t.Run("写入整体覆盖旧快照", func(t *testing.T) {
		assert.NoError(t, store.Save("messages", []byte(`[]`)))

		data, ok, err := store.Load("messages")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte(`[]`), data)
	})

	t.Run("空键写入被拒绝", func(t *testing.T) {
		err := store.Save("", []byte("x"))
		assert.ErrorIs(t, err, storage.ErrInvalidKey)
	})
}

func TestMemoryStore_ReturnedSliceIsCopy(t *testing.T) {
	store := NewStore()
	defer store.Close()

	assert.NoError(t, store.Save("k", []byte("abc")))

	data, ok, err := store.Load("k")
	assert.NoError(t, err)
	assert.True(t, ok)

	// 修改返回值不应影响内部快照
	data[0] = 'z'

	again, _, _ := store.Load("k")
	assert.Equal(t, []byte("abc"), again)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewStore()
	defer store.Close()

	assert.NoError(t, store.Save("session", []byte("tok")))
	assert.NoError(t, store.Delete("session"))

	_, ok, err := store.Load("session")
	assert.NoError(t, err)
	assert.False(t, ok)

	t.Run("删除不存在的键静默成功", func(t *testing.T) {
		assert.NoError(t, store.Delete("session"))
	})
}

func TestMemoryStore_Closed(t *testing.T) {
	store := NewStore()
	assert.NoError(t, store.Health())
	assert.NoError(t, store.Close())

	assert.ErrorIs(t, store.Health(), storage.ErrClosed)
	assert.ErrorIs(t, store.Save("k", nil), storage.ErrClosed)

	_, _, err := store.Load("k")
	assert.ErrorIs(t, err, storage.ErrClosed)
}
