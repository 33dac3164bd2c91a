package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"webmail/client/internal/auth"
	"webmail/client/internal/mailapi"
	"webmail/client/internal/storage/memory"
)

func newTestAPI(t *testing.T) *mailapi.Client {
	t.Helper()

	store := memory.NewStore()
	t.Cleanup(func() { store.Close() })

	tokens := auth.NewTokenManager("unit-test-secret-with-32-characters!", "webmail", time.Hour)
	return mailapi.NewClient(store, tokens, zap.NewNop(), 0)
}

func TestSession_LoginLogout(t *testing.T) {
	api := newTestAPI(t)
	_, err := api.Signup("John Doe", "john@example.com", "password123")
	require.NoError(t, err)
	api.Logout()

	s := New(api)
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())

	t.Run("登录失败时状态不变", func(t *testing.T) {
		err := s.Login("john@example.com", "wrong")
		assert.ErrorIs(t, err, mailapi.ErrInvalidCredentials)
		assert.False(t, s.IsAuthenticated())
	})

	t.Run("登录成功后持有用户", func(t *testing.T) {
		require.NoError(t, s.Login("john@example.com", "password123"))
		assert.True(t, s.IsAuthenticated())
		assert.Equal(t, "john@example.com", s.CurrentUser().Email)
	})

	t.Run("注销后回到未登录", func(t *testing.T) {
		s.Logout()
		assert.False(t, s.IsAuthenticated())
		assert.Nil(t, s.CurrentUser())
	})
}

func TestSession_Signup(t *testing.T) {
	api := newTestAPI(t)
	s := New(api)

	require.NoError(t, s.Signup("Jane Smith", "jane@example.com", "password123"))
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "Jane Smith", s.CurrentUser().Name)

	t.Run("重复注册不影响已有登录", func(t *testing.T) {
		err := s.Signup("Impostor", "jane@example.com", "password456")
		assert.ErrorIs(t, err, mailapi.ErrEmailExists)
		assert.Equal(t, "Jane Smith", s.CurrentUser().Name)
	})
}

func TestSession_RestoresPersistedLogin(t *testing.T) {
	api := newTestAPI(t)
	_, err := api.Signup("John Doe", "john@example.com", "password123")
	require.NoError(t, err)

	// 新建会话状态，模拟应用重启
	s := New(api)
	require.True(t, s.IsAuthenticated())
	assert.Equal(t, "john@example.com", s.CurrentUser().Email)
}
