package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webmail/client/internal/auth"
	"webmail/client/internal/domain"
)

func TestUsers(t *testing.T) {
	users, err := Users()
	require.NoError(t, err)
	require.Len(t, users, 5)

	t.Run("演示账号可以用演示密码登录", func(t *testing.T) {
		assert.Equal(t, DemoEmail, users[0].Email)
		assert.True(t, auth.CheckPassword(DemoPassword, users[0].PasswordHash))
	})

	t.Run("联系人不携带凭证", func(t *testing.T) {
		for _, u := range users[1:] {
			assert.Empty(t, u.PasswordHash, u.Email)
		}
	})

	t.Run("邮箱互不重复", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, u := range users {
			assert.False(t, seen[u.Email], u.Email)
			seen[u.Email] = true
		}
	})
}

func TestMessages(t *testing.T) {
	users, err := Users()
	require.NoError(t, err)

	messages := Messages(users)
	require.Len(t, messages, 10)

	t.Run("覆盖全部四个文件夹", func(t *testing.T) {
		byFolder := make(map[domain.Folder]int)
		for _, m := range messages {
			require.True(t, m.Folder.Valid(), m.ID)
			byFolder[m.Folder]++
		}
		for _, folder := range domain.Folders() {
			assert.Positive(t, byFolder[folder], folder)
		}
	})

	t.Run("每封邮件字段完整", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, m := range messages {
			assert.False(t, seen[m.ID], m.ID)
			seen[m.ID] = true
			assert.NotEmpty(t, m.ThreadID, m.ID)
			assert.NotEmpty(t, m.To, m.ID)
			assert.False(t, m.Timestamp.IsZero(), m.ID)
		}
	})

	t.Run("回复与被回复属于同一会话", func(t *testing.T) {
		byID := make(map[string]domain.Message)
		for _, m := range messages {
			byID[m.ID] = m
		}
		for _, m := range messages {
			if m.ReplyTo == "" {
				continue
			}
			parent, ok := byID[m.ReplyTo]
			require.True(t, ok, m.ID)
			assert.Equal(t, parent.ThreadID, m.ThreadID, m.ID)
		}
	})

	t.Run("用户不足时返回空", func(t *testing.T) {
		assert.Nil(t, Messages(users[:2]))
	})
}
