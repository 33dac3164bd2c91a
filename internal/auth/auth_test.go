package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"alice@example.com",
		"a.b+tag@mail.example.co",
		"user_1@sub.domain.io",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"alice",
		"alice@",
		"@example.com",
		"alice@example",
		"alice example@example.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("password123"))
	assert.ErrorIs(t, ValidatePassword("short"), ErrWeakPassword)
	assert.ErrorIs(t, ValidatePassword(string(make([]byte, 73))), ErrWeakPassword)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, CheckPassword("password123", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
	assert.False(t, CheckPassword("password123", "not-a-hash"))
}

func TestTokenManager_IssueAndValidate(t *testing.T) {
	manager := NewTokenManager("test-secret-at-least-32-characters!", "webmail", time.Hour)

	token, err := manager.Issue("user-1", "alice@example.com", "Alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "webmail", claims.Issuer)
}

func TestTokenManager_RejectsBadTokens(t *testing.T) {
	manager := NewTokenManager("test-secret-at-least-32-characters!", "webmail", time.Hour)

	t.Run("格式错误的令牌", func(t *testing.T) {
		_, err := manager.Validate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("密钥不一致的令牌", func(t *testing.T) {
		other := NewTokenManager("another-secret-also-32-characters!!", "webmail", time.Hour)
		token, err := other.Issue("user-1", "alice@example.com", "Alice")
		require.NoError(t, err)

		_, err = manager.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("过期的令牌", func(t *testing.T) {
		expired := NewTokenManager("test-secret-at-least-32-characters!", "webmail", -time.Minute)
		token, err := expired.Issue("user-1", "alice@example.com", "Alice")
		require.NoError(t, err)

		_, err = manager.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
