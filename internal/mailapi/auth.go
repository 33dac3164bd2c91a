package mailapi

import (
	"fmt"

	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"webmail/client/internal/auth"
	"webmail/client/internal/domain"
)

// Login 校验邮箱与密码，成功后持久化会话并返回脱敏的用户。
func (c *Client) Login(email, password string) (*domain.User, error) {
	c.delay()

	users, err := c.loadUsers()
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		if user.Email == email && auth.CheckPassword(password, user.PasswordHash) {
			if err := c.openSession(user); err != nil {
				return nil, err
			}
			sanitized := user.Sanitize()
			return &sanitized, nil
		}
	}

	return nil, ErrInvalidCredentials
}

// Signup 注册新用户并直接登录。
//
// 邮箱重复按大小写敏感的全等比较判断，与原始行为一致。
func (c *Client) Signup(name, email, password string) (*domain.User, error) {
	c.delay()

	if !auth.ValidateEmail(email) {
		return nil, auth.ErrInvalidEmail
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}

	users, err := c.loadUsers()
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		if user.Email == email {
			return nil, ErrEmailExists
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	users = append(users, user)
	if err := c.saveUsers(users); err != nil {
		return nil, err
	}

	if err := c.openSession(user); err != nil {
		return nil, err
	}

	sanitized := user.Sanitize()
	return &sanitized, nil
}

// Logout 清除会话记录。注销不会失败，存储错误仅记录日志。
func (c *Client) Logout() {
	c.delayShort()

	if err := c.store.Delete(keySession); err != nil {
		c.logger.Warn("failed to clear session record", zap.Error(err))
	}
}

// CurrentUser 同步读取当前会话对应的用户，没有有效会话时返回 false。
//
// 这是本地状态读取而非模拟的网络调用，因此不加延迟。
func (c *Client) CurrentUser() (*domain.User, bool) {
	data, ok, err := c.store.Load(keySession)
	if err != nil {
		c.logger.Warn("failed to load session record", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	claims, err := c.tokens.Validate(string(data))
	if err != nil {
		// 过期或被篡改的会话视同未登录
		c.logger.Debug("session token rejected", zap.Error(err))
		return nil, false
	}

	users, err := c.loadUsers()
	if err != nil {
		c.logger.Warn("failed to load user snapshot", zap.Error(err))
		return nil, false
	}

	for _, user := range users {
		if user.ID == claims.UserID {
			sanitized := user.Sanitize()
			return &sanitized, true
		}
	}
	return nil, false
}

// openSession 为用户签发会话令牌并持久化。
func (c *Client) openSession(user domain.User) error {
	token, err := c.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return err
	}
	if err := c.store.Save(keySession, []byte(token)); err != nil {
		return fmt.Errorf("save session record: %w", err)
	}
	return nil
}
