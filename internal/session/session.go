// Package session 维护进程内的登录状态，镜像数据访问层持久化的会话记录。
package session

import (
	"webmail/client/internal/domain"
)

// API 会话状态依赖的认证操作子集。
type API interface {
	Login(email, password string) (*domain.User, error)
	Signup(name, email, password string) (*domain.User, error)
	Logout()
	CurrentUser() (*domain.User, bool)
}

// Session 进程内的单例登录状态。
//
// 构造时同步读取持久化的会话记录，之后 Login/Signup/Logout 先委托
// 数据访问层，成功后再更新内存状态。
type Session struct {
	api  API
	user *domain.User
}

// New 创建会话状态并恢复已持久化的登录。
func New(api API) *Session {
	s := &Session{api: api}
	if user, ok := api.CurrentUser(); ok {
		s.user = user
	}
	return s
}

// CurrentUser 返回当前登录用户，未登录时为 nil。
func (s *Session) CurrentUser() *domain.User {
	return s.user
}

// IsAuthenticated 判断是否有用户登录。
func (s *Session) IsAuthenticated() bool {
	return s.user != nil
}

// Login 委托数据访问层登录，成功后保存用户。
func (s *Session) Login(email, password string) error {
	user, err := s.api.Login(email, password)
	if err != nil {
		return err
	}
	s.user = user
	return nil
}

// Signup 委托数据访问层注册，成功后保存用户。
func (s *Session) Signup(name, email, password string) error {
	user, err := s.api.Signup(name, email, password)
	if err != nil {
		return err
	}
	s.user = user
	return nil
}

// Logout 委托数据访问层注销并清空内存状态。
func (s *Session) Logout() {
	s.api.Logout()
	s.user = nil
}
