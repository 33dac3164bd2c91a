package domain

import "time"

// User 表示邮件客户端的用户身份记录。
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash,omitempty"` // 仅凭证记录携带，暴露给界面前必须清除
	CreatedAt    time.Time `json:"createdAt"`
}

// Sanitize 返回去除凭证字段的用户副本。
func (u User) Sanitize() User {
	u.PasswordHash = ""
	return u
}
